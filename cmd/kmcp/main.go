package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/stockbot/kmcp/internal/tools"
	"github.com/stockbot/kmcp/internal/tools/analytics"
	"github.com/stockbot/kmcp/internal/tools/calculator"
	"github.com/stockbot/kmcp/internal/tools/clock"
	"github.com/stockbot/kmcp/internal/tools/dart"
	googletools "github.com/stockbot/kmcp/internal/tools/google"
	kistools "github.com/stockbot/kmcp/internal/tools/kis"
	"github.com/stockbot/kmcp/internal/tools/weather"
	"github.com/stockbot/kmcp/pkg/config"
	"github.com/stockbot/kmcp/pkg/kis"
	"github.com/stockbot/kmcp/pkg/logger"
)

const (
	serverName    = "kmcp"
	serverVersion = "0.1.0"
)

func main() {
	// Load .env (best-effort). If missing, fall back to real env vars.
	_ = godotenv.Load()

	getenv := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}

	var (
		configPath = flag.String("config", getenv("KMCP_CONFIG", ""), "optional YAML config file")
		transport  = flag.String("transport", getenv("KMCP_TRANSPORT", "stdio"), "transport: stdio or sse")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Stdout belongs to the MCP transport; logs go to stderr and the
	// optional file.
	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     14,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	registry := tools.NewRegistry()
	registerGroups(cfg, registry)
	if registry.Len() == 0 {
		logger.Error("no tools registered; check KMCP_TOOLS and per-group credentials")
		os.Exit(1)
	}

	s := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)
	registry.Install(s)

	switch *transport {
	case "sse":
		logger.Infof("serving sse on %s", cfg.SSEAddr)
		if err := server.NewSSEServer(s).Start(cfg.SSEAddr); err != nil {
			logger.Errorf("sse server: %v", err)
			os.Exit(1)
		}
	case "stdio":
		logger.Info("serving stdio")
		if err := server.ServeStdio(s); err != nil {
			logger.Errorf("stdio server: %v", err)
			os.Exit(1)
		}
	default:
		logger.Errorf("unknown transport %q", *transport)
		os.Exit(1)
	}
}

// registerGroups adds each enabled tool group. A group whose prerequisites
// are missing is skipped with a warning so the rest of the server still
// comes up.
func registerGroups(cfg *config.Config, registry *tools.Registry) {
	if cfg.ToolEnabled(config.GroupCalculator) {
		registry.Add(calculator.Tools()...)
	}
	if cfg.ToolEnabled(config.GroupClock) {
		registry.Add(clock.Tools(nil)...)
		registry.AddPrompts(clock.Prompts()...)
		registry.AddResources(clock.Resources()...)
	}
	if cfg.ToolEnabled(config.GroupWeather) {
		registry.Add(weather.NewService().Tools()...)
	}

	if cfg.ToolEnabled(config.GroupAnalytics) {
		ds, err := analytics.LoadCSV(cfg.Analytics.CSVPath)
		if err != nil {
			logger.Warnf("analytics tools disabled: %v", err)
		} else {
			registry.Add(analytics.Tools(ds)...)
		}
	}

	if cfg.ToolEnabled(config.GroupDart) {
		if err := cfg.Dart.Validate(); err != nil {
			logger.Warnf("dart tools disabled: %v", err)
		} else {
			registry.Add(dart.Tools(dart.NewClient(cfg.Dart.APIKey))...)
		}
	}

	if cfg.ToolEnabled(config.GroupGoogle) {
		registry.Add(googletools.Tools(googletools.NewService(cfg.Google.TokenFile))...)
	}

	if cfg.ToolEnabled(config.GroupKIS) {
		if err := cfg.KIS.Validate(); err != nil {
			logger.Warnf("kis tools disabled: %v", err)
			return
		}
		client, err := kis.New(kis.Config{
			Mode: kis.ParseMode(cfg.KIS.AccountType),
			Credentials: kis.Credentials{
				AppKey:    cfg.KIS.AppKey,
				AppSecret: cfg.KIS.AppSecret,
				AccountNo: cfg.KIS.AccountNo,
			},
			TokenFile: cfg.KIS.TokenFile,
			Timeout:   10 * time.Second,
		})
		if err != nil {
			logger.Warnf("kis tools disabled: %v", err)
			return
		}
		logger.Infof("kis gateway mode %s", client.Mode())
		registry.Add(kistools.Tools(client)...)
	}
}
