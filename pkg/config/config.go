package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Tool group names accepted in Tools.
const (
	GroupCalculator = "calculator"
	GroupClock      = "clock"
	GroupWeather    = "weather"
	GroupAnalytics  = "analytics"
	GroupDart       = "dart"
	GroupGoogle     = "google"
	GroupKIS        = "kis"
)

// AllGroups lists every tool group in registration order.
var AllGroups = []string{
	GroupCalculator, GroupClock, GroupWeather,
	GroupAnalytics, GroupDart, GroupGoogle, GroupKIS,
}

// Config is the full server configuration. Values come from the environment
// first; an optional YAML file overrides them.
type Config struct {
	LogLevel string   `yaml:"log_level"`
	LogFile  string   `yaml:"log_file"`
	Tools    []string `yaml:"tools"`    // enabled tool groups; empty means all
	SSEAddr  string   `yaml:"sse_addr"` // listen address for the sse transport

	KIS       KIS       `yaml:"kis"`
	Dart      Dart      `yaml:"dart"`
	Analytics Analytics `yaml:"analytics"`
	Google    Google    `yaml:"google"`
}

// KIS holds the brokerage credentials and deployment selector.
type KIS struct {
	AppKey      string `yaml:"app_key"`
	AppSecret   string `yaml:"app_secret"`
	AccountNo   string `yaml:"account_no"`
	AccountType string `yaml:"account_type"` // REAL or VIRTUAL, default REAL
	TokenFile   string `yaml:"token_file"`
}

// Dart holds the OpenDART API key.
type Dart struct {
	APIKey string `yaml:"api_key"`
}

// Analytics holds the dataset location.
type Analytics struct {
	CSVPath string `yaml:"csv_path"`
}

// Google holds the persisted OAuth token location.
type Google struct {
	TokenFile string `yaml:"token_file"`
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// FromEnv builds a Config from environment variables and defaults.
func FromEnv() *Config {
	cfg := &Config{
		LogLevel: getenv("KMCP_LOG_LEVEL", "info"),
		LogFile:  os.Getenv("KMCP_LOG_FILE"),
		SSEAddr:  getenv("KMCP_SSE_ADDR", ":8931"),
		KIS: KIS{
			AppKey:      os.Getenv("KIS_APP_KEY"),
			AppSecret:   os.Getenv("KIS_APP_SECRET"),
			AccountNo:   os.Getenv("KIS_CANO"),
			AccountType: getenv("KIS_ACCOUNT_TYPE", "REAL"),
			TokenFile:   getenv("KIS_TOKEN_FILE", "token.json"),
		},
		Dart: Dart{
			APIKey: os.Getenv("DART_API_KEY"),
		},
		Analytics: Analytics{
			CSVPath: getenv("KMCP_DATA_CSV", "data.csv"),
		},
		Google: Google{
			TokenFile: getenv("GOOGLE_TOKEN_FILE", "google_token.json"),
		},
	}
	if v := os.Getenv("KMCP_TOOLS"); v != "" {
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				cfg.Tools = append(cfg.Tools, name)
			}
		}
	}
	return cfg
}

// Load builds a Config from the environment, then overlays the YAML file at
// path if one is given.
func Load(path string) (*Config, error) {
	cfg := FromEnv()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}
	return cfg, nil
}

// ToolEnabled reports whether the given tool group should be registered.
func (c *Config) ToolEnabled(name string) bool {
	if len(c.Tools) == 0 {
		return true
	}
	for _, t := range c.Tools {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}

// Validate checks that the brokerage credentials are complete.
func (k *KIS) Validate() error {
	if k.AppKey == "" {
		return errors.New("KIS_APP_KEY is not set")
	}
	if k.AppSecret == "" {
		return errors.New("KIS_APP_SECRET is not set")
	}
	if k.AccountNo == "" {
		return errors.New("KIS_CANO is not set")
	}
	return nil
}

// Validate checks that the OpenDART key is present.
func (d *Dart) Validate() error {
	if d.APIKey == "" {
		return errors.New("DART_API_KEY is not set")
	}
	return nil
}
