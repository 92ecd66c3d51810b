// Package weather exposes an Open-Meteo forecast tool keyed to the caller's
// IP geolocation.
package weather

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"

	"github.com/stockbot/kmcp/internal/tools"
	"github.com/stockbot/kmcp/pkg/cache"
	"github.com/stockbot/kmcp/pkg/logger"
)

const (
	defaultIPInfoURL = "https://ipinfo.io/json"
	defaultMeteoURL  = "https://api.open-meteo.com/v1/forecast"

	// Seoul, used when geolocation fails.
	fallbackLat = 37.5665
	fallbackLon = 126.9780

	locationTTL = time.Hour
)

// Service resolves the caller's coordinates once per TTL and fetches the
// hourly forecast for them.
type Service struct {
	http      *resty.Client
	ipinfoURL string
	meteoURL  string
	location  *cache.InMemoryCache[string, [2]float64]
}

// Option overrides a Service default.
type Option func(*Service)

// WithIPInfoURL points geolocation at a different endpoint; tests use it.
func WithIPInfoURL(url string) Option {
	return func(s *Service) { s.ipinfoURL = url }
}

// WithMeteoURL points the forecast lookup at a different endpoint.
func WithMeteoURL(url string) Option {
	return func(s *Service) { s.meteoURL = url }
}

func NewService(opts ...Option) *Service {
	s := &Service{
		http:      resty.New().SetTimeout(10 * time.Second),
		ipinfoURL: defaultIPInfoURL,
		meteoURL:  defaultMeteoURL,
		location:  cache.NewInMemoryCache[string, [2]float64](locationTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tools returns the weather tools backed by this service.
func (s *Service) Tools() []tools.Tool {
	return []tools.Tool{weatherTool{svc: s}}
}

// coordinates resolves lat/lon from the IP geolocation endpoint, falling
// back to Seoul when it is unreachable or malformed.
func (s *Service) coordinates(ctx context.Context) (float64, float64) {
	if loc, ok := s.location.Get("self"); ok {
		return loc[0], loc[1]
	}

	lat, lon := fallbackLat, fallbackLon
	var out struct {
		Loc string `json:"loc"`
	}
	resp, err := s.http.R().SetContext(ctx).SetResult(&out).Get(s.ipinfoURL)
	if err != nil || !resp.IsSuccess() {
		logger.Warnf("[weather] geolocation failed, using Seoul: %v", err)
		return lat, lon
	}
	if la, lo, perr := parseLoc(out.Loc); perr == nil {
		lat, lon = la, lo
		s.location.Set("self", [2]float64{lat, lon}, locationTTL)
	} else {
		logger.Warnf("[weather] bad loc %q, using Seoul", out.Loc)
	}
	return lat, lon
}

func parseLoc(loc string) (float64, float64, error) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("loc %q is not lat,lon", loc)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

// Forecast fetches one day of hourly data for the resolved location and
// returns the provider's JSON untouched.
func (s *Service) Forecast(ctx context.Context) (map[string]any, error) {
	lat, lon := s.coordinates(ctx)

	var out map[string]any
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":      strconv.FormatFloat(lat, 'f', 4, 64),
			"longitude":     strconv.FormatFloat(lon, 'f', 4, 64),
			"hourly":        "temperature_2m,relative_humidity_2m,dew_point_2m,weather_code",
			"timezone":      "GMT",
			"forecast_days": "1",
		}).
		SetResult(&out).
		Get(s.meteoURL)
	if err != nil {
		return nil, errors.Wrap(err, "forecast request")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("forecast status %d: %s", resp.StatusCode(), resp.String())
	}
	return out, nil
}

type weatherTool struct {
	svc *Service
}

func (weatherTool) Definition() mcp.Tool {
	return mcp.NewTool("get_weather",
		mcp.WithDescription("Get current weather information using Open-Meteo API based on your IP."),
	)
}

func (t weatherTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := t.svc.Forecast(ctx)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(data), nil
}
