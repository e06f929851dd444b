package maestro

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// BaseConfig is the standard Config implementation.
type BaseConfig struct {
	BaseURL              string
	HTTPTimeout          time.Duration
	LoginRoute           string
	RejectedRouteKey     string
	RejectedRouteDefault string
	LoadingView          string
}

var _ Config = (*BaseConfig)(nil)

func (c *BaseConfig) GetBaseURL() string              { return c.BaseURL }
func (c *BaseConfig) GetHTTPTimeout() time.Duration   { return c.HTTPTimeout }
func (c *BaseConfig) GetLoginRoute() string           { return c.LoginRoute }
func (c *BaseConfig) GetRejectedRouteKey() string     { return c.RejectedRouteKey }
func (c *BaseConfig) GetRejectedRouteDefault() string { return c.RejectedRouteDefault }
func (c *BaseConfig) GetLoadingView() string          { return c.LoadingView }

// DefaultConfig returns the configuration used when nothing is provided.
func DefaultConfig() *BaseConfig {
	return &BaseConfig{
		BaseURL:              DefaultBaseURL,
		HTTPTimeout:          30 * time.Second,
		LoginRoute:           "/login",
		RejectedRouteKey:     "rejected_route",
		RejectedRouteDefault: "/",
		LoadingView:          "session/loading",
	}
}

// ConfigFromEnv loads defaults, then .env files (best effort), then
// MAESTRO_* environment variables.
func ConfigFromEnv(files ...string) *BaseConfig {
	_ = godotenv.Load(files...)

	cfg := DefaultConfig()

	if v := os.Getenv("MAESTRO_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("MAESTRO_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if v := os.Getenv("MAESTRO_LOGIN_ROUTE"); v != "" {
		cfg.LoginRoute = v
	}
	if v := os.Getenv("MAESTRO_REJECTED_ROUTE_KEY"); v != "" {
		cfg.RejectedRouteKey = v
	}
	if v := os.Getenv("MAESTRO_REJECTED_ROUTE_DEFAULT"); v != "" {
		cfg.RejectedRouteDefault = v
	}

	return cfg
}
