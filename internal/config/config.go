// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/appdsizer/internal/license"
	"github.com/JonMunkholm/appdsizer/internal/sizing"
	"github.com/JonMunkholm/appdsizer/internal/thousandeyes"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server       ServerConfig
	Upload       UploadConfig
	Rate         RateLimitConfig
	Security     SecurityConfig
	Logging      LoggingConfig
	Sizing       SizingConfig
	ThousandEyes ThousandEyesConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig holds workbook upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed workbook size in bytes (default: 16MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"16777216"`

	// MaxConcurrent is the maximum number of workbooks parsed in parallel (default: 5)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"5"`

	// MaxWaitTime is how long to wait for a parse slot (default: 30s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"30s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// SizingConfig holds the AppDynamics licensing constants.
type SizingConfig struct {
	// PageviewsPerUser converts monthly sessions/users to pageviews (default: 20)
	PageviewsPerUser int `env:"SIZING_PAGEVIEWS_PER_USER" envAlt:"PAGEVIEWS_PER_USER_PER_MONTH" default:"20"`

	// BrowserPageviewsPerUnit is the annual pageviews in one RUM Browser unit (default: 10M)
	BrowserPageviewsPerUnit int `env:"SIZING_BROWSER_PAGEVIEWS_PER_UNIT" default:"10000000"`

	// MobileAgentsPerUnit is the monthly Active Agents in one RUM Mobile unit (default: 5000)
	MobileAgentsPerUnit int `env:"SIZING_MOBILE_AGENTS_PER_UNIT" default:"5000"`

	// TokensPerPageview is the RUM token cost of one pageview (default: 1)
	TokensPerPageview int `env:"SIZING_TOKENS_PER_PAGEVIEW" default:"1"`

	// TokensPerAgentMonth is the RUM token cost of one Active Agent per month (default: 160)
	TokensPerAgentMonth int `env:"SIZING_TOKENS_PER_AGENT_MONTH" default:"160"`
}

// ThousandEyesConfig holds the ThousandEyes metering constants.
type ThousandEyesConfig struct {
	// MinutesPerMonth is the billing month length (default: 43200, 30 days)
	MinutesPerMonth int `env:"TE_MINUTES_PER_MONTH" default:"43200"`

	// CloudMultiplier scales the cost of Cloud agents (default: 2.0)
	CloudMultiplier float64 `env:"TE_CLOUD_MULTIPLIER" default:"2.0"`

	// EnterpriseMultiplier scales the cost of Enterprise agents (default: 1.0)
	EnterpriseMultiplier float64 `env:"TE_ENTERPRISE_MULTIPLIER" default:"1.0"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// License converts the section to engine constants.
func (c SizingConfig) License() license.Config {
	return license.Config{
		PageviewsPerUserPerMonth:  c.PageviewsPerUser,
		BrowserPageviewsPerUnit:   c.BrowserPageviewsPerUnit,
		ActiveAgentsPerMobileUnit: c.MobileAgentsPerUnit,
		TokensPerPageview:         c.TokensPerPageview,
		TokensPerActiveAgentMonth: c.TokensPerAgentMonth,
	}
}

// Engine converts the section to engine constants.
func (c ThousandEyesConfig) Engine() thousandeyes.Config {
	return thousandeyes.Config{
		MinutesPerMonth:      c.MinutesPerMonth,
		CloudMultiplier:      decimal.NewFromFloat(c.CloudMultiplier),
		EnterpriseMultiplier: decimal.NewFromFloat(c.EnterpriseMultiplier),
	}
}

// SizingOptions assembles the options of the sizing service.
func (c *Config) SizingOptions() sizing.Options {
	return sizing.Options{
		License:             c.Sizing.License(),
		ThousandEyes:        c.ThousandEyes.Engine(),
		MaxConcurrentParses: c.Upload.MaxConcurrent,
		MaxWaitTime:         c.Upload.MaxWaitTime,
	}
}
