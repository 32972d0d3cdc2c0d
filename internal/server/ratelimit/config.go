package ratelimit

import (
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EndpointConfig is the limit applied to one endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" makes it a prefix
	Method string        // HTTP method
	Limit  int           // Requests per window
	Window time.Duration // Refill window
	Burst  int           // Bucket capacity, Limit when 0
}

// envConfig mirrors the RATE_LIMIT_* variables.
type envConfig struct {
	Enabled         bool          `env:"RATE_LIMIT_ENABLED"          envDefault:"true"`
	DefaultLimit    int           `env:"RATE_LIMIT_DEFAULT_LIMIT"    envDefault:"1000"`
	DefaultWindow   time.Duration `env:"RATE_LIMIT_DEFAULT_WINDOW"   envDefault:"1m"`
	CleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	Whitelist       []string      `env:"RATE_LIMIT_WHITELIST"        envSeparator:","`
	Blacklist       []string      `env:"RATE_LIMIT_BLACKLIST"        envSeparator:","`
}

func defaultEnvConfig() envConfig {
	return envConfig{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
// Malformed values are logged and the built-in defaults are used instead.
func LoadConfig() *Config {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		log.Printf("[rate-limit] invalid configuration, using defaults: %v", err)
		raw = defaultEnvConfig()
	}

	if !raw.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    raw.DefaultLimit,
		DefaultWindow:   raw.DefaultWindow,
		CleanupInterval: raw.CleanupInterval,
		Whitelist:       ipSet(raw.Whitelist),
		Blacklist:       ipSet(raw.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Each submission triggers a backend search.
		{Path: "/relocate", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Each stream holds a connection and a scheduler goroutine for several seconds.
		{Path: "/bridge/stream", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},

		// Pages and static assets use the default limit; /health is unlimited (see MatchEndpoint).
	}
}

func ipSet(ips []string) map[string]bool {
	result := make(map[string]bool, len(ips))
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
