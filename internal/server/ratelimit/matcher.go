package ratelimit

import (
	"strings"

	"github.com/jonathan/relocateme/internal/routes"
)

// healthPath is never limited.
const healthPath = "/health"

// MatchEndpoint returns the configuration for path and method, or nil when the default applies.
// Trailing slashes are ignored, and configs whose path ends in "/" match by prefix.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	path = routes.Normalize(path)

	if path == healthPath && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && config.Path == path {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path+"/", config.Path) {
			return config
		}
	}

	return nil
}
