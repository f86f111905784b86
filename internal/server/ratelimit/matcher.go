package ratelimit

import (
	"strings"
)

// MatchEndpoint resolves a request path and method to its endpoint
// configuration, or nil when only the default limit applies. Config
// paths ending in "/" match as prefixes, so "/api/v1/session/" covers
// "/api/v1/session/{id}/history".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// The health check backs liveness probes and must never be throttled.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Limit: 0}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
