package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig carries per-endpoint rate limit settings. Limit is the
// sustained budget per Window and Burst caps short spikes (Limit when
// zero). A non-positive Limit disables limiting for the endpoint.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// LoadConfig builds the rate limiter configuration from environment
// variables, with defaults sized for a single instance.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint budgets. Batch
// screening, dataset generation, and model evaluation each score many
// resumes per call, so they get the tightest budgets. Single-resume
// screening and session creation sit in a middle tier. Reads fall
// through to the default limit and the health check is unlimited via
// the matcher.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/v1/screen/batch", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/v1/data/generate", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/api/v1/evaluate/models", Method: "GET", Limit: 20, Window: time.Hour, Burst: 3},

		{Path: "/api/v1/screen/resume", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/v1/session/create", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList splits a comma-separated list of client addresses into a
// lookup set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
