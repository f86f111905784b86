// Package config loads runtime settings for the CLI and the server.
//
// Settings come from three layers, later layers winning: built-in
// defaults, an optional YAML/JSON config file, and RESUME_INTEL_*
// environment variables. The established DATABASE_URL and
// GEMINI_API_KEY names are honored alongside their prefixed forms.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

const envPrefix = "RESUME_INTEL"

// Weights overrides the screening section weights. The zero value means
// the engine defaults apply. Weights need not sum to one; the pipeline
// normalizes by the weight mass present.
type Weights struct {
	Skills     float64 `mapstructure:"skills"`
	Experience float64 `mapstructure:"experience"`
	Education  float64 `mapstructure:"education"`
	Projects   float64 `mapstructure:"projects"`
	Keywords   float64 `mapstructure:"keywords"`
}

// Map converts the override into the section-keyed form the screening
// pipeline takes. A zero-value Weights yields nil, selecting defaults.
func (w Weights) Map() map[string]float64 {
	if w == (Weights{}) {
		return nil
	}
	return map[string]float64{
		types.SectionSkills:     w.Skills,
		types.SectionExperience: w.Experience,
		types.SectionEducation:  w.Education,
		types.SectionProjects:   w.Projects,
		types.SectionKeywords:   w.Keywords,
	}
}

// Config holds every tunable the CLI and server expose.
type Config struct {
	// ServerAddr is the listen address for the serve command.
	ServerAddr string `mapstructure:"server_addr"`

	// DatabaseURL enables the PostgreSQL results store when set.
	DatabaseURL string `mapstructure:"database_url"`

	// DataDir is the root of the flat-file resume/job store.
	DataDir string `mapstructure:"data_dir"`

	// SessionSecret signs session handles. When empty a random secret
	// is generated at startup, invalidating handles across restarts.
	SessionSecret string `mapstructure:"session_secret"`

	// SessionTimeoutMinutes bounds session idle time. Zero selects the
	// session manager default.
	SessionTimeoutMinutes int `mapstructure:"session_timeout_minutes"`

	// GeminiAPIKey enables the LLM-assisted job parser when set.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	// UseBrowser turns on the headless-browser fallback for
	// script-rendered job postings.
	UseBrowser bool `mapstructure:"use_browser"`

	// MaxFeatures bounds the TF-IDF vocabulary. Zero selects the
	// embedding generator default.
	MaxFeatures int `mapstructure:"max_features"`

	// Weights overrides section weighting for screening.
	Weights Weights `mapstructure:"weights"`

	// Debug lowers the log level threshold; JSONLogs switches the log
	// encoding from console to JSON.
	Debug    bool `mapstructure:"debug"`
	JSONLogs bool `mapstructure:"json_logs"`
}

// Load reads the optional config file at path (or resume-intel.{yaml,json}
// in the working directory when path is empty) plus the environment into
// a validated Config. Pass the viper instance that the CLI bound its
// flags onto so flag values participate in precedence.
func Load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unprefixed names kept for compatibility with existing deployments.
	_ = v.BindEnv("database_url", envPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("gemini_api_key", envPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("resume-intel")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("data_dir", "data")
	v.SetDefault("session_secret", "")
	v.SetDefault("session_timeout_minutes", 60)
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("use_browser", false)
	v.SetDefault("max_features", 1000)
	v.SetDefault("weights.skills", 0.0)
	v.SetDefault("weights.experience", 0.0)
	v.SetDefault("weights.education", 0.0)
	v.SetDefault("weights.projects", 0.0)
	v.SetDefault("weights.keywords", 0.0)
	v.SetDefault("debug", false)
	v.SetDefault("json_logs", false)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return fmt.Errorf("config error: 'server_addr' must not be empty")
	}
	if c.MaxFeatures < 0 {
		return fmt.Errorf("config error: 'max_features' must be non-negative")
	}
	if c.SessionTimeoutMinutes < 0 {
		return fmt.Errorf("config error: 'session_timeout_minutes' must be non-negative")
	}

	weights := []struct {
		name  string
		value float64
	}{
		{"weights.skills", c.Weights.Skills},
		{"weights.experience", c.Weights.Experience},
		{"weights.education", c.Weights.Education},
		{"weights.projects", c.Weights.Projects},
		{"weights.keywords", c.Weights.Keywords},
	}
	for _, w := range weights {
		if w.value < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", w.name)
		}
	}
	return nil
}

// SessionTimeout returns the configured idle timeout as a duration.
// Zero means the session manager default.
func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.SessionTimeoutMinutes) * time.Minute
}
