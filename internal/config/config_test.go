package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 1000, cfg.MaxFeatures)
	assert.Equal(t, 60, cfg.SessionTimeoutMinutes)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.False(t, cfg.UseBrowser)
	assert.Equal(t, Weights{}, cfg.Weights)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeTempConfig(t, "resume-intel.yaml", `
server_addr: ":9000"
data_dir: /var/lib/resume-intel
max_features: 500
use_browser: true
weights:
  skills: 0.5
  experience: 0.3
  education: 0.1
  projects: 0.05
  keywords: 0.05
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ServerAddr)
	assert.Equal(t, "/var/lib/resume-intel", cfg.DataDir)
	assert.Equal(t, 500, cfg.MaxFeatures)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, Weights{Skills: 0.5, Experience: 0.3, Education: 0.1, Projects: 0.05, Keywords: 0.05}, cfg.Weights)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{
		"server_addr": ":7070",
		"session_timeout_minutes": 15
	}`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ServerAddr)
	assert.Equal(t, 15, cfg.SessionTimeoutMinutes)
	// Untouched keys keep their defaults.
	assert.Equal(t, "data", cfg.DataDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeTempConfig(t, "resume-intel.yaml", `server_addr: ":9000"`)
	t.Setenv("RESUME_INTEL_SERVER_ADDR", ":9999")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ServerAddr)
}

func TestLoad_NestedWeightEnv(t *testing.T) {
	t.Setenv("RESUME_INTEL_WEIGHTS_SKILLS", "0.9")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.InDelta(t, 0.9, cfg.Weights.Skills, 1e-9)
}

func TestLoad_UnprefixedDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/resumes")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/resumes", cfg.DatabaseURL)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
}

func TestLoad_BadFile(t *testing.T) {
	path := writeTempConfig(t, "resume-intel.yaml", "server_addr: [unclosed")

	cfg, err := Load(viper.New(), path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	cfg, err := Load(viper.New(), "/nonexistent/resume-intel.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := writeTempConfig(t, "resume-intel.yaml", `max_features: -1`)

	cfg, err := Load(viper.New(), path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "'max_features' must be non-negative")
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := &Config{ServerAddr: ":8080", Weights: Weights{Skills: -0.1}}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "'weights.skills' must be non-negative")
}

func TestValidate_NegativeSessionTimeout(t *testing.T) {
	cfg := &Config{ServerAddr: ":8080", SessionTimeoutMinutes: -5}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "'session_timeout_minutes' must be non-negative")
}

func TestValidate_EmptyServerAddr(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "'server_addr' must not be empty")
}

func TestWeights_MapZeroValueIsNil(t *testing.T) {
	assert.Nil(t, Weights{}.Map())
}

func TestWeights_MapKeysBySection(t *testing.T) {
	w := Weights{Skills: 0.4, Experience: 0.3, Education: 0.1, Projects: 0.1, Keywords: 0.1}

	m := w.Map()
	require.Len(t, m, 5)
	assert.InDelta(t, 0.4, m[types.SectionSkills], 1e-9)
	assert.InDelta(t, 0.3, m[types.SectionExperience], 1e-9)
	assert.InDelta(t, 0.1, m[types.SectionKeywords], 1e-9)
}

func TestSessionTimeout_Conversion(t *testing.T) {
	cfg := &Config{SessionTimeoutMinutes: 90}
	assert.Equal(t, 90*time.Minute, cfg.SessionTimeout())

	cfg = &Config{}
	assert.Equal(t, time.Duration(0), cfg.SessionTimeout())
}
