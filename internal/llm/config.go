// Package llm holds model configuration and client abstractions for the
// generative backends used by job ingestion. Callers pick a capability tier
// rather than a concrete model name so models can be swapped per deployment.
package llm

// ModelTier names a capability level rather than a concrete model.
type ModelTier string

const (
	// TierLite is for cheap, high-volume work: classification and light cleanup
	TierLite ModelTier = "lite"
	// TierStandard is for structured output: parsing postings into typed records
	TierStandard ModelTier = "standard"
	// TierAdvanced is for heavier reasoning over long or messy postings
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies an LLM backend.
type Provider string

// Provider constants define the supported backends
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
	// ProviderAnthropic is the Anthropic/Claude provider (future)
	ProviderAnthropic Provider = "anthropic"
)

// Config maps capability tiers to concrete model names for one provider.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini).
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini tier mapping.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to a model name, falling back to the standard
// tier and then the lite tier when the requested one is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier overridden. The
// receiver is left untouched so shared defaults stay safe to reuse.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	override := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)+1),
	}
	for k, v := range c.Models {
		override.Models[k] = v
	}
	override.Models[tier] = model
	return override
}
