package llm

// ModelTier selects model capability per task. Planning and replanning need
// more reasoning than reranking a small candidate list.
type ModelTier string

const (
	// TierLite is for cheap structured extraction (reranking).
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning (query generation).
	TierStandard ModelTier = "standard"
	// TierAdvanced is for planning and replanning.
	TierAdvanced ModelTier = "advanced"
)

// Config maps tiers to concrete model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini tier mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// Model returns the model name for a tier, falling back to standard then
// lite when the tier is not configured.
func (c *Config) Model(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return c.Models[TierLite]
}
