package model

// ================ Config ================
type RunConfig struct {
	// MaxSteps bounds reasoning/dispatch cycles per run so a reasoner that
	// keeps retrying a rejected action cannot loop forever.
	MaxSteps int    `envconfig:"RUN_MAX_STEPS" default:"12"`
	TTL      string `envconfig:"THREAD_TTL" default:"24h"`
}

type ReasonerModelConfig struct {
	Model       string  `envconfig:"REASONER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"REASONER_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"REASONER_TEMPERATURE" default:"0.2"`
}

type ApprovalRulesConfig struct {
	// AutoApproveCeiling is the largest payment (in the claim currency) the
	// approval gate will let through without a human in the loop.
	AutoApproveCeiling float64 `envconfig:"APPROVAL_AUTO_CEILING" default:"10000"`
}

type PromptConfig struct {
	BusinessName string `envconfig:"PROMPT_BUSINESS_NAME" default:"SafeDrive Insurance"`
}
