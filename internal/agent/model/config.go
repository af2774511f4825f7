package model

// ================ Config ================

// ClassifierModelConfig configures the LLM intent classifier. Temperature
// defaults to zero so identical input yields identical labels.
type ClassifierModelConfig struct {
	Model       string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"16"`
	Temperature float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0"`
	Timeout     string  `envconfig:"CLASSIFIER_TIMEOUT" default:"5s"`
}

// ServerConfig configures the HTTP shell around the pipeline.
type ServerConfig struct {
	Addr string `envconfig:"SERVER_ADDR" default:":8080"`
}
