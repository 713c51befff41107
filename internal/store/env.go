package store

import "github.com/kelseyhightower/envconfig"

// Env holds process-level settings supplied through the environment.
// API keys stay here rather than in config.yaml so credentials never land
// in version control; a missing primary key is not an error as long as a
// fallback provider is configured.
type Env struct {
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	LogDir       string `envconfig:"TRADER_LOG_DIR" default:"logs"`
	LogRetention int    `envconfig:"TRADER_LOG_RETENTION_DAYS"`
}

func LoadEnv() (*Env, error) {
	var e Env
	if err := envconfig.Process("", &e); err != nil {
		return nil, err
	}
	return &e, nil
}
