package repurpose

import (
	"errors"
	"os"
)

// Environment variables read by ConfigFromEnv. The completion service is any
// OpenAI-compatible endpoint.
const (
	EnvAPIKey  = "NGU_API_KEY"
	EnvBaseURL = "NGU_BASE_URL"
	EnvModel   = "NGU_MODEL"
)

// Config holds the completion-service settings. It is constructed once at
// process start and passed into the gateway constructor; nothing in this
// module reads the environment after startup.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ConfigFromEnv reads Config from the NGU_* environment variables.
func ConfigFromEnv() Config {
	return Config{
		APIKey:  os.Getenv(EnvAPIKey),
		BaseURL: os.Getenv(EnvBaseURL),
		Model:   os.Getenv(EnvModel),
	}
}

// Validate reports whether the config is sufficient to construct a gateway.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("repurpose: missing API key (set " + EnvAPIKey + ")")
	}
	if c.Model == "" {
		return errors.New("repurpose: missing model name (set " + EnvModel + ")")
	}
	return nil
}
