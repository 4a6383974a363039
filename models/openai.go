package models

import (
	"fmt"

	"github.com/contentloop/repurpose"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewOpenAI constructs a gateway for an OpenAI-compatible chat completion
// endpoint from the given config. BaseURL is optional; leaving it empty uses
// the provider default.
func NewOpenAI(cfg repurpose.Config) (*LCG, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("models: create openai client: %w", err)
	}
	return NewLCG(llm), nil
}
