// Package models provides Gateway implementations backed by LangChainGo,
// so any provider with an llms.Model adapter (OpenAI, Anthropic, Ollama,
// OpenAI-compatible endpoints) can serve as the completion service.
package models

import (
	"context"
	"time"

	"github.com/contentloop/repurpose"
	"github.com/tmc/langchaingo/llms"
)

// LCG wraps an llms.Model and implements repurpose.Gateway. It translates
// the tool specification set and forced-tool constraint into LangChainGo
// call options, normalizes the first choice into a Completion, and fires
// model-call hooks around every request.
type LCG struct {
	model llms.Model
	hooks *repurpose.Hooks
}

// NewLCG creates a gateway wrapping the given llms.Model.
func NewLCG(model llms.Model) *LCG {
	return &LCG{model: model}
}

// WithHooks sets the hook registry fired around model calls.
// Returns the gateway for chaining.
func (g *LCG) WithHooks(hooks *repurpose.Hooks) *LCG {
	g.hooks = hooks
	return g
}

// Unwrap returns the underlying llms.Model.
func (g *LCG) Unwrap() llms.Model {
	return g.model
}

// Complete implements repurpose.Gateway.
func (g *LCG) Complete(
	ctx context.Context,
	req *repurpose.CompletionRequest,
) (*repurpose.Completion, error) {
	g.hooks.FireBeforeModelCall(ctx, repurpose.BeforeModelCallEvent{Request: req})

	var opts []llms.CallOption
	if len(req.Tools) > 0 {
		opts = append(opts, llms.WithTools(req.Tools))
	}
	if req.ForcedTool != "" {
		opts = append(opts, llms.WithToolChoice(map[string]any{
			"type":     "function",
			"function": map[string]any{"name": req.ForcedTool},
		}))
	}

	start := time.Now()
	resp, err := g.model.GenerateContent(ctx, req.Messages, opts...)
	duration := time.Since(start)

	completion, err := normalize(resp, err)

	g.hooks.FireAfterModelCall(ctx, repurpose.AfterModelCallEvent{
		Request:    req,
		Completion: completion,
		Duration:   duration,
		Err:        err,
	})

	return completion, err
}

// normalize converts an llms.ContentResponse into a Completion, enforcing
// the text/tool-calls exclusivity the workflows rely on.
func normalize(resp *llms.ContentResponse, err error) (*repurpose.Completion, error) {
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, repurpose.ErrNoCompletion
	}

	choice := resp.Choices[0]
	if len(choice.ToolCalls) > 0 {
		return &repurpose.Completion{ToolCalls: choice.ToolCalls}, nil
	}
	return &repurpose.Completion{Text: choice.Content}, nil
}

// Compile-time check that LCG implements repurpose.Gateway.
var _ repurpose.Gateway = (*LCG)(nil)
