package loggers

import (
	"context"

	"github.com/contentloop/repurpose"
	"github.com/rs/zerolog"
)

// Zerolog emits one structured event per hook notification. Pair it with a
// console writer for local runs or leave the logger as-is for JSON output.
type Zerolog struct {
	log zerolog.Logger
}

// NewZerolog creates a Zerolog hook around the given logger.
func NewZerolog(log zerolog.Logger) *Zerolog {
	return &Zerolog{log: log}
}

var (
	_ repurpose.BeforeModelCallHook = (*Zerolog)(nil)
	_ repurpose.AfterModelCallHook  = (*Zerolog)(nil)
	_ repurpose.IterationHook       = (*Zerolog)(nil)
	_ repurpose.BeforeToolCallHook  = (*Zerolog)(nil)
	_ repurpose.AfterToolCallHook   = (*Zerolog)(nil)
	_ repurpose.FallbackHook        = (*Zerolog)(nil)
	_ repurpose.EvaluationHook      = (*Zerolog)(nil)
	_ repurpose.ImprovementHook     = (*Zerolog)(nil)
)

// OnBeforeModelCall implements repurpose.BeforeModelCallHook.
func (z *Zerolog) OnBeforeModelCall(_ context.Context, event repurpose.BeforeModelCallEvent) {
	z.log.Debug().
		Int("messages", len(event.Request.Messages)).
		Int("tools", len(event.Request.Tools)).
		Str("forced_tool", event.Request.ForcedTool).
		Msg("model call")
}

// OnAfterModelCall implements repurpose.AfterModelCallHook.
func (z *Zerolog) OnAfterModelCall(_ context.Context, event repurpose.AfterModelCallEvent) {
	entry := z.log.Debug().Dur("duration", event.Duration)
	if event.Err != nil {
		z.log.Error().Dur("duration", event.Duration).Err(event.Err).Msg("model call failed")
		return
	}
	if event.Completion != nil {
		entry = entry.Int("tool_calls", len(event.Completion.ToolCalls)).
			Int("text_len", len(event.Completion.Text))
	}
	entry.Msg("model call done")
}

// OnIteration implements repurpose.IterationHook.
func (z *Zerolog) OnIteration(_ context.Context, event repurpose.IterationEvent) {
	z.log.Info().
		Int("iteration", event.Iteration).
		Int("messages", len(event.Conversation)).
		Msg("agent iteration")
}

// OnBeforeToolCall implements repurpose.BeforeToolCallHook.
func (z *Zerolog) OnBeforeToolCall(_ context.Context, event repurpose.BeforeToolCallEvent) {
	z.log.Info().
		Int("iteration", event.Iteration).
		Str("tool", string(event.Tool)).
		Msg("tool dispatch")
}

// OnAfterToolCall implements repurpose.AfterToolCallHook.
func (z *Zerolog) OnAfterToolCall(_ context.Context, event repurpose.AfterToolCallEvent) {
	z.log.Info().
		Int("iteration", event.Iteration).
		Str("tool", string(event.Tool)).
		Dur("duration", event.Duration).
		Msg("tool done")
}

// OnFallback implements repurpose.FallbackHook.
func (z *Zerolog) OnFallback(_ context.Context, event repurpose.FallbackEvent) {
	z.log.Warn().
		Int("iteration", event.Iteration).
		Str("tool", string(event.Tool)).
		Str("missing", event.Missing).
		Str("recovery", string(event.Recovery)).
		Msg("fallback recovery")
}

// OnEvaluation implements repurpose.EvaluationHook.
func (z *Zerolog) OnEvaluation(_ context.Context, event repurpose.EvaluationEvent) {
	z.log.Info().
		Str("content_type", event.ContentType).
		Int("attempt", event.Attempt).
		Float64("score", event.Score).
		Msg("evaluation")
}

// OnImprovement implements repurpose.ImprovementHook.
func (z *Zerolog) OnImprovement(_ context.Context, event repurpose.ImprovementEvent) {
	z.log.Info().
		Str("content_type", event.ContentType).
		Int("attempt", event.Attempt).
		Int("before_len", len(event.Before)).
		Int("after_len", len(event.After)).
		Msg("improvement")
}
