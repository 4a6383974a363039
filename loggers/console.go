// Package loggers provides ready-made hook implementations: a human-oriented
// console logger and a structured zerolog logger.
package loggers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/contentloop/repurpose"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/tmc/langchaingo/llms"
	"gopkg.in/yaml.v3"
)

const defaultTruncateAt = 400

// Console writes a readable trace of a run: tool calls with YAML-dumped
// arguments and results, reflexion scores, and unified diffs of improvement
// steps. Meant for watching a run in a terminal, not for machine parsing.
type Console struct {
	w          io.Writer
	truncateAt int
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, truncateAt: defaultTruncateAt}
}

// WithTruncateAt sets the length at which dumped values are cut off. Values
// below 1 disable truncation. Returns the logger for chaining.
func (c *Console) WithTruncateAt(n int) *Console {
	c.truncateAt = n
	return c
}

var (
	_ repurpose.IterationHook      = (*Console)(nil)
	_ repurpose.BeforeToolCallHook = (*Console)(nil)
	_ repurpose.AfterToolCallHook  = (*Console)(nil)
	_ repurpose.FallbackHook       = (*Console)(nil)
	_ repurpose.EvaluationHook     = (*Console)(nil)
	_ repurpose.ImprovementHook    = (*Console)(nil)
)

// OnIteration implements repurpose.IterationHook.
func (c *Console) OnIteration(_ context.Context, event repurpose.IterationEvent) {
	fmt.Fprintf(c.w, "--- iteration %d (%d messages) ---\n",
		event.Iteration, len(event.Conversation))
	if len(event.Conversation) == 0 {
		return
	}
	last := event.Conversation[len(event.Conversation)-1]
	fmt.Fprintf(c.w, "last: [%s] %s\n", last.Role, c.truncate(messageText(last)))
}

// OnBeforeToolCall implements repurpose.BeforeToolCallHook.
func (c *Console) OnBeforeToolCall(_ context.Context, event repurpose.BeforeToolCallEvent) {
	fmt.Fprintf(c.w, "-> %s\n", event.Tool)
	c.dump(event.Args)
}

// OnAfterToolCall implements repurpose.AfterToolCallHook.
func (c *Console) OnAfterToolCall(_ context.Context, event repurpose.AfterToolCallEvent) {
	fmt.Fprintf(c.w, "<- %s (%s)\n", event.Tool, event.Duration.Round(time.Millisecond))
	c.dump(event.Result)
}

// OnFallback implements repurpose.FallbackHook.
func (c *Console) OnFallback(_ context.Context, event repurpose.FallbackEvent) {
	fmt.Fprintf(c.w, "!! %s missing %s, recovering via %s\n",
		event.Tool, event.Missing, event.Recovery)
}

// OnEvaluation implements repurpose.EvaluationHook.
func (c *Console) OnEvaluation(_ context.Context, event repurpose.EvaluationEvent) {
	fmt.Fprintf(c.w, "eval %s attempt %d: %.2f\n",
		event.ContentType, event.Attempt, event.Score)
	fmt.Fprintf(c.w, "  %s\n", c.truncate(event.Feedback))
}

// OnImprovement implements repurpose.ImprovementHook.
func (c *Console) OnImprovement(_ context.Context, event repurpose.ImprovementEvent) {
	fmt.Fprintf(c.w, "improve %s attempt %d:\n", event.ContentType, event.Attempt)
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(event.Before),
		B:        difflib.SplitLines(event.After),
		FromFile: "before",
		ToFile:   "after",
		Context:  2,
	})
	if err != nil || diff == "" {
		fmt.Fprintln(c.w, "  (unchanged)")
		return
	}
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		fmt.Fprintf(c.w, "  %s\n", line)
	}
}

func (c *Console) dump(v any) {
	if v == nil {
		return
	}
	encoded, err := yaml.Marshal(v)
	if err != nil {
		fmt.Fprintf(c.w, "  (undumpable: %v)\n", err)
		return
	}
	text := c.truncate(strings.TrimRight(string(encoded), "\n"))
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(c.w, "  %s\n", line)
	}
}

func (c *Console) truncate(s string) string {
	if c.truncateAt < 1 || len(s) <= c.truncateAt {
		return s
	}
	return s[:c.truncateAt] + "..."
}

func messageText(msg llms.MessageContent) string {
	var parts []string
	for _, part := range msg.Parts {
		switch p := part.(type) {
		case llms.TextContent:
			parts = append(parts, p.Text)
		case llms.ToolCall:
			if p.FunctionCall != nil {
				parts = append(parts, fmt.Sprintf("tool_call:%s", p.FunctionCall.Name))
			}
		case llms.ToolCallResponse:
			parts = append(parts, fmt.Sprintf("tool_result:%s", p.Name))
		}
	}
	return strings.Join(parts, " | ")
}
