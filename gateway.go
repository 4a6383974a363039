package repurpose

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// Gateway is the boundary through which every model call passes. Everything
// the workflows need from the completion service fits through this one
// method; the HTTP client, credentials, and retry behavior all live behind
// it (see the models package for the langchaingo-backed implementation).
type Gateway interface {
	// Complete sends the conversation to the model and returns either plain
	// text or a set of tool invocations, never both.
	//
	// The call blocks until the service responds; the only timeout is
	// whatever the implementation (or ctx) enforces.
	Complete(ctx context.Context, req *CompletionRequest) (*Completion, error)
}

// CompletionRequest is a single request to the completion service.
type CompletionRequest struct {
	// Messages is the full conversation so far, in order.
	Messages []llms.MessageContent

	// Tools is the tool specification set offered to the model. Empty means
	// a free-form text response is expected.
	Tools []llms.Tool

	// ForcedTool, when set, constrains the model to respond with exactly one
	// invocation of the named tool. It must name one of the entries in Tools.
	ForcedTool string
}

// Completion is the model's response. Text and ToolCalls are mutually
// exclusive: when the model elects to invoke tools, Text is empty.
type Completion struct {
	Text      string
	ToolCalls []llms.ToolCall
}

// HasToolCalls reports whether the model responded with tool invocations
// instead of text.
func (c *Completion) HasToolCalls() bool {
	return c != nil && len(c.ToolCalls) > 0
}
