package workflow

import (
	"context"

	"github.com/contentloop/repurpose"
	"github.com/contentloop/repurpose/agent"
)

// AgentFlow runs the agent loop as a workflow, so both orchestrations share
// one calling convention.
type AgentFlow struct {
	loop *agent.Loop
}

// NewAgentFlow creates an AgentFlow with the default iteration budget.
func NewAgentFlow(gw repurpose.Gateway) *AgentFlow {
	return &AgentFlow{loop: agent.New(gw)}
}

// WithHooks sets the hook registry. Returns the flow for chaining.
func (f *AgentFlow) WithHooks(hooks *repurpose.Hooks) *AgentFlow {
	f.loop.WithHooks(hooks)
	return f
}

// WithMaxIterations sets the agent iteration budget. Values below 1 are
// ignored.
func (f *AgentFlow) WithMaxIterations(n int) *AgentFlow {
	f.loop.WithMaxIterations(n)
	return f
}

// Run executes the agent loop on the post. The error is non-nil only when a
// gateway call failed mid-run; an exhausted run is a valid (partial) result.
func (f *AgentFlow) Run(ctx context.Context, post repurpose.BlogPost) (*agent.Result, error) {
	return f.loop.Run(ctx, post)
}
