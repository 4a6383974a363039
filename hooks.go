package repurpose

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"
)

// -----------------------------------------------------------------------------
// Hook interfaces
// -----------------------------------------------------------------------------
//
// Hooks observe execution; they never feed back into control flow. Implement
// any combination of the interfaces below and register with a Hooks registry:
//
//	hooks := repurpose.NewHooks().Register(loggers.NewConsole(os.Stdout))
//	loop := agent.New(gw).WithHooks(hooks)
//
// Hooks are called in registration order, synchronously, on the calling
// goroutine. They should not panic.

// BeforeModelCallHook is notified before each gateway call.
type BeforeModelCallHook interface {
	OnBeforeModelCall(ctx context.Context, event BeforeModelCallEvent)
}

// AfterModelCallHook is notified after each gateway call completes.
type AfterModelCallHook interface {
	OnAfterModelCall(ctx context.Context, event AfterModelCallEvent)
}

// BeforeToolCallHook is notified before the agent loop dispatches a tool.
type BeforeToolCallHook interface {
	OnBeforeToolCall(ctx context.Context, event BeforeToolCallEvent)
}

// AfterToolCallHook is notified after a dispatched tool returns.
type AfterToolCallHook interface {
	OnAfterToolCall(ctx context.Context, event AfterToolCallEvent)
}

// IterationHook is notified at the start of each agent-loop iteration with a
// snapshot of the conversation so far.
type IterationHook interface {
	OnIteration(ctx context.Context, event IterationEvent)
}

// FallbackHook is notified when the agent loop re-derives missing upstream
// data before dispatching a tool.
type FallbackHook interface {
	OnFallback(ctx context.Context, event FallbackEvent)
}

// EvaluationHook is notified after each reflexion evaluation.
type EvaluationHook interface {
	OnEvaluation(ctx context.Context, event EvaluationEvent)
}

// ImprovementHook is notified after each reflexion improvement step.
type ImprovementHook interface {
	OnImprovement(ctx context.Context, event ImprovementEvent)
}

// -----------------------------------------------------------------------------
// Events
// -----------------------------------------------------------------------------

// BeforeModelCallEvent carries the outgoing gateway request.
type BeforeModelCallEvent struct {
	Request *CompletionRequest
}

// AfterModelCallEvent carries the gateway response (or error) and timing.
type AfterModelCallEvent struct {
	Request    *CompletionRequest
	Completion *Completion
	Duration   time.Duration
	Err        error
}

// BeforeToolCallEvent carries a tool about to be dispatched by the agent
// loop, with the raw invocation arguments.
type BeforeToolCallEvent struct {
	Iteration int
	Tool      ToolName
	Args      map[string]any
}

// AfterToolCallEvent carries a dispatched tool's result.
type AfterToolCallEvent struct {
	Iteration int
	Tool      ToolName
	Args      map[string]any
	Result    any
	Duration  time.Duration
}

// IterationEvent carries the iteration number and a snapshot of the
// conversation. The slice must be treated as read-only.
type IterationEvent struct {
	Iteration    int
	Conversation []llms.MessageContent
}

// FallbackEvent records one fallback re-derivation: Tool was invoked without
// Missing, so Recovery was run first.
type FallbackEvent struct {
	Iteration int
	Tool      ToolName
	Missing   string
	Recovery  ToolName
}

// EvaluationEvent records one reflexion evaluation.
type EvaluationEvent struct {
	ContentType string
	Attempt     int
	Score       float64
	Feedback    string
}

// ImprovementEvent records one reflexion improvement step, with the content
// before and after.
type ImprovementEvent struct {
	ContentType string
	Attempt     int
	Before      string
	After       string
}

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

// Hooks is a registry of hook implementations. A nil *Hooks is valid and
// fires nothing, so components can hold one without nil checks.
type Hooks struct {
	hooks []any
}

// NewHooks creates an empty registry.
func NewHooks() *Hooks {
	return &Hooks{}
}

// Register adds a hook implementing any combination of the hook interfaces.
// Returns the registry for chaining.
func (h *Hooks) Register(hook any) *Hooks {
	h.hooks = append(h.hooks, hook)
	return h
}

// FireBeforeModelCall notifies all BeforeModelCallHook implementations.
func (h *Hooks) FireBeforeModelCall(ctx context.Context, event BeforeModelCallEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if impl, ok := hook.(BeforeModelCallHook); ok {
			impl.OnBeforeModelCall(ctx, event)
		}
	}
}

// FireAfterModelCall notifies all AfterModelCallHook implementations.
func (h *Hooks) FireAfterModelCall(ctx context.Context, event AfterModelCallEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if impl, ok := hook.(AfterModelCallHook); ok {
			impl.OnAfterModelCall(ctx, event)
		}
	}
}

// FireBeforeToolCall notifies all BeforeToolCallHook implementations.
func (h *Hooks) FireBeforeToolCall(ctx context.Context, event BeforeToolCallEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if impl, ok := hook.(BeforeToolCallHook); ok {
			impl.OnBeforeToolCall(ctx, event)
		}
	}
}

// FireAfterToolCall notifies all AfterToolCallHook implementations.
func (h *Hooks) FireAfterToolCall(ctx context.Context, event AfterToolCallEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if impl, ok := hook.(AfterToolCallHook); ok {
			impl.OnAfterToolCall(ctx, event)
		}
	}
}

// FireIteration notifies all IterationHook implementations.
func (h *Hooks) FireIteration(ctx context.Context, event IterationEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if impl, ok := hook.(IterationHook); ok {
			impl.OnIteration(ctx, event)
		}
	}
}

// FireFallback notifies all FallbackHook implementations.
func (h *Hooks) FireFallback(ctx context.Context, event FallbackEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if impl, ok := hook.(FallbackHook); ok {
			impl.OnFallback(ctx, event)
		}
	}
}

// FireEvaluation notifies all EvaluationHook implementations.
func (h *Hooks) FireEvaluation(ctx context.Context, event EvaluationEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if impl, ok := hook.(EvaluationHook); ok {
			impl.OnEvaluation(ctx, event)
		}
	}
}

// FireImprovement notifies all ImprovementHook implementations.
func (h *Hooks) FireImprovement(ctx context.Context, event ImprovementEvent) {
	if h == nil {
		return
	}
	for _, hook := range h.hooks {
		if impl, ok := hook.(ImprovementHook); ok {
			impl.OnImprovement(ctx, event)
		}
	}
}
