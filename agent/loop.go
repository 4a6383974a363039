// Package agent implements the bounded tool-calling loop: the model plans its
// own path through the content tools over an append-only conversation and
// signals completion through a terminal finish tool.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/contentloop/repurpose"
	"github.com/contentloop/repurpose/tools"
	"github.com/tmc/langchaingo/llms"
)

// DefaultMaxIterations bounds the number of model turns per run.
const DefaultMaxIterations = 20

// State is an agent run's position in its state machine. A Result carries
// one of the three terminal states.
type State string

const (
	// StateAwaitingModel: the conversation is being sent to the model.
	StateAwaitingModel State = "awaiting_model"

	// StateExecutingTool: tool calls from the last model turn are being
	// dispatched.
	StateExecutingTool State = "executing_tool"

	// StateFinished means the model called finish with its final results.
	StateFinished State = "finished"

	// StateExhausted means the iteration budget ran out, or the model stopped
	// calling tools, before finish was reached. The result carries whatever
	// fragments had been produced by then.
	StateExhausted State = "exhausted"

	// StateFailed means a gateway call failed; the run stops immediately.
	StateFailed State = "failed"
)

// Result is the outcome of one agent run.
type Result struct {
	State        State
	Output       repurpose.WorkflowResult
	Iterations   int
	Conversation []llms.MessageContent
}

// Loop runs the agent: each iteration sends the conversation to the model
// with the full tool set, executes whatever tools the model picked, and
// appends the results for the next turn. A Loop is stateless between runs.
type Loop struct {
	gw            repurpose.Gateway
	box           *tools.Toolbox
	hooks         *repurpose.Hooks
	maxIterations int
}

// New creates a Loop with the default iteration budget.
func New(gw repurpose.Gateway) *Loop {
	return &Loop{
		gw:            gw,
		box:           tools.New(gw),
		maxIterations: DefaultMaxIterations,
	}
}

// WithHooks sets the hook registry. Returns the loop for chaining.
func (l *Loop) WithHooks(hooks *repurpose.Hooks) *Loop {
	l.hooks = hooks
	return l
}

// WithMaxIterations sets the iteration budget. Values below 1 are ignored.
func (l *Loop) WithMaxIterations(n int) *Loop {
	if n >= 1 {
		l.maxIterations = n
	}
	return l
}

// accumulator collects fragments produced by dispatched tools so an exhausted
// run can still report partial output. Later results overwrite earlier ones.
type accumulator struct {
	summary string
	social  repurpose.SocialPosts
	email   repurpose.EmailNewsletter
}

func (a *accumulator) result() repurpose.WorkflowResult {
	return repurpose.WorkflowResult{
		Summary:     a.summary,
		SocialPosts: a.social,
		Email:       a.email,
	}
}

// Run executes the agent loop on the post.
//
// Each iteration makes one unforced model call offering all five tools. Tool
// calls are executed in the order the model requested them and their results
// appended to the conversation. A finish call ends the run immediately; any
// invocations queued after it in the same turn are dropped. A turn with no
// tool calls, or running out of iterations, ends the run as exhausted with
// the fragments accumulated so far.
func (l *Loop) Run(ctx context.Context, post repurpose.BlogPost) (*Result, error) {
	conversation := seedConversation(post)
	var acc accumulator
	var pending []llms.ToolCall
	state := StateAwaitingModel
	iteration := 0

	for {
		switch state {
		case StateAwaitingModel:
			if iteration == l.maxIterations {
				state = StateExhausted
				continue
			}
			iteration++
			l.hooks.FireIteration(ctx, repurpose.IterationEvent{
				Iteration:    iteration,
				Conversation: conversation,
			})

			completion, err := l.gw.Complete(ctx, &repurpose.CompletionRequest{
				Messages: conversation,
				Tools:    repurpose.AgentToolSpecs(),
			})
			if err != nil {
				return &Result{
					State:        StateFailed,
					Iterations:   iteration,
					Conversation: conversation,
				}, fmt.Errorf("agent: model call failed on iteration %d: %w", iteration, err)
			}

			conversation = append(conversation, assistantMessage(completion))

			if !completion.HasToolCalls() {
				// The model stopped planning without finishing.
				state = StateExhausted
				continue
			}
			pending = completion.ToolCalls
			state = StateExecutingTool

		case StateExecutingTool:
			for _, tc := range pending {
				if tc.FunctionCall == nil {
					continue
				}
				name := repurpose.ToolName(tc.FunctionCall.Name)

				if name == repurpose.ToolFinish {
					var args repurpose.FinishArgs
					// Lenient decode: whatever fields the model managed to
					// fill become the result, the rest stay empty.
					_ = repurpose.UnmarshalArgs(tc, &args)
					return &Result{
						State:        StateFinished,
						Output:       args.Result(),
						Iterations:   iteration,
						Conversation: conversation,
					}, nil
				}

				payload := l.dispatch(ctx, iteration, name, tc, post, &acc)
				conversation = append(conversation, toolResponseMessage(tc, payload))
			}
			pending = nil
			state = StateAwaitingModel

		case StateExhausted:
			return &Result{
				State:        StateExhausted,
				Output:       acc.result(),
				Iterations:   iteration,
				Conversation: conversation,
			}, nil
		}
	}
}

// dispatch executes one non-terminal tool call and returns the JSON payload
// to feed back to the model. Unknown tools produce an error observation; the
// loop itself keeps going.
func (l *Loop) dispatch(
	ctx context.Context,
	iteration int,
	name repurpose.ToolName,
	tc llms.ToolCall,
	post repurpose.BlogPost,
	acc *accumulator,
) string {
	argsMap := repurpose.ArgsMap(tc)
	l.hooks.FireBeforeToolCall(ctx, repurpose.BeforeToolCallEvent{
		Iteration: iteration,
		Tool:      name,
		Args:      argsMap,
	})

	start := time.Now()
	var result any

	switch name {
	case repurpose.ToolExtractKeyPoints:
		keyPoints := l.box.ExtractKeyPoints(ctx, post)
		result = map[string]any{"key_points": keyPoints}

	case repurpose.ToolGenerateSummary:
		var args repurpose.GenerateSummaryArgs
		_ = repurpose.UnmarshalArgs(tc, &args)
		keyPoints := l.keyPointsFor(ctx, iteration, name, args.KeyPoints, post)
		summary := l.box.GenerateSummary(ctx, keyPoints)
		acc.summary = summary
		result = map[string]any{"summary": summary}

	case repurpose.ToolCreateSocialMediaPosts:
		var args repurpose.SocialPostsArgs
		_ = repurpose.UnmarshalArgs(tc, &args)
		keyPoints := l.keyPointsFor(ctx, iteration, name, args.KeyPoints, post)
		posts := l.box.CreateSocialPosts(ctx, keyPoints, post.Title)
		acc.social = posts
		result = posts

	case repurpose.ToolCreateEmailNewsletter:
		var args repurpose.EmailNewsletterArgs
		_ = repurpose.UnmarshalArgs(tc, &args)
		keyPoints := l.keyPointsFor(ctx, iteration, name, args.KeyPoints, post)
		summary := args.Summary
		if summary == "" {
			l.hooks.FireFallback(ctx, repurpose.FallbackEvent{
				Iteration: iteration,
				Tool:      name,
				Missing:   "summary",
				Recovery:  repurpose.ToolGenerateSummary,
			})
			summary = l.box.GenerateSummary(ctx, keyPoints)
		}
		email := l.box.CreateEmailNewsletter(ctx, post, summary, keyPoints)
		acc.email = email
		result = email

	default:
		result = map[string]any{"error": fmt.Sprintf("unknown tool: %s", name)}
	}

	l.hooks.FireAfterToolCall(ctx, repurpose.AfterToolCallEvent{
		Iteration: iteration,
		Tool:      name,
		Args:      argsMap,
		Result:    result,
		Duration:  time.Since(start),
	})

	payload, err := json.Marshal(result)
	if err != nil {
		return `{"error":"unencodable tool result"}`
	}
	return string(payload)
}

// keyPointsFor returns the key points a downstream tool should use: the ones
// the model passed along, or freshly extracted ones when the model passed
// none. Each dispatch re-derives independently; nothing is cached across
// calls.
func (l *Loop) keyPointsFor(
	ctx context.Context,
	iteration int,
	tool repurpose.ToolName,
	provided []string,
	post repurpose.BlogPost,
) []string {
	if len(provided) > 0 {
		return provided
	}
	l.hooks.FireFallback(ctx, repurpose.FallbackEvent{
		Iteration: iteration,
		Tool:      tool,
		Missing:   "key_points",
		Recovery:  repurpose.ToolExtractKeyPoints,
	})
	return l.box.ExtractKeyPoints(ctx, post)
}
