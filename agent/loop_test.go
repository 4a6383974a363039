package agent_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/contentloop/repurpose"
	"github.com/contentloop/repurpose/agent"
	"github.com/contentloop/repurpose/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

var post = repurpose.BlogPost{Title: "Title", Content: "Content"}

var finalResult = repurpose.WorkflowResult{
	Summary:     "S",
	SocialPosts: repurpose.SocialPosts{Twitter: "x", LinkedIn: "y", Facebook: "z"},
	Email:       repurpose.EmailNewsletter{Subject: "Sub", Body: "Body"},
}

func finishCompletion(result repurpose.WorkflowResult) *repurpose.Completion {
	return testutil.ToolCallCompletion(repurpose.ToolFinish, repurpose.FinishArgs{
		Summary:     result.Summary,
		SocialPosts: result.SocialPosts,
		Email:       result.Email,
	})
}

func multiToolCompletion(calls ...*repurpose.Completion) *repurpose.Completion {
	merged := &repurpose.Completion{}
	for _, c := range calls {
		merged.ToolCalls = append(merged.ToolCalls, c.ToolCalls...)
	}
	return merged
}

func TestRunFinish(t *testing.T) {
	ctx := context.Background()

	t.Run("immediate finish maps arguments exactly", func(t *testing.T) {
		gw := &testutil.CannedGateway{
			AgentScript: []*repurpose.Completion{finishCompletion(finalResult)},
		}

		result, err := agent.New(gw).Run(ctx, post)

		require.NoError(t, err)
		assert.Equal(t, agent.StateFinished, result.State)
		assert.Equal(t, finalResult, result.Output)
		assert.Equal(t, 1, result.Iterations)
		// Finish dispatches nothing; one gateway call total.
		assert.Empty(t, gw.ForcedCalls)
		assert.Len(t, gw.Calls, 1)
		// Seed system + user, plus the assistant turn.
		require.Len(t, result.Conversation, 3)
	})

	t.Run("finish drops calls queued after it", func(t *testing.T) {
		gw := &testutil.CannedGateway{
			KeyPoints: []string{"a"},
			AgentScript: []*repurpose.Completion{multiToolCompletion(
				finishCompletion(finalResult),
				testutil.ToolCallCompletion(repurpose.ToolExtractKeyPoints, map[string]any{}),
			)},
		}

		result, err := agent.New(gw).Run(ctx, post)

		require.NoError(t, err)
		assert.Equal(t, agent.StateFinished, result.State)
		assert.Empty(t, gw.ForcedCalls)
	})

	t.Run("partial finish arguments leave rest empty", func(t *testing.T) {
		gw := &testutil.CannedGateway{
			AgentScript: []*repurpose.Completion{testutil.ToolCallCompletion(
				repurpose.ToolFinish,
				map[string]any{"summary": "only this"},
			)},
		}

		result, err := agent.New(gw).Run(ctx, post)

		require.NoError(t, err)
		assert.Equal(t, agent.StateFinished, result.State)
		assert.Equal(t, "only this", result.Output.Summary)
		assert.True(t, result.Output.SocialPosts.IsZero())
		assert.True(t, result.Output.Email.IsZero())
	})
}

func TestRunDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("tools run in requested order and feed the conversation", func(t *testing.T) {
		gw := &testutil.CannedGateway{
			KeyPoints: []string{"a", "b"},
			Summary:   "S",
			AgentScript: []*repurpose.Completion{
				testutil.ToolCallCompletion(repurpose.ToolExtractKeyPoints, map[string]any{}),
				testutil.ToolCallCompletion(repurpose.ToolGenerateSummary,
					repurpose.GenerateSummaryArgs{KeyPoints: []string{"a", "b"}}),
				finishCompletion(finalResult),
			},
		}

		result, err := agent.New(gw).Run(ctx, post)

		require.NoError(t, err)
		assert.Equal(t, agent.StateFinished, result.State)
		assert.Equal(t, 3, result.Iterations)

		roles := make([]llms.ChatMessageType, 0, len(result.Conversation))
		for _, msg := range result.Conversation {
			roles = append(roles, msg.Role)
		}
		assert.Equal(t, []llms.ChatMessageType{
			llms.ChatMessageTypeSystem,
			llms.ChatMessageTypeHuman,
			llms.ChatMessageTypeAI,
			llms.ChatMessageTypeTool,
			llms.ChatMessageTypeAI,
			llms.ChatMessageTypeTool,
			llms.ChatMessageTypeAI,
		}, roles)

		// Tool results carry JSON payloads tied to the originating call.
		toolMsg := result.Conversation[3]
		response, ok := toolMsg.Parts[0].(llms.ToolCallResponse)
		require.True(t, ok)
		assert.Equal(t, "extract_key_points", response.Name)

		var payload map[string][]string
		require.NoError(t, json.Unmarshal([]byte(response.Content), &payload))
		assert.Equal(t, []string{"a", "b"}, payload["key_points"])
	})

	t.Run("summary with provided key points skips recovery", func(t *testing.T) {
		hook := &fallbackRecorder{}
		gw := &testutil.CannedGateway{
			Summary: "S",
			AgentScript: []*repurpose.Completion{
				testutil.ToolCallCompletion(repurpose.ToolGenerateSummary,
					repurpose.GenerateSummaryArgs{KeyPoints: []string{"a"}}),
				finishCompletion(finalResult),
			},
		}

		_, err := agent.New(gw).
			WithHooks(repurpose.NewHooks().Register(hook)).
			Run(ctx, post)

		require.NoError(t, err)
		assert.Empty(t, hook.events)
		assert.Equal(t, 0, gw.ForcedCalls[repurpose.ToolExtractKeyPoints])
		assert.Equal(t, 1, gw.ForcedCalls[repurpose.ToolGenerateSummary])
	})

	t.Run("bare newsletter call recovers key points then summary", func(t *testing.T) {
		hook := &fallbackRecorder{}
		gw := &testutil.CannedGateway{
			KeyPoints: []string{"a", "b"},
			Summary:   "S",
			Email:     repurpose.EmailNewsletter{Subject: "Sub", Body: "Body"},
			AgentScript: []*repurpose.Completion{
				testutil.ToolCallCompletion(repurpose.ToolCreateEmailNewsletter, map[string]any{}),
				finishCompletion(finalResult),
			},
		}

		_, err := agent.New(gw).
			WithHooks(repurpose.NewHooks().Register(hook)).
			Run(ctx, post)

		require.NoError(t, err)
		// Exactly two recovery calls, in dependency order, before the
		// newsletter call itself.
		require.Len(t, hook.events, 2)
		assert.Equal(t, "key_points", hook.events[0].Missing)
		assert.Equal(t, repurpose.ToolExtractKeyPoints, hook.events[0].Recovery)
		assert.Equal(t, "summary", hook.events[1].Missing)
		assert.Equal(t, repurpose.ToolGenerateSummary, hook.events[1].Recovery)

		assert.Equal(t, 1, gw.ForcedCalls[repurpose.ToolExtractKeyPoints])
		assert.Equal(t, 1, gw.ForcedCalls[repurpose.ToolGenerateSummary])
		assert.Equal(t, 1, gw.ForcedCalls[repurpose.ToolCreateEmailNewsletter])
	})

	t.Run("each dispatch re-derives independently", func(t *testing.T) {
		gw := &testutil.CannedGateway{
			KeyPoints: []string{"a"},
			Summary:   "S",
			Social:    repurpose.SocialPosts{Twitter: "x"},
			AgentScript: []*repurpose.Completion{
				testutil.ToolCallCompletion(repurpose.ToolGenerateSummary, map[string]any{}),
				testutil.ToolCallCompletion(repurpose.ToolCreateSocialMediaPosts, map[string]any{}),
				finishCompletion(finalResult),
			},
		}

		_, err := agent.New(gw).Run(ctx, post)

		require.NoError(t, err)
		assert.Equal(t, 2, gw.ForcedCalls[repurpose.ToolExtractKeyPoints])
	})

	t.Run("unknown tool yields error observation and continues", func(t *testing.T) {
		gw := &testutil.CannedGateway{
			AgentScript: []*repurpose.Completion{
				testutil.ToolCallCompletion(repurpose.ToolName("bogus"), map[string]any{}),
				finishCompletion(finalResult),
			},
		}

		result, err := agent.New(gw).Run(ctx, post)

		require.NoError(t, err)
		assert.Equal(t, agent.StateFinished, result.State)

		response, ok := result.Conversation[3].Parts[0].(llms.ToolCallResponse)
		require.True(t, ok)
		assert.Contains(t, response.Content, "unknown tool")
	})
}

func TestRunTermination(t *testing.T) {
	ctx := context.Background()

	t.Run("no tool calls ends exhausted with partial output", func(t *testing.T) {
		gw := &testutil.CannedGateway{
			KeyPoints: []string{"a"},
			Summary:   "partial summary",
			AgentScript: []*repurpose.Completion{
				testutil.ToolCallCompletion(repurpose.ToolGenerateSummary,
					repurpose.GenerateSummaryArgs{KeyPoints: []string{"a"}}),
				testutil.TextCompletion("I think we're done here"),
			},
		}

		result, err := agent.New(gw).Run(ctx, post)

		require.NoError(t, err)
		assert.Equal(t, agent.StateExhausted, result.State)
		assert.Equal(t, "partial summary", result.Output.Summary)
		assert.True(t, result.Output.SocialPosts.IsZero())
	})

	t.Run("iteration budget ends exhausted", func(t *testing.T) {
		var script []*repurpose.Completion
		for i := 0; i < 5; i++ {
			script = append(script, testutil.ToolCallCompletion(
				repurpose.ToolExtractKeyPoints, map[string]any{}))
		}
		gw := &testutil.CannedGateway{KeyPoints: []string{"a"}, AgentScript: script}

		result, err := agent.New(gw).WithMaxIterations(3).Run(ctx, post)

		require.NoError(t, err)
		assert.Equal(t, agent.StateExhausted, result.State)
		assert.Equal(t, 3, result.Iterations)
	})

	t.Run("gateway failure ends failed with error", func(t *testing.T) {
		gw := &testutil.ScriptedGateway{Steps: []testutil.Step{
			{Err: errors.New("boom")},
		}}

		result, err := agent.New(gw).Run(ctx, post)

		require.Error(t, err)
		assert.Equal(t, agent.StateFailed, result.State)
		assert.Equal(t, 1, result.Iterations)
	})

	t.Run("fires iteration hooks with growing conversation", func(t *testing.T) {
		hook := &iterationRecorder{}
		gw := &testutil.CannedGateway{
			KeyPoints: []string{"a"},
			AgentScript: []*repurpose.Completion{
				testutil.ToolCallCompletion(repurpose.ToolExtractKeyPoints, map[string]any{}),
				finishCompletion(finalResult),
			},
		}

		_, err := agent.New(gw).
			WithHooks(repurpose.NewHooks().Register(hook)).
			Run(ctx, post)

		require.NoError(t, err)
		require.Len(t, hook.sizes, 2)
		assert.Equal(t, 2, hook.sizes[0])
		assert.Equal(t, 4, hook.sizes[1])
	})
}

type fallbackRecorder struct {
	events []repurpose.FallbackEvent
}

func (r *fallbackRecorder) OnFallback(_ context.Context, event repurpose.FallbackEvent) {
	r.events = append(r.events, event)
}

type iterationRecorder struct {
	sizes []int
}

func (r *iterationRecorder) OnIteration(_ context.Context, event repurpose.IterationEvent) {
	r.sizes = append(r.sizes, len(event.Conversation))
}
