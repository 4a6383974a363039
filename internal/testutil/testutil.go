// Package testutil provides gateway fakes shared by the package tests.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/contentloop/repurpose"
	"github.com/tmc/langchaingo/llms"
)

// ToolCallCompletion builds a completion containing a single tool call with
// the given arguments, marshaled to JSON.
func ToolCallCompletion(name repurpose.ToolName, args any) *repurpose.Completion {
	encoded, err := json.Marshal(args)
	if err != nil {
		panic(fmt.Sprintf("testutil: unencodable args for %s: %v", name, err))
	}
	return &repurpose.Completion{
		ToolCalls: []llms.ToolCall{{
			ID:   fmt.Sprintf("call-%s", name),
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      string(name),
				Arguments: string(encoded),
			},
		}},
	}
}

// TextCompletion builds a text-only completion.
func TextCompletion(text string) *repurpose.Completion {
	return &repurpose.Completion{Text: text}
}

// -----------------------------------------------------------------------------
// ScriptedGateway
// -----------------------------------------------------------------------------

// Step is one scripted gateway response.
type Step struct {
	Completion *repurpose.Completion
	Err        error
}

// ScriptedGateway replays a fixed sequence of responses and records every
// request it receives. Running past the script is a test bug and fails with
// an error response.
type ScriptedGateway struct {
	Steps []Step
	Calls []*repurpose.CompletionRequest
}

var _ repurpose.Gateway = (*ScriptedGateway)(nil)

// Complete implements repurpose.Gateway.
func (g *ScriptedGateway) Complete(
	_ context.Context,
	req *repurpose.CompletionRequest,
) (*repurpose.Completion, error) {
	g.Calls = append(g.Calls, req)
	if len(g.Steps) == 0 {
		return nil, fmt.Errorf("testutil: scripted gateway exhausted after %d calls", len(g.Calls))
	}
	step := g.Steps[0]
	g.Steps = g.Steps[1:]
	return step.Completion, step.Err
}

// -----------------------------------------------------------------------------
// CannedGateway
// -----------------------------------------------------------------------------

// CannedGateway answers by request shape instead of call order, so one fake
// can back a whole workflow run:
//
//   - forced tool calls return the canned arguments for that tool,
//   - unforced tool-offering calls pop the AgentScript queue,
//   - free-form calls answer with EvalReply or ImproveReply depending on
//     whether the system prompt asks for an evaluation.
type CannedGateway struct {
	KeyPoints []string
	Summary   string
	Social    repurpose.SocialPosts
	Email     repurpose.EmailNewsletter

	AgentScript []*repurpose.Completion

	EvalReply    string
	ImproveReply string

	Calls       []*repurpose.CompletionRequest
	ForcedCalls map[repurpose.ToolName]int
}

var _ repurpose.Gateway = (*CannedGateway)(nil)

// Complete implements repurpose.Gateway.
func (g *CannedGateway) Complete(
	_ context.Context,
	req *repurpose.CompletionRequest,
) (*repurpose.Completion, error) {
	g.Calls = append(g.Calls, req)

	switch {
	case req.ForcedTool != "":
		name := repurpose.ToolName(req.ForcedTool)
		if g.ForcedCalls == nil {
			g.ForcedCalls = map[repurpose.ToolName]int{}
		}
		g.ForcedCalls[name]++
		return ToolCallCompletion(name, g.forcedArgs(name)), nil

	case len(req.Tools) > 0:
		if len(g.AgentScript) == 0 {
			return TextCompletion("done"), nil
		}
		next := g.AgentScript[0]
		g.AgentScript = g.AgentScript[1:]
		return next, nil

	default:
		if strings.HasPrefix(systemText(req.Messages), "Evaluate") {
			reply := g.EvalReply
			if reply == "" {
				reply = "SCORE: 0.9\nGood work overall."
			}
			return TextCompletion(reply), nil
		}
		reply := g.ImproveReply
		if reply == "" {
			reply = "improved content"
		}
		return TextCompletion(reply), nil
	}
}

func (g *CannedGateway) forcedArgs(name repurpose.ToolName) any {
	switch name {
	case repurpose.ToolExtractKeyPoints:
		return repurpose.ExtractKeyPointsArgs{KeyPoints: g.KeyPoints}
	case repurpose.ToolGenerateSummary:
		return repurpose.GenerateSummaryArgs{Summary: g.Summary}
	case repurpose.ToolCreateSocialMediaPosts:
		return repurpose.SocialPostsArgs{
			Twitter:  g.Social.Twitter,
			LinkedIn: g.Social.LinkedIn,
			Facebook: g.Social.Facebook,
		}
	case repurpose.ToolCreateEmailNewsletter:
		return repurpose.EmailNewsletterArgs{Subject: g.Email.Subject, Body: g.Email.Body}
	default:
		panic(fmt.Sprintf("testutil: no canned args for tool %s", name))
	}
}

func systemText(messages []llms.MessageContent) string {
	for _, msg := range messages {
		if msg.Role != llms.ChatMessageTypeSystem {
			continue
		}
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				return text.Text
			}
		}
	}
	return ""
}
