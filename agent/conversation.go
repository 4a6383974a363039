package agent

import (
	"fmt"

	"github.com/contentloop/repurpose"
	"github.com/tmc/langchaingo/llms"
)

// systemPrompt describes the four-stage repurposing goal. The model is free
// to order the tool calls itself; finish is the only terminal action.
const systemPrompt = `You are a Content Repurposing Agent. Your job is to take a blog post and repurpose it into:
1. Extracted key points
2. A concise summary
3. Social media posts
4. An email newsletter
Use the tools provided, and when you're done, call the 'finish' tool with all the final results.`

// seedConversation builds the initial system + user messages. Everything
// after these two entries is appended, never rewritten.
func seedConversation(post repurpose.BlogPost) []llms.MessageContent {
	return []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman,
			fmt.Sprintf("Blog:\n\nTitle: %s\n\nContent: %s", post.Title, post.Content)),
	}
}

// assistantMessage converts a completion into the assistant's conversation
// entry, preserving tool-call metadata so later turns can see what the model
// asked for.
func assistantMessage(completion *repurpose.Completion) llms.MessageContent {
	msg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
	if completion.Text != "" {
		msg.Parts = append(msg.Parts, llms.TextContent{Text: completion.Text})
	}
	for _, tc := range completion.ToolCalls {
		msg.Parts = append(msg.Parts, tc)
	}
	return msg
}

// toolResponseMessage builds the tool-result entry referencing the
// originating invocation.
func toolResponseMessage(tc llms.ToolCall, payload string) llms.MessageContent {
	name := ""
	if tc.FunctionCall != nil {
		name = tc.FunctionCall.Name
	}
	return llms.MessageContent{
		Role: llms.ChatMessageTypeTool,
		Parts: []llms.ContentPart{
			llms.ToolCallResponse{
				ToolCallID: tc.ID,
				Name:       name,
				Content:    payload,
			},
		},
	}
}
