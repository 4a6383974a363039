package tools

import (
	"fmt"
	"strings"

	"github.com/contentloop/repurpose"
	"github.com/tmc/langchaingo/llms"
)

// Prompt builders for the four content tools. Each tool call sends exactly
// one system + one user message.

func systemAndUser(system, user string) []llms.MessageContent {
	return []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}
}

// bulleted renders key points as a "- point" list, preserving order.
func bulleted(keyPoints []string) string {
	var sb strings.Builder
	for _, kp := range keyPoints {
		fmt.Fprintf(&sb, "- %s\n", kp)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func extractKeyPointsMessages(post repurpose.BlogPost) []llms.MessageContent {
	return systemAndUser(
		"Extract key points from blog posts.",
		fmt.Sprintf("Title: %s\nContent: %s", post.Title, post.Content),
	)
}

func generateSummaryMessages(keyPoints []string) []llms.MessageContent {
	return systemAndUser(
		"Summarize given points.",
		"Summarize:\n"+bulleted(keyPoints),
	)
}

func createSocialPostsMessages(keyPoints []string, title string) []llms.MessageContent {
	return systemAndUser(
		"Create platform-specific social media posts.",
		fmt.Sprintf("Title: %s\n%s", title, bulleted(keyPoints)),
	)
}

func createEmailNewsletterMessages(
	post repurpose.BlogPost,
	summary string,
	keyPoints []string,
) []llms.MessageContent {
	return systemAndUser(
		"Write a newsletter email.",
		fmt.Sprintf("Title: %s\nSummary: %s\nKey Points:\n%s", post.Title, summary, bulleted(keyPoints)),
	)
}
