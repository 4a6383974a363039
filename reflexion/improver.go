package reflexion

import (
	"context"
	"fmt"

	"github.com/contentloop/repurpose"
	"github.com/tmc/langchaingo/llms"
)

// Improver revises content based on evaluator feedback with one free-form
// gateway call.
type Improver struct {
	gw repurpose.Gateway
}

// NewImprover creates an Improver using the given gateway.
func NewImprover(gw repurpose.Gateway) *Improver {
	return &Improver{gw: gw}
}

// Improve returns a revision of content addressing the feedback. On gateway
// failure or an empty response the original content is returned unchanged.
func (i *Improver) Improve(ctx context.Context, content, feedback, contentType string) string {
	completion, err := i.gw.Complete(ctx, &repurpose.CompletionRequest{
		Messages: []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem,
				"Improve content based on feedback. Reply with the revised "+
					contentType+" only, keeping the same format as the original."),
			llms.TextParts(llms.ChatMessageTypeHuman,
				fmt.Sprintf("Feedback: %s\nContent: %s", feedback, content)),
		},
	})
	if err != nil || completion == nil || completion.Text == "" {
		return content
	}
	return completion.Text
}
