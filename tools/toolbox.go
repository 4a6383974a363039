// Package tools implements the four stateless content transformation tools.
//
// Each tool issues exactly one gateway call that forces the model to respond
// with a single named tool invocation, then decodes that invocation's
// arguments into the result. A tool never returns an error: any gateway
// failure, absent invocation, or malformed argument set degrades to the
// type-appropriate empty default. Retry and quality improvement are the
// reflexion package's job, not this one's.
package tools

import (
	"context"

	"github.com/contentloop/repurpose"
	"github.com/tmc/langchaingo/llms"
)

// Toolbox bundles the four content tools around one gateway.
type Toolbox struct {
	gw repurpose.Gateway
}

// New creates a Toolbox using the given gateway.
func New(gw repurpose.Gateway) *Toolbox {
	return &Toolbox{gw: gw}
}

// forcedCall issues one gateway call forcing the named tool and returns the
// resulting invocation, or nil if anything along the way failed.
func (t *Toolbox) forcedCall(
	ctx context.Context,
	name repurpose.ToolName,
	messages []llms.MessageContent,
) *llms.ToolCall {
	completion, err := t.gw.Complete(ctx, &repurpose.CompletionRequest{
		Messages:   messages,
		Tools:      []llms.Tool{repurpose.Spec(name)},
		ForcedTool: string(name),
	})
	if err != nil || !completion.HasToolCalls() {
		return nil
	}

	tc := completion.ToolCalls[0]
	if err := repurpose.ValidateArgs(name, repurpose.ArgsMap(tc)); err != nil {
		// The gateway is trusted but not assumed correct: an invocation
		// missing its required fields counts as no invocation at all.
		return nil
	}
	return &tc
}

// ExtractKeyPoints extracts ordered key points from the post. Returns an
// empty list on any gateway failure.
func (t *Toolbox) ExtractKeyPoints(ctx context.Context, post repurpose.BlogPost) []string {
	tc := t.forcedCall(ctx, repurpose.ToolExtractKeyPoints, extractKeyPointsMessages(post))
	if tc == nil {
		return []string{}
	}

	var args repurpose.ExtractKeyPointsArgs
	if err := repurpose.UnmarshalArgs(*tc, &args); err != nil {
		return []string{}
	}
	return args.KeyPoints
}

// GenerateSummary summarizes the key points. Returns an empty string on any
// gateway failure.
func (t *Toolbox) GenerateSummary(ctx context.Context, keyPoints []string) string {
	tc := t.forcedCall(ctx, repurpose.ToolGenerateSummary, generateSummaryMessages(keyPoints))
	if tc == nil {
		return ""
	}

	var args repurpose.GenerateSummaryArgs
	if err := repurpose.UnmarshalArgs(*tc, &args); err != nil {
		return ""
	}
	return args.Summary
}

// CreateSocialPosts creates one post per platform from the key points and
// post title. Returns empty posts on any gateway failure.
func (t *Toolbox) CreateSocialPosts(
	ctx context.Context,
	keyPoints []string,
	title string,
) repurpose.SocialPosts {
	tc := t.forcedCall(ctx, repurpose.ToolCreateSocialMediaPosts, createSocialPostsMessages(keyPoints, title))
	if tc == nil {
		return repurpose.SocialPosts{}
	}

	var args repurpose.SocialPostsArgs
	if err := repurpose.UnmarshalArgs(*tc, &args); err != nil {
		return repurpose.SocialPosts{}
	}
	return repurpose.SocialPosts{
		Twitter:  args.Twitter,
		LinkedIn: args.LinkedIn,
		Facebook: args.Facebook,
	}
}

// CreateEmailNewsletter writes a newsletter from the post, its summary and
// key points. Returns an empty newsletter on any gateway failure.
func (t *Toolbox) CreateEmailNewsletter(
	ctx context.Context,
	post repurpose.BlogPost,
	summary string,
	keyPoints []string,
) repurpose.EmailNewsletter {
	tc := t.forcedCall(ctx, repurpose.ToolCreateEmailNewsletter, createEmailNewsletterMessages(post, summary, keyPoints))
	if tc == nil {
		return repurpose.EmailNewsletter{}
	}

	var args repurpose.EmailNewsletterArgs
	if err := repurpose.UnmarshalArgs(*tc, &args); err != nil {
		return repurpose.EmailNewsletter{}
	}
	return repurpose.EmailNewsletter{
		Subject: args.Subject,
		Body:    args.Body,
	}
}
