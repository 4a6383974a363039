// Package workflow provides the two end-to-end orchestrations over the same
// tools, the fixed pipeline and the agent loop, plus a head-to-head
// comparison of their outputs.
package workflow

import (
	"context"
	"encoding/json"

	"github.com/contentloop/repurpose"
	"github.com/contentloop/repurpose/reflexion"
	"github.com/contentloop/repurpose/tools"
)

// PipelineResult is the outcome of one pipeline run: the assembled output
// plus the final reflexion state of each fragment.
type PipelineResult struct {
	Output    repurpose.WorkflowResult
	KeyPoints []string
	Summary   *reflexion.Result
	Social    *reflexion.Result
	Email     *reflexion.Result
}

// Pipeline runs the fixed sequence: extract key points once, then produce
// summary, social posts and newsletter, each wrapped in its own reflexion
// loop. The step order never varies; quality only affects how many
// evaluate+improve cycles each fragment gets.
type Pipeline struct {
	gw          repurpose.Gateway
	box         *tools.Toolbox
	hooks       *repurpose.Hooks
	maxAttempts int
}

// NewPipeline creates a Pipeline with the default reflexion attempt budget.
func NewPipeline(gw repurpose.Gateway) *Pipeline {
	return &Pipeline{
		gw:          gw,
		box:         tools.New(gw),
		maxAttempts: reflexion.DefaultMaxAttempts,
	}
}

// WithHooks sets the hook registry. Returns the pipeline for chaining.
func (p *Pipeline) WithHooks(hooks *repurpose.Hooks) *Pipeline {
	p.hooks = hooks
	return p
}

// WithMaxAttempts sets the per-fragment reflexion attempt budget. Values
// below 1 are ignored.
func (p *Pipeline) WithMaxAttempts(n int) *Pipeline {
	if n >= 1 {
		p.maxAttempts = n
	}
	return p
}

// Run executes the pipeline on the post. It never returns an error: every
// step degrades to its empty default, so the worst case is an empty result
// with low scores attached.
func (p *Pipeline) Run(ctx context.Context, post repurpose.BlogPost) *PipelineResult {
	keyPoints := p.box.ExtractKeyPoints(ctx, post)

	summary := p.runner().Run(ctx,
		summaryGenerator{box: p.box, keyPoints: keyPoints},
		repurpose.ContentTypeSummary)

	social := p.runner().WithValidator(validSocialPosts).Run(ctx,
		socialGenerator{box: p.box, keyPoints: keyPoints, title: post.Title},
		repurpose.ContentTypeSocialPost)

	email := p.runner().WithValidator(validEmail).Run(ctx,
		emailGenerator{box: p.box, post: post, summary: summary.Content, keyPoints: keyPoints},
		repurpose.ContentTypeEmail)

	return &PipelineResult{
		Output: repurpose.WorkflowResult{
			Summary:     summary.Content,
			SocialPosts: decodeSocialPosts(social.Content),
			Email:       decodeEmail(email.Content),
		},
		KeyPoints: keyPoints,
		Summary:   summary,
		Social:    social,
		Email:     email,
	}
}

func (p *Pipeline) runner() *reflexion.Runner {
	return reflexion.NewRunner(p.gw).
		WithHooks(p.hooks).
		WithMaxAttempts(p.maxAttempts)
}

// -----------------------------------------------------------------------------
// Fragment generators
// -----------------------------------------------------------------------------
//
// Each generator freezes its inputs at construction; re-running one is
// idempotent with respect to upstream fragments. Structured fragments travel
// through reflexion as JSON so the evaluator and improver see the whole
// fragment, with a validator rejecting revisions that stop being decodable.

type summaryGenerator struct {
	box       *tools.Toolbox
	keyPoints []string
}

func (g summaryGenerator) Generate(ctx context.Context) (string, error) {
	return g.box.GenerateSummary(ctx, g.keyPoints), nil
}

type socialGenerator struct {
	box       *tools.Toolbox
	keyPoints []string
	title     string
}

func (g socialGenerator) Generate(ctx context.Context) (string, error) {
	posts := g.box.CreateSocialPosts(ctx, g.keyPoints, g.title)
	encoded, err := json.Marshal(posts)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

type emailGenerator struct {
	box       *tools.Toolbox
	post      repurpose.BlogPost
	summary   string
	keyPoints []string
}

func (g emailGenerator) Generate(ctx context.Context) (string, error) {
	email := g.box.CreateEmailNewsletter(ctx, g.post, g.summary, g.keyPoints)
	encoded, err := json.Marshal(email)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

var (
	_ reflexion.Generator = summaryGenerator{}
	_ reflexion.Generator = socialGenerator{}
	_ reflexion.Generator = emailGenerator{}
)

// -----------------------------------------------------------------------------
// Structured fragment codecs
// -----------------------------------------------------------------------------

func validSocialPosts(content string) error {
	var posts repurpose.SocialPosts
	return json.Unmarshal([]byte(content), &posts)
}

func validEmail(content string) error {
	var email repurpose.EmailNewsletter
	return json.Unmarshal([]byte(content), &email)
}

func decodeSocialPosts(content string) repurpose.SocialPosts {
	var posts repurpose.SocialPosts
	if err := json.Unmarshal([]byte(content), &posts); err != nil {
		return repurpose.SocialPosts{}
	}
	return posts
}

func decodeEmail(content string) repurpose.EmailNewsletter {
	var email repurpose.EmailNewsletter
	if err := json.Unmarshal([]byte(content), &email); err != nil {
		return repurpose.EmailNewsletter{}
	}
	return email
}
