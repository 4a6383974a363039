package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/contentloop/repurpose"
	"github.com/contentloop/repurpose/reflexion"
)

// SideScores holds one fresh evaluation per output fragment.
type SideScores struct {
	Summary reflexion.Evaluation
	Social  reflexion.Evaluation
	Email   reflexion.Evaluation
}

// Side is one orchestration's contribution to a comparison report.
type Side struct {
	Output repurpose.WorkflowResult
	Scores SideScores
}

// Report is the head-to-head outcome of running both orchestrations on the
// same post.
type Report struct {
	Pipeline Side
	Agent    Side

	// AgentState is the agent run's terminal state; the agent side of the
	// report may be partial or empty when it is not "finished".
	AgentState string

	// AgentErr records a gateway failure during the agent run. The pipeline
	// side is still reported.
	AgentErr error
}

// Comparison runs the pipeline and the agent on the same post and scores
// both outputs with a shared evaluator. Both sides are evaluated fresh, so
// the pipeline's internal reflexion scores don't give it a head start.
type Comparison struct {
	pipeline  *Pipeline
	agentFlow *AgentFlow
	evaluator *reflexion.Evaluator
	hooks     *repurpose.Hooks
}

// NewComparison creates a Comparison with default budgets on both sides.
func NewComparison(gw repurpose.Gateway) *Comparison {
	return &Comparison{
		pipeline:  NewPipeline(gw),
		agentFlow: NewAgentFlow(gw),
		evaluator: reflexion.NewEvaluator(gw),
	}
}

// WithHooks sets the hook registry on both orchestrations. Returns the
// comparison for chaining.
func (c *Comparison) WithHooks(hooks *repurpose.Hooks) *Comparison {
	c.hooks = hooks
	c.pipeline.WithHooks(hooks)
	c.agentFlow.WithHooks(hooks)
	return c
}

// Run executes both orchestrations and scores their outputs. An agent-side
// gateway failure is recorded in the report rather than aborting the
// comparison; an empty side simply scores as empty content.
func (c *Comparison) Run(ctx context.Context, post repurpose.BlogPost) *Report {
	report := &Report{}

	pipelineResult := c.pipeline.Run(ctx, post)
	report.Pipeline = c.score(ctx, pipelineResult.Output)

	agentResult, err := c.agentFlow.Run(ctx, post)
	report.AgentErr = err
	report.AgentState = string(agentResult.State)
	report.Agent = c.score(ctx, agentResult.Output)

	return report
}

func (c *Comparison) score(ctx context.Context, output repurpose.WorkflowResult) Side {
	return Side{
		Output: output,
		Scores: SideScores{
			Summary: c.evaluator.Evaluate(ctx, output.Summary, repurpose.ContentTypeSummary),
			Social:  c.evaluator.Evaluate(ctx, encode(output.SocialPosts), repurpose.ContentTypeSocialPost),
			Email:   c.evaluator.Evaluate(ctx, encode(output.Email), repurpose.ContentTypeEmail),
		},
	}
}

func encode(v any) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// Markdown renders the report as a side-by-side markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder

	b.WriteString("# Workflow Comparison\n\n")
	if r.AgentErr != nil {
		fmt.Fprintf(&b, "> Agent run failed: %v\n\n", r.AgentErr)
	} else if r.AgentState != "" && r.AgentState != "finished" {
		fmt.Fprintf(&b, "> Agent run ended %s; its side may be partial.\n\n", r.AgentState)
	}

	b.WriteString("## Scores\n\n")
	b.WriteString("| Fragment | Pipeline | Agent |\n")
	b.WriteString("|----------|----------|-------|\n")
	fmt.Fprintf(&b, "| Summary | %.2f | %.2f |\n",
		r.Pipeline.Scores.Summary.QualityScore, r.Agent.Scores.Summary.QualityScore)
	fmt.Fprintf(&b, "| Social posts | %.2f | %.2f |\n",
		r.Pipeline.Scores.Social.QualityScore, r.Agent.Scores.Social.QualityScore)
	fmt.Fprintf(&b, "| Email | %.2f | %.2f |\n\n",
		r.Pipeline.Scores.Email.QualityScore, r.Agent.Scores.Email.QualityScore)

	writeSide(&b, "Pipeline", r.Pipeline)
	writeSide(&b, "Agent", r.Agent)

	return b.String()
}

func writeSide(b *strings.Builder, title string, side Side) {
	fmt.Fprintf(b, "## %s\n\n", title)

	b.WriteString("### Summary\n\n")
	writeFragment(b, side.Output.Summary)

	b.WriteString("### Social posts\n\n")
	if side.Output.SocialPosts.IsZero() {
		b.WriteString("_empty_\n\n")
	} else {
		fmt.Fprintf(b, "- **Twitter:** %s\n", side.Output.SocialPosts.Twitter)
		fmt.Fprintf(b, "- **LinkedIn:** %s\n", side.Output.SocialPosts.LinkedIn)
		fmt.Fprintf(b, "- **Facebook:** %s\n\n", side.Output.SocialPosts.Facebook)
	}

	b.WriteString("### Email\n\n")
	if side.Output.Email.IsZero() {
		b.WriteString("_empty_\n\n")
	} else {
		fmt.Fprintf(b, "**Subject:** %s\n\n%s\n\n", side.Output.Email.Subject, side.Output.Email.Body)
	}
}

func writeFragment(b *strings.Builder, content string) {
	if content == "" {
		b.WriteString("_empty_\n\n")
		return
	}
	b.WriteString(content)
	b.WriteString("\n\n")
}
