package reflexion

import (
	"context"

	"github.com/contentloop/repurpose"
)

const (
	// QualityThreshold is the score at or above which content is accepted
	// without further improvement.
	QualityThreshold = 0.8

	// DefaultMaxAttempts bounds the evaluate+improve cycles per run.
	DefaultMaxAttempts = 3
)

// Generator produces one piece of content. Implementations close over their
// typed inputs (key points, title, summary) as immutable fields; the runner
// only ever calls Generate once per run.
type Generator interface {
	Generate(ctx context.Context) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context) (string, error) {
	return f(ctx)
}

// Validator checks whether an improved revision is acceptable as a
// replacement. When a revision fails validation the previous content is
// kept; used for structured fragments that must stay JSON-decodable.
type Validator func(content string) error

// Result is the outcome of one reflexion run: the final content plus the
// last evaluation that was made of it.
type Result struct {
	Content  string
	Score    float64
	Feedback string
	Attempts int
}

// Runner drives the reflexion loop: generate once, then evaluate and improve
// until the quality threshold is met or the attempt budget is exhausted.
// A Runner is stateless between runs; nothing is remembered across pieces of
// content.
type Runner struct {
	evaluator   *Evaluator
	improver    *Improver
	hooks       *repurpose.Hooks
	validator   Validator
	maxAttempts int
	threshold   float64
}

// NewRunner creates a Runner with the default attempt budget and threshold.
func NewRunner(gw repurpose.Gateway) *Runner {
	return &Runner{
		evaluator:   NewEvaluator(gw),
		improver:    NewImprover(gw),
		maxAttempts: DefaultMaxAttempts,
		threshold:   QualityThreshold,
	}
}

// WithHooks sets the hook registry fired on evaluation and improvement.
// Returns the runner for chaining.
func (r *Runner) WithHooks(hooks *repurpose.Hooks) *Runner {
	r.hooks = hooks
	return r
}

// WithMaxAttempts sets the attempt budget. Values below 1 are ignored.
func (r *Runner) WithMaxAttempts(n int) *Runner {
	if n >= 1 {
		r.maxAttempts = n
	}
	return r
}

// WithValidator sets the revision validator.
func (r *Runner) WithValidator(v Validator) *Runner {
	r.validator = v
	return r
}

// Run executes one reflexion loop for the given generator and content type.
//
// The generator runs exactly once. Then, for at most the attempt budget:
// evaluate the current content; if the score meets the threshold, return
// immediately; otherwise improve and re-evaluate. When the budget runs out
// the last content produced is returned as-is. Run never returns an error;
// every failure along the way has a degraded-but-total behavior.
func (r *Runner) Run(ctx context.Context, gen Generator, contentType string) *Result {
	content, err := gen.Generate(ctx)
	if err != nil {
		// Generators built on the content tools never fail; guard anyway so
		// the loop stays total for arbitrary implementations.
		content = ""
	}

	result := &Result{Content: content}
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		eval := r.evaluator.Evaluate(ctx, content, contentType)
		result.Attempts = attempt
		result.Score = eval.QualityScore
		result.Feedback = eval.Feedback

		r.hooks.FireEvaluation(ctx, repurpose.EvaluationEvent{
			ContentType: contentType,
			Attempt:     attempt,
			Score:       eval.QualityScore,
			Feedback:    eval.Feedback,
		})

		if eval.QualityScore >= r.threshold {
			result.Content = content
			return result
		}

		improved := r.improver.Improve(ctx, content, eval.Feedback, contentType)
		if r.validator != nil && r.validator(improved) != nil {
			// Unusable revision; keep what we have.
			improved = content
		}

		r.hooks.FireImprovement(ctx, repurpose.ImprovementEvent{
			ContentType: contentType,
			Attempt:     attempt,
			Before:      content,
			After:       improved,
		})

		content = improved
		result.Content = content
	}

	return result
}
