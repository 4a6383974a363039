// Package reflexion implements the bounded generate -> evaluate -> improve
// loop that wraps any single content-generation step, plus the evaluator it
// is built on.
package reflexion

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/contentloop/repurpose"
	"github.com/tmc/langchaingo/llms"
)

// Evaluation is the outcome of scoring one piece of content. Ephemeral; one
// is produced per reflexion attempt and none are persisted.
type Evaluation struct {
	// QualityScore is in [0, 1]. Content at or above QualityThreshold is
	// accepted as-is.
	QualityScore float64

	// Feedback is the evaluator's free-form critique, fed to the improve
	// step verbatim.
	Feedback string
}

// Evaluation returned when the gateway itself fails: a fixed low-confidence
// default so the reflexion loop stays total.
var noEvaluation = Evaluation{QualityScore: 0.5, Feedback: "No evaluation"}

// Evaluator scores content against its declared content type with one
// free-form gateway call.
type Evaluator struct {
	gw repurpose.Gateway
}

// NewEvaluator creates an Evaluator using the given gateway.
func NewEvaluator(gw repurpose.Gateway) *Evaluator {
	return &Evaluator{gw: gw}
}

// Evaluate scores the content. It never returns an error: a gateway failure
// or empty response yields the fixed {0.5, "No evaluation"} default.
func (e *Evaluator) Evaluate(ctx context.Context, content, contentType string) Evaluation {
	completion, err := e.gw.Complete(ctx, &repurpose.CompletionRequest{
		Messages: []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem,
				"Evaluate quality and give feedback. Start your reply with a line "+
					`"SCORE: <value>" where <value> is between 0.0 and 1.0, then explain.`),
			llms.TextParts(llms.ChatMessageTypeHuman,
				fmt.Sprintf("Evaluate this %s:\n%s", contentType, content)),
		},
	})
	if err != nil || completion == nil || completion.Text == "" {
		return noEvaluation
	}

	return Evaluation{
		QualityScore: scoreFromFeedback(completion.Text),
		Feedback:     completion.Text,
	}
}

var scoreLine = regexp.MustCompile(`(?im)^\s*score:\s*([0-9]+(?:\.[0-9]+)?)`)

// scoreFromFeedback derives a numeric score from the evaluator's reply. It
// prefers the model-provided "SCORE:" line; when none is present it falls
// back to a coarse lexical heuristic ("good" anywhere in the feedback) that
// maps onto the same two tiers around the acceptance threshold. Deterministic
// for a given feedback text; this fallback is the weakest link in the system
// and exists only for models that ignore the score instruction.
func scoreFromFeedback(feedback string) float64 {
	if m := scoreLine.FindStringSubmatch(feedback); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return clamp01(v)
		}
	}
	if strings.Contains(strings.ToLower(feedback), "good") {
		return 0.9
	}
	return 0.6
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
