// Package analyzer runs the full review analysis pipeline: lexical
// scoring, reference labeling, classifier fit/predict, evaluation, and
// aggregation into one immutable artifact. Each Analyze call builds its
// own scorer and classifier, so concurrent invocations never share state.
package analyzer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/reviewlens/internal/aggregation"
	"github.com/spacesedan/reviewlens/internal/classifier"
	"github.com/spacesedan/reviewlens/internal/evaluation"
	"github.com/spacesedan/reviewlens/internal/labeling"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/sentiment"
)

// Engine is the entry point for one or more analysis invocations with a
// fixed configuration. It is safe for concurrent use.
type Engine struct {
	opts Options
}

func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Analyze runs the pipeline over one review batch and returns the
// artifact, or an InvalidInputError before any processing if the batch is
// empty or a review has blank text. Degraded classification and undefined
// metrics are recorded in the artifact, never returned as errors.
func (e *Engine) Analyze(ctx context.Context, reviews []models.Review) (*models.AnalysisArtifact, error) {
	if err := validate(reviews); err != nil {
		return nil, err
	}

	start := time.Now()

	scorer := sentiment.NewScorer(e.opts.scorerConfig())
	scored, err := scorer.ScoreBatch(reviews, e.opts.ScoreWorkers)
	if err != nil {
		// Blank text is caught by validate; anything surfacing here is
		// still the caller's bad input.
		return nil, &InvalidInputError{Reason: err.Error()}
	}

	labeling.NewLabeler(scorer).LabelBatch(scored)

	result := classifier.New(e.opts.classifierConfig()).FitPredict(ctx, scored)

	confusion, metrics := evaluation.Evaluate(result.Reviews, result.EvalIndices)

	artifact := aggregation.NewAggregator(e.opts.aggregatorConfig()).Aggregate(
		result.Reviews,
		aggregation.ClassificationOutcome{
			Confusion: confusion,
			Metrics:   metrics,
			Degraded:  result.Degraded,
			Reason:    result.Reason,
		},
		e.opts.now(),
	)

	slog.Info("[Analyzer] Analysis complete",
		slog.Int("reviews", artifact.TotalReviews),
		slog.Int("fraud", artifact.FraudCount),
		slog.Float64("risk_score", artifact.RiskScore),
		slog.Bool("degraded", artifact.DegradedClassification),
		slog.Duration("took", time.Since(start)))

	return artifact, nil
}

func validate(reviews []models.Review) error {
	if len(reviews) == 0 {
		return ErrEmptyBatch
	}
	for _, r := range reviews {
		if strings.TrimSpace(r.Text) == "" {
			return &InvalidInputError{ReviewID: r.ReviewID, Reason: "text is empty or whitespace-only"}
		}
	}
	return nil
}
