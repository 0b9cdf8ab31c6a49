// Package classifier fits a per-batch fraud/legitimate text classifier on
// the heuristically derived reference labels and predicts a label with a
// posterior confidence for every review. The model is a value scoped to
// one FitPredict call; nothing is shared between invocations.
package classifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/reviewlens/internal/models"
)

const (
	DEFAULT_MIN_BATCH   = 10
	DEFAULT_SPLIT_RATIO = 0.8
	DEFAULT_SEED        = 42
)

// Config holds the classifier tunables. Zero values fall back to defaults
// in New.
type Config struct {
	MinBatchForTraining int
	TrainSplitRatio     float64
	RandomSeed          int64
	// FitTimeout bounds the fit step; on expiry the degraded fallback is
	// used instead of failing the request. Zero means no bound.
	FitTimeout time.Duration
}

// Classifier runs the fit-and-predict step for one batch.
type Classifier struct {
	cfg Config
}

func New(cfg Config) *Classifier {
	if cfg.MinBatchForTraining <= 0 {
		cfg.MinBatchForTraining = DEFAULT_MIN_BATCH
	}
	if cfg.TrainSplitRatio <= 0 || cfg.TrainSplitRatio >= 1 {
		cfg.TrainSplitRatio = DEFAULT_SPLIT_RATIO
	}
	if cfg.RandomSeed == 0 {
		cfg.RandomSeed = DEFAULT_SEED
	}
	return &Classifier{cfg: cfg}
}

// Result is the outcome of one FitPredict call. Reviews is the input slice
// with PredictedLabel and Confidence set, in input order. EvalIndices are
// the positions held out from training; metrics must be computed over
// these only. When Degraded is set the whole batch is the evaluation
// partition and predictions mirror the reference labels.
type Result struct {
	Reviews     []models.ScoredReview
	EvalIndices []int
	Degraded    bool
	Reason      models.DegradedReason
}

// FitPredict trains on a stratified split of the batch and predicts a
// label for every review. Falls back to mirroring the reference labels
// when the batch is too small, has a single distinct label, or the fit
// exceeds the timeout.
func (c *Classifier) FitPredict(ctx context.Context, reviews []models.ScoredReview) Result {
	if len(reviews) < c.cfg.MinBatchForTraining {
		slog.Warn("[Classifier] Batch below training minimum, mirroring reference labels",
			slog.Int("batch_size", len(reviews)),
			slog.Int("minimum", c.cfg.MinBatchForTraining))
		return c.degraded(reviews, models.DegradedBatchTooSmall)
	}
	if singleClass(reviews) {
		slog.Warn("[Classifier] Batch has a single reference label, mirroring reference labels",
			slog.Int("batch_size", len(reviews)))
		return c.degraded(reviews, models.DegradedSingleClass)
	}

	if c.cfg.FitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.FitTimeout)
		defer cancel()
	}

	done := make(chan Result, 1)
	go func() {
		done <- c.fitPredict(reviews)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		slog.Warn("[Classifier] Fit step timed out, mirroring reference labels",
			slog.Int("batch_size", len(reviews)),
			slog.String("cause", ctx.Err().Error()))
		return c.degraded(reviews, models.DegradedFitTimeout)
	}
}

func (c *Classifier) fitPredict(reviews []models.ScoredReview) Result {
	texts := make([]string, len(reviews))
	labels := make([]models.RiskLabel, len(reviews))
	for i, r := range reviews {
		texts[i] = r.Text
		labels[i] = r.ReferenceLabel
	}

	vectorizer := NewVectorizer(texts)
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = vectorizer.Vectorize(text)
	}

	train, eval := stratifiedSplit(labels, c.cfg.TrainSplitRatio, c.cfg.RandomSeed)

	trainVecs := make([][]float64, len(train))
	trainLabels := make([]models.RiskLabel, len(train))
	for i, idx := range train {
		trainVecs[i] = vectors[idx]
		trainLabels[i] = labels[idx]
	}

	model := fitNaiveBayes(trainVecs, trainLabels)

	out := make([]models.ScoredReview, len(reviews))
	copy(out, reviews)
	for i := range out {
		out[i].PredictedLabel, out[i].Confidence = model.predict(vectors[i])
	}

	slog.Info("[Classifier] Model fit complete",
		slog.Int("train_size", len(train)),
		slog.Int("eval_size", len(eval)),
		slog.Int("vocab_size", vectorizer.VocabSize()))

	return Result{Reviews: out, EvalIndices: eval}
}

func (c *Classifier) degraded(reviews []models.ScoredReview, reason models.DegradedReason) Result {
	out := make([]models.ScoredReview, len(reviews))
	copy(out, reviews)

	eval := make([]int, len(out))
	for i := range out {
		out[i].PredictedLabel = out[i].ReferenceLabel
		out[i].Confidence = 1.0
		eval[i] = i
	}

	return Result{Reviews: out, EvalIndices: eval, Degraded: true, Reason: reason}
}

func singleClass(reviews []models.ScoredReview) bool {
	for i := 1; i < len(reviews); i++ {
		if reviews[i].ReferenceLabel != reviews[0].ReferenceLabel {
			return false
		}
	}
	return true
}
