package classifier

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/reviewlens/internal/models"
)

func makeReview(id int, text string, label models.RiskLabel) models.ScoredReview {
	return models.ScoredReview{
		Review:         models.Review{ReviewID: fmt.Sprintf("r-%d", id), Text: text},
		ReferenceLabel: label,
	}
}

// syntheticBatch builds n reviews with a separable vocabulary and the
// given fraud fraction.
func syntheticBatch(n int, fraudFraction float64) []models.ScoredReview {
	reviews := make([]models.ScoredReview, n)
	fraudCount := int(float64(n) * fraudFraction)

	for i := 0; i < n; i++ {
		if i < fraudCount {
			text := fmt.Sprintf("scam app stole money fake phishing charge account batch%d", i%7)
			reviews[i] = makeReview(i, text, models.LabelFraud)
		} else {
			text := fmt.Sprintf("wonderful app love the design excellent support smooth batch%d", i%7)
			reviews[i] = makeReview(i, text, models.LabelLegitimate)
		}
	}
	return reviews
}

func TestFitPredictSmallBatchDegrades(t *testing.T) {
	c := New(Config{})
	reviews := syntheticBatch(5, 0.4)

	res := c.FitPredict(context.Background(), reviews)

	assert.True(t, res.Degraded)
	assert.Equal(t, models.DegradedBatchTooSmall, res.Reason)
	assert.Len(t, res.EvalIndices, len(reviews))
	for _, r := range res.Reviews {
		assert.Equal(t, r.ReferenceLabel, r.PredictedLabel)
		assert.Equal(t, 1.0, r.Confidence)
	}
}

func TestFitPredictSingleClassDegrades(t *testing.T) {
	c := New(Config{})
	reviews := syntheticBatch(30, 0) // all legitimate

	res := c.FitPredict(context.Background(), reviews)

	assert.True(t, res.Degraded)
	assert.Equal(t, models.DegradedSingleClass, res.Reason)
	for _, r := range res.Reviews {
		assert.Equal(t, models.LabelLegitimate, r.PredictedLabel)
		assert.Equal(t, 1.0, r.Confidence)
	}
}

func TestFitPredictSeparableBatch(t *testing.T) {
	c := New(Config{})
	reviews := syntheticBatch(200, 0.9)

	res := c.FitPredict(context.Background(), reviews)

	require.False(t, res.Degraded)
	require.Len(t, res.Reviews, 200)
	require.NotEmpty(t, res.EvalIndices)

	correct := 0
	for _, i := range res.EvalIndices {
		r := res.Reviews[i]
		assert.True(t, r.Confidence >= 0 && r.Confidence <= 1)
		if r.PredictedLabel == r.ReferenceLabel {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(res.EvalIndices))
	assert.Greater(t, accuracy, 0.8, "evaluation accuracy on a separable batch")
}

func TestFitPredictIsDeterministic(t *testing.T) {
	reviews := syntheticBatch(60, 0.5)

	first := New(Config{RandomSeed: 7}).FitPredict(context.Background(), reviews)
	second := New(Config{RandomSeed: 7}).FitPredict(context.Background(), reviews)

	assert.Equal(t, first.EvalIndices, second.EvalIndices)
	assert.Equal(t, first.Reviews, second.Reviews)
}

func TestFitPredictSeedChangesSplit(t *testing.T) {
	reviews := syntheticBatch(60, 0.5)

	first := New(Config{RandomSeed: 1}).FitPredict(context.Background(), reviews)
	second := New(Config{RandomSeed: 2}).FitPredict(context.Background(), reviews)

	assert.NotEqual(t, first.EvalIndices, second.EvalIndices)
}

func TestFitPredictCancelledContextDegrades(t *testing.T) {
	c := New(Config{})
	reviews := syntheticBatch(500, 0.5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.FitPredict(ctx, reviews)

	assert.True(t, res.Degraded)
	assert.Equal(t, models.DegradedFitTimeout, res.Reason)
	for _, r := range res.Reviews {
		assert.Equal(t, r.ReferenceLabel, r.PredictedLabel)
	}
}

func TestStratifiedSplitKeepsProportions(t *testing.T) {
	labels := make([]models.RiskLabel, 100)
	for i := range labels {
		if i < 30 {
			labels[i] = models.LabelFraud
		} else {
			labels[i] = models.LabelLegitimate
		}
	}

	train, eval := stratifiedSplit(labels, 0.8, 42)

	assert.Len(t, train, 80)
	assert.Len(t, eval, 20)

	fraudInTrain := 0
	for _, i := range train {
		if labels[i] == models.LabelFraud {
			fraudInTrain++
		}
	}
	assert.Equal(t, 24, fraudInTrain)

	// Partitions are disjoint and cover the batch.
	seen := make(map[int]bool, 100)
	for _, i := range append(append([]int{}, train...), eval...) {
		assert.False(t, seen[i], "index %d appears twice", i)
		seen[i] = true
	}
	assert.Len(t, seen, 100)
}

func TestStratifiedSplitTinyClassStaysInTraining(t *testing.T) {
	labels := []models.RiskLabel{
		models.LabelFraud,
		models.LabelLegitimate, models.LabelLegitimate, models.LabelLegitimate,
		models.LabelLegitimate, models.LabelLegitimate, models.LabelLegitimate,
		models.LabelLegitimate, models.LabelLegitimate, models.LabelLegitimate,
	}

	train, _ := stratifiedSplit(labels, 0.8, 42)

	fraudInTrain := 0
	for _, i := range train {
		if labels[i] == models.LabelFraud {
			fraudInTrain++
		}
	}
	assert.Equal(t, 1, fraudInTrain)
}

func TestNaiveBayesPrefersMatchingClass(t *testing.T) {
	vectorizer := NewVectorizer([]string{
		"scam fraud steal", "scam fake charge", "love great support", "great smooth design",
	})

	vectors := [][]float64{
		vectorizer.Vectorize("scam fraud steal"),
		vectorizer.Vectorize("scam fake charge"),
		vectorizer.Vectorize("love great support"),
		vectorizer.Vectorize("great smooth design"),
	}
	labels := []models.RiskLabel{
		models.LabelFraud, models.LabelFraud,
		models.LabelLegitimate, models.LabelLegitimate,
	}

	nb := fitNaiveBayes(vectors, labels)

	label, conf := nb.predict(vectorizer.Vectorize("scam charge"))
	assert.Equal(t, models.LabelFraud, label)
	assert.Greater(t, conf, 0.5)

	label, conf = nb.predict(vectorizer.Vectorize("great design"))
	assert.Equal(t, models.LabelLegitimate, label)
	assert.Greater(t, conf, 0.5)
}

func TestFitTimeoutOptionIsBounded(t *testing.T) {
	// A generous timeout should never trigger on a small batch.
	c := New(Config{FitTimeout: 30 * time.Second})
	reviews := syntheticBatch(40, 0.5)

	res := c.FitPredict(context.Background(), reviews)
	assert.False(t, res.Degraded)
}

func TestVectorizerDeterministicLayout(t *testing.T) {
	texts := []string{"beta alpha", "gamma alpha"}

	v1 := NewVectorizer(texts)
	v2 := NewVectorizer(texts)

	assert.Equal(t, v1.terms, v2.terms)
	assert.Equal(t, v1.Vectorize("alpha beta gamma"), v2.Vectorize("alpha beta gamma"))
	assert.Equal(t, 3, v1.VocabSize())

	// Out-of-vocabulary tokens are dropped.
	assert.Equal(t, []float64{1, 0, 0}, v1.Vectorize("alpha unknown"))
}
