package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/reviewlens/internal/models"
)

func intPtr(v int) *int { return &v }

func fixedClock() func() time.Time {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

// trainableBatch builds a batch big enough to train on: half heuristic
// fraud (keyword + rating 1), half positive legitimate, with separable
// vocabulary.
func trainableBatch(n int) []models.Review {
	ts := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	reviews := make([]models.Review, n)
	for i := range reviews {
		day := ts.AddDate(0, 0, i%3)
		if i%2 == 0 {
			reviews[i] = models.Review{
				ReviewID:  fmt.Sprintf("fraud-%d", i),
				Text:      fmt.Sprintf("scam app stole my money, fake charges on my account %d", i),
				Rating:    intPtr(1),
				Timestamp: &day,
			}
		} else {
			reviews[i] = models.Review{
				ReviewID:  fmt.Sprintf("legit-%d", i),
				Text:      fmt.Sprintf("wonderful app, love the clean design and excellent support %d", i),
				Rating:    intPtr(5),
				Timestamp: &day,
			}
		}
	}
	return reviews
}

func TestAnalyzeAllPositiveSmallBatch(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = fixedClock()
	engine := New(opts)

	reviews := []models.Review{
		{ReviewID: "a", Text: "I love this app, it works wonderfully", Rating: intPtr(5)},
		{ReviewID: "b", Text: "excellent design, super happy with it", Rating: intPtr(5)},
		{ReviewID: "c", Text: "best purchase this year, highly recommend", Rating: intPtr(5)},
	}

	artifact, err := engine.Analyze(context.Background(), reviews)
	require.NoError(t, err)

	assert.Equal(t, 100.0, artifact.Sentiments[models.SentimentPositive].Percent)
	assert.Equal(t, 0.0, artifact.Sentiments[models.SentimentNegative].Percent)
	assert.Equal(t, 0.0, artifact.Sentiments[models.SentimentNeutral].Percent)

	assert.True(t, artifact.DegradedClassification)
	assert.Equal(t, models.DegradedBatchTooSmall, artifact.DegradedReason)

	require.Len(t, artifact.Reviews, 3)
	for _, r := range artifact.Reviews {
		assert.Equal(t, models.LabelLegitimate, r.PredictedLabel)
		assert.Equal(t, 1.0, r.Confidence)
	}
}

func TestAnalyzeSingleFraudReview(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = fixedClock()
	engine := New(opts)

	reviews := []models.Review{
		{ReviewID: "only", Text: "this app is a total scam, stole my money", Rating: intPtr(1)},
	}

	artifact, err := engine.Analyze(context.Background(), reviews)
	require.NoError(t, err)

	require.Len(t, artifact.Reviews, 1)
	r := artifact.Reviews[0]
	assert.Equal(t, models.SentimentNegative, r.Sentiment)
	assert.Equal(t, models.LabelFraud, r.ReferenceLabel)
	assert.Equal(t, models.LabelFraud, r.PredictedLabel)
	assert.True(t, artifact.DegradedClassification)
	assert.Equal(t, 1, artifact.FraudCount)
	assert.Equal(t, models.RiskLevelHigh, artifact.RiskLevel)
}

func TestAnalyzeTrainedBatch(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = fixedClock()
	engine := New(opts)

	artifact, err := engine.Analyze(context.Background(), trainableBatch(20))
	require.NoError(t, err)

	assert.False(t, artifact.DegradedClassification)
	assert.Empty(t, artifact.DegradedReason)

	// 10 fraud + 10 legitimate, 80/20 split: 4 held out.
	assert.Equal(t, 4, artifact.Confusion.Total())

	assert.True(t, artifact.Metrics.Accuracy.Defined)
	assert.Greater(t, artifact.Metrics.Accuracy.Value, 0.8)

	for _, r := range artifact.Reviews {
		assert.True(t, r.Sentiment.Valid())
		assert.True(t, r.ReferenceLabel.Valid())
		assert.True(t, r.PredictedLabel.Valid())
		assert.True(t, r.Confidence >= 0 && r.Confidence <= 1)
	}

	// Reviews alternate fraud/legit over 3 days, so the trend has 3 buckets.
	require.Len(t, artifact.Trend, 3)
	assert.True(t, artifact.Trend[0].IntervalStart.Before(artifact.Trend[1].IntervalStart))
}

func TestAnalyzeIdempotent(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = fixedClock()
	reviews := trainableBatch(24)

	first, err := New(opts).Analyze(context.Background(), reviews)
	require.NoError(t, err)
	second, err := New(opts).Analyze(context.Background(), reviews)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON, "same batch and options must produce a byte-identical artifact")
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	engine := New(DefaultOptions())

	artifact, err := engine.Analyze(context.Background(), nil)
	assert.Nil(t, artifact)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestAnalyzeBlankReviewText(t *testing.T) {
	engine := New(DefaultOptions())

	reviews := []models.Review{
		{ReviewID: "ok", Text: "fine app"},
		{ReviewID: "bad-input", Text: "  \t "},
	}

	artifact, err := engine.Analyze(context.Background(), reviews)
	assert.Nil(t, artifact)

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "bad-input", invalid.ReviewID)
}

func TestAnalyzeFitTimeoutFallsBack(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = fixedClock()
	opts.FitTimeout = time.Nanosecond
	engine := New(opts)

	artifact, err := engine.Analyze(context.Background(), trainableBatch(500))
	require.NoError(t, err, "timeout must fall back, not fail the request")

	assert.True(t, artifact.DegradedClassification)
	assert.Equal(t, models.DegradedFitTimeout, artifact.DegradedReason)
	for _, r := range artifact.Reviews {
		assert.Equal(t, r.ReferenceLabel, r.PredictedLabel)
	}
}

func TestAnalyzeConcurrentInvocations(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = fixedClock()
	engine := New(opts)

	batches := [][]models.Review{
		trainableBatch(20),
		trainableBatch(30),
		trainableBatch(40),
	}

	type outcome struct {
		artifact *models.AnalysisArtifact
		err      error
	}
	results := make(chan outcome, len(batches))

	for _, batch := range batches {
		go func(batch []models.Review) {
			artifact, err := engine.Analyze(context.Background(), batch)
			results <- outcome{artifact, err}
		}(batch)
	}

	sizes := make(map[int]bool)
	for range batches {
		res := <-results
		require.NoError(t, res.err)
		sizes[res.artifact.TotalReviews] = true
	}
	assert.Equal(t, map[int]bool{20: true, 30: true, 40: true}, sizes)
}
