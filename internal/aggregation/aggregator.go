// Package aggregation reduces per-review pipeline output into the final
// analysis artifact: sentiment distributions, fraud tallies, word
// frequency maps, the time-bucketed trend, and the risk rollup.
package aggregation

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spacesedan/reviewlens/internal/models"
)

const (
	DEFAULT_TOP_N_WORDS    = 200
	DEFAULT_TREND_INTERVAL = 24 * time.Hour

	// Risk-level cut points on the 0-100 risk score.
	riskHighThreshold     = 30.0
	riskElevatedThreshold = riskHighThreshold * 0.7
)

var wordPattern = regexp.MustCompile(`[a-z0-9']+`)

// Config holds the aggregation tunables. Zero values fall back to defaults
// in NewAggregator; a nil Stopwords means the default English list.
type Config struct {
	TopNWords     int
	Stopwords     []string
	TrendInterval time.Duration
}

type Aggregator struct {
	cfg       Config
	stopwords map[string]struct{}
}

func NewAggregator(cfg Config) *Aggregator {
	if cfg.TopNWords <= 0 {
		cfg.TopNWords = DEFAULT_TOP_N_WORDS
	}
	if cfg.TrendInterval <= 0 {
		cfg.TrendInterval = DEFAULT_TREND_INTERVAL
	}
	return &Aggregator{cfg: cfg, stopwords: buildStopwords(cfg.Stopwords)}
}

// ClassificationOutcome carries the classifier-stage results the artifact
// records alongside the aggregates.
type ClassificationOutcome struct {
	Confusion models.ConfusionMatrix
	Metrics   models.ClassificationMetrics
	Degraded  bool
	Reason    models.DegradedReason
}

// Aggregate builds the immutable analysis artifact for one batch. The
// review order in the artifact is the input order; nothing here re-sorts
// the batch.
func (a *Aggregator) Aggregate(reviews []models.ScoredReview, outcome ClassificationOutcome, generatedAt time.Time) *models.AnalysisArtifact {
	total := len(reviews)

	sentimentCounts := map[models.Sentiment]int{
		models.SentimentPositive: 0,
		models.SentimentNeutral:  0,
		models.SentimentNegative: 0,
	}
	fraudCount := 0
	for _, r := range reviews {
		sentimentCounts[r.Sentiment]++
		if r.PredictedLabel == models.LabelFraud {
			fraudCount++
		}
	}

	sentiments := make(map[models.Sentiment]models.SentimentBreakdown, 3)
	for label, count := range sentimentCounts {
		sentiments[label] = models.SentimentBreakdown{
			Count:   count,
			Percent: roundPercent(count, total),
		}
	}

	riskScore := a.riskScore(
		sentiments[models.SentimentPositive].Percent,
		sentiments[models.SentimentNegative].Percent,
		sentiments[models.SentimentNeutral].Percent,
	)

	return &models.AnalysisArtifact{
		GeneratedAt:  generatedAt,
		TotalReviews: total,

		Sentiments: sentiments,

		FraudCount:        fraudCount,
		LegitimateCount:   total - fraudCount,
		FraudPercent:      roundPercent(fraudCount, total),
		LegitimatePercent: roundPercent(total-fraudCount, total),

		RiskScore: riskScore,
		RiskLevel: riskLevel(riskScore),

		DegradedClassification: outcome.Degraded,
		DegradedReason:         outcome.Reason,

		Confusion: outcome.Confusion,
		Metrics:   outcome.Metrics,

		WordFrequencies: a.wordFrequencies(reviews),
		Trend:           a.trend(reviews),

		Reviews: reviews,
	}
}

// roundPercent returns count/total as a percentage rounded half-up to one
// decimal place.
func roundPercent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(count) / float64(total) * 100
	return math.Round(pct*10) / 10
}

// riskScore inverts the positive-weighted rating of the original analyzer:
// positives count fully, neutrals get credit in proportion to the
// positive/negative balance, and the remainder is risk.
func (a *Aggregator) riskScore(posPct, negPct, neuPct float64) float64 {
	appRating := posPct
	if posPct+negPct > 0 {
		appRating += neuPct * (posPct / (posPct + negPct))
	}
	if appRating > 100 {
		appRating = 100
	}
	return math.Round((100-appRating)*10) / 10
}

func riskLevel(score float64) models.RiskLevel {
	switch {
	case score > riskHighThreshold:
		return models.RiskLevelHigh
	case score > riskElevatedThreshold:
		return models.RiskLevelElevated
	default:
		return models.RiskLevelLow
	}
}

// wordFrequencies tokenizes every review and tallies tokens into the map
// for that review's sentiment class, capped to the top-N most frequent
// tokens per class. Ties break alphabetically so output is deterministic.
func (a *Aggregator) wordFrequencies(reviews []models.ScoredReview) map[models.Sentiment]map[string]int {
	tallies := map[models.Sentiment]map[string]int{
		models.SentimentPositive: {},
		models.SentimentNeutral:  {},
		models.SentimentNegative: {},
	}

	for _, r := range reviews {
		bucket := tallies[r.Sentiment]
		for _, tok := range wordPattern.FindAllString(strings.ToLower(r.Text), -1) {
			if len(tok) < 2 {
				continue
			}
			if _, stop := a.stopwords[tok]; stop {
				continue
			}
			bucket[tok]++
		}
	}

	out := make(map[models.Sentiment]map[string]int, len(tallies))
	for label, tally := range tallies {
		out[label] = topN(tally, a.cfg.TopNWords)
	}
	return out
}

func topN(tally map[string]int, n int) map[string]int {
	if len(tally) <= n {
		return tally
	}

	type entry struct {
		word  string
		count int
	}
	entries := make([]entry, 0, len(tally))
	for word, count := range tally {
		entries = append(entries, entry{word, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].word < entries[j].word
	})

	capped := make(map[string]int, n)
	for _, e := range entries[:n] {
		capped[e.word] = e.count
	}
	return capped
}

// trend buckets timestamped reviews into fixed UTC intervals. Reviews
// without timestamps are left out of the trend but stay in every other
// aggregate.
func (a *Aggregator) trend(reviews []models.ScoredReview) []models.TrendPoint {
	buckets := make(map[time.Time]*models.TrendPoint)

	for _, r := range reviews {
		if r.Timestamp == nil {
			continue
		}
		start := r.Timestamp.UTC().Truncate(a.cfg.TrendInterval)

		point, ok := buckets[start]
		if !ok {
			point = &models.TrendPoint{IntervalStart: start}
			buckets[start] = point
		}

		switch r.Sentiment {
		case models.SentimentPositive:
			point.Positive++
		case models.SentimentNegative:
			point.Negative++
		case models.SentimentNeutral:
			point.Neutral++
		}
	}

	if len(buckets) == 0 {
		return nil
	}

	points := make([]models.TrendPoint, 0, len(buckets))
	for _, point := range buckets {
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].IntervalStart.Before(points[j].IntervalStart)
	})
	return points
}
