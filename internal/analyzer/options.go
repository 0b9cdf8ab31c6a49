package analyzer

import (
	"time"

	"github.com/spacesedan/reviewlens/internal/aggregation"
	"github.com/spacesedan/reviewlens/internal/classifier"
	"github.com/spacesedan/reviewlens/internal/sentiment"
)

// Options is the full configuration for one engine. Every stage receives
// its slice of these explicitly; nothing reads ambient state, so tests can
// run any stage with arbitrary configurations.
type Options struct {
	// Sentiment scoring.
	PositiveThreshold float64
	NegativeThreshold float64
	FraudKeywords     []string
	MaxScoreLength    int
	ScoreWorkers      int

	// Classification.
	MinBatchForTraining int
	TrainSplitRatio     float64
	RandomSeed          int64
	FitTimeout          time.Duration

	// Aggregation.
	TrendInterval time.Duration
	Stopwords     []string
	TopNWords     int

	// Now supplies the artifact's generated-at timestamp. Defaults to
	// time.Now; tests pin it for reproducible artifacts.
	Now func() time.Time
}

// DefaultOptions returns the documented defaults for every tunable.
func DefaultOptions() Options {
	return Options{
		PositiveThreshold:   0.1,
		NegativeThreshold:   -0.1,
		FraudKeywords:       sentiment.DefaultFraudKeywords,
		MaxScoreLength:      4000,
		ScoreWorkers:        sentiment.DEFAULT_SCORE_WORKERS,
		MinBatchForTraining: classifier.DEFAULT_MIN_BATCH,
		TrainSplitRatio:     classifier.DEFAULT_SPLIT_RATIO,
		RandomSeed:          classifier.DEFAULT_SEED,
		TrendInterval:       aggregation.DEFAULT_TREND_INTERVAL,
		TopNWords:           aggregation.DEFAULT_TOP_N_WORDS,
		Now:                 time.Now,
	}
}

func (o Options) scorerConfig() sentiment.Config {
	cfg := sentiment.Config{
		FraudKeywords:  o.FraudKeywords,
		MaxScoreLength: o.MaxScoreLength,
	}
	// Zero here means "unset" so a bare Options still gets the default
	// band; set an explicit zero threshold through sentiment.Config.
	if o.PositiveThreshold != 0 {
		cfg.PositiveThreshold = &o.PositiveThreshold
	}
	if o.NegativeThreshold != 0 {
		cfg.NegativeThreshold = &o.NegativeThreshold
	}
	return cfg
}

func (o Options) classifierConfig() classifier.Config {
	return classifier.Config{
		MinBatchForTraining: o.MinBatchForTraining,
		TrainSplitRatio:     o.TrainSplitRatio,
		RandomSeed:          o.RandomSeed,
		FitTimeout:          o.FitTimeout,
	}
}

func (o Options) aggregatorConfig() aggregation.Config {
	return aggregation.Config{
		TopNWords:     o.TopNWords,
		Stopwords:     o.Stopwords,
		TrendInterval: o.TrendInterval,
	}
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now().UTC()
	}
	return o.Now().UTC()
}
