package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spacesedan/reviewlens/internal/analyzer"
)

// EngineOptionsFromEnv builds analyzer options from REVIEWLENS_* variables,
// starting from the documented defaults. Unset or malformed values keep
// the default; malformed values are logged so misconfiguration is visible.
func EngineOptionsFromEnv() analyzer.Options {
	opts := analyzer.DefaultOptions()

	floatVar(&opts.PositiveThreshold, "REVIEWLENS_POSITIVE_THRESHOLD")
	floatVar(&opts.NegativeThreshold, "REVIEWLENS_NEGATIVE_THRESHOLD")
	floatVar(&opts.TrainSplitRatio, "REVIEWLENS_TRAIN_SPLIT_RATIO")

	intVar(&opts.MinBatchForTraining, "REVIEWLENS_MIN_BATCH_FOR_TRAINING")
	intVar(&opts.TopNWords, "REVIEWLENS_TOP_N_WORDS")
	intVar(&opts.ScoreWorkers, "REVIEWLENS_SCORE_WORKERS")

	int64Var(&opts.RandomSeed, "REVIEWLENS_RANDOM_SEED")

	durationVar(&opts.FitTimeout, "REVIEWLENS_FIT_TIMEOUT")
	durationVar(&opts.TrendInterval, "REVIEWLENS_TREND_INTERVAL")

	if raw := os.Getenv("REVIEWLENS_FRAUD_KEYWORDS"); raw != "" {
		opts.FraudKeywords = splitList(raw)
	}
	if raw := os.Getenv("REVIEWLENS_STOPWORDS"); raw != "" {
		opts.Stopwords = splitList(raw)
	}

	return opts
}

func floatVar(dst *float64, key string) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		slog.Warn("Ignoring malformed env var", slog.String("key", key), slog.String("value", raw))
		return
	}
	*dst = v
}

func intVar(dst *int, key string) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("Ignoring malformed env var", slog.String("key", key), slog.String("value", raw))
		return
	}
	*dst = v
}

func int64Var(dst *int64, key string) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		slog.Warn("Ignoring malformed env var", slog.String("key", key), slog.String("value", raw))
		return
	}
	*dst = v
}

func durationVar(dst *time.Duration, key string) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Ignoring malformed env var", slog.String("key", key), slog.String("value", raw))
		return
	}
	*dst = v
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
