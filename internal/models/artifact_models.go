package models

import (
	"encoding/json"
	"time"
)

// ConfusionMatrix counts classifier predictions against reference labels
// over the evaluation partition. Fraud is the positive class.
type ConfusionMatrix struct {
	TruePositives  int `json:"true_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalsePositives int `json:"false_positives"`
	FalseNegatives int `json:"false_negatives"`
}

// Total returns the number of classified reviews the matrix covers.
func (m ConfusionMatrix) Total() int {
	return m.TruePositives + m.TrueNegatives + m.FalsePositives + m.FalseNegatives
}

// MetricValue is a score in [0,1] that can be structurally undefined when
// its denominator was zero. Undefined values marshal as JSON null so a
// consumer can never mistake them for a real 0.0.
type MetricValue struct {
	Value   float64
	Defined bool
}

// DefinedMetric wraps v as a defined MetricValue.
func DefinedMetric(v float64) MetricValue {
	return MetricValue{Value: v, Defined: true}
}

// UndefinedMetric is the marker for a score whose denominator was zero.
func UndefinedMetric() MetricValue {
	return MetricValue{}
}

func (m MetricValue) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *MetricValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = MetricValue{}
		return nil
	}
	m.Defined = true
	return json.Unmarshal(data, &m.Value)
}

// ClassificationMetrics are the classifier-quality scores derived from a
// ConfusionMatrix.
type ClassificationMetrics struct {
	Accuracy  MetricValue `json:"accuracy"`
	Precision MetricValue `json:"precision"`
	Recall    MetricValue `json:"recall"`
	F1Score   MetricValue `json:"f1_score"`
}

// SentimentBreakdown is a count plus the half-up percentage of the batch
// it represents.
type SentimentBreakdown struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// TrendPoint is one time bucket of the sentiment trend.
type TrendPoint struct {
	IntervalStart time.Time `json:"interval_start"`
	Positive      int       `json:"positive"`
	Negative      int       `json:"negative"`
	Neutral       int       `json:"neutral"`
}

// RiskLevel buckets the aggregate risk score for presentation.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelElevated RiskLevel = "elevated"
	RiskLevelHigh     RiskLevel = "high"
)

// DegradedReason says why the classifier fell back to mirroring the
// reference labels.
type DegradedReason string

const (
	DegradedBatchTooSmall DegradedReason = "batch_too_small"
	DegradedSingleClass   DegradedReason = "single_class"
	DegradedFitTimeout    DegradedReason = "fit_timeout"
)

// AnalysisArtifact is the immutable result of one analysis invocation.
// The engine builds it once and never touches it again; persistence and
// presentation belong to the caller.
type AnalysisArtifact struct {
	GeneratedAt  time.Time `json:"generated_at"`
	TotalReviews int       `json:"total_reviews"`

	Sentiments map[Sentiment]SentimentBreakdown `json:"sentiments"`

	FraudCount        int     `json:"fraud_count"`
	LegitimateCount   int     `json:"legitimate_count"`
	FraudPercent      float64 `json:"fraud_percent"`
	LegitimatePercent float64 `json:"legitimate_percent"`

	RiskScore float64   `json:"risk_score"`
	RiskLevel RiskLevel `json:"risk_level"`

	DegradedClassification bool           `json:"degraded_classification"`
	DegradedReason         DegradedReason `json:"degraded_reason,omitempty"`

	Confusion ConfusionMatrix       `json:"confusion_matrix"`
	Metrics   ClassificationMetrics `json:"metrics"`

	WordFrequencies map[Sentiment]map[string]int `json:"word_frequencies"`

	Trend []TrendPoint `json:"sentiment_trend,omitempty"`

	Reviews []ScoredReview `json:"reviews"`
}
