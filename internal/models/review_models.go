package models

import (
	"fmt"
	"time"
)

// Sentiment is the closed set of sentiment classes a review can carry.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether s is one of the known sentiment classes.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// RiskLabel is the closed fraud/legitimate classification target.
// "fraud" is the positive class everywhere metrics are concerned.
type RiskLabel string

const (
	LabelFraud      RiskLabel = "fraud"
	LabelLegitimate RiskLabel = "legitimate"
)

func (l RiskLabel) Valid() bool {
	switch l {
	case LabelFraud, LabelLegitimate:
		return true
	}
	return false
}

// Review is one raw app-store review as handed in by the calling layer.
// Rating and Timestamp are optional; Text is required and non-blank.
type Review struct {
	ReviewID  string     `json:"review_id"`
	Text      string     `json:"text"`
	Rating    *int       `json:"rating,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ScoredReview is a Review carried through the full pipeline: lexical
// polarity, sentiment class, heuristic reference label, and the
// classifier's prediction with its posterior confidence.
type ScoredReview struct {
	Review
	Polarity       float64   `json:"polarity"`
	Sentiment      Sentiment `json:"sentiment"`
	ReferenceLabel RiskLabel `json:"fraud_reference_label"`
	PredictedLabel RiskLabel `json:"predicted_label"`
	Confidence     float64   `json:"confidence"`
}

func (r ScoredReview) String() string {
	return fmt.Sprintf("%s sentiment=%s ref=%s pred=%s conf=%.2f",
		r.ReviewID, r.Sentiment, r.ReferenceLabel, r.PredictedLabel, r.Confidence)
}
