// Package labeling derives the fraud/legitimate reference label used as
// the classifier's supervised target. The source data carries no verified
// fraud labels, so this heuristic manufactures one; the engine evaluates
// the classifier against these derived labels and callers are expected to
// present the results as an approximation, not confirmed fraud.
package labeling

import (
	"github.com/spacesedan/reviewlens/internal/models"
)

// stronglyNegative is the polarity band that qualifies a review for the
// fraud label. The keyword override polarity (-0.8) always falls inside it.
const stronglyNegative = -0.5

// KeywordMatcher reports whether a text contains a configured fraud term.
// Satisfied by *sentiment.Scorer.
type KeywordMatcher interface {
	HasFraudKeyword(text string) bool
}

// Labeler turns scorer output into reference labels.
type Labeler struct {
	matcher KeywordMatcher
}

func NewLabeler(matcher KeywordMatcher) *Labeler {
	return &Labeler{matcher: matcher}
}

// Derive applies the labeling rule: fraud when the polarity is strongly
// negative AND the review either carries a rating of 2 or below or matches
// a fraud keyword. Everything else is legitimate. Pure function of its
// inputs; the same review always gets the same label.
func (l *Labeler) Derive(polarity float64, rating *int, text string) models.RiskLabel {
	if polarity > stronglyNegative {
		return models.LabelLegitimate
	}

	if rating != nil && *rating <= 2 {
		return models.LabelFraud
	}
	if l.matcher.HasFraudKeyword(text) {
		return models.LabelFraud
	}

	return models.LabelLegitimate
}

// LabelBatch sets ReferenceLabel on every scored review in place.
func (l *Labeler) LabelBatch(reviews []models.ScoredReview) {
	for i := range reviews {
		reviews[i].ReferenceLabel = l.Derive(reviews[i].Polarity, reviews[i].Rating, reviews[i].Text)
	}
}
