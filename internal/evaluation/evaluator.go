// Package evaluation scores classifier predictions against the reference
// labels over the held-out evaluation partition.
package evaluation

import (
	"github.com/spacesedan/reviewlens/internal/models"
)

// Evaluate counts the confusion matrix and derives classification metrics
// for the evaluation partition, identified by evalIndices into reviews.
// Fraud is the positive class. Any metric whose denominator is zero comes
// back undefined rather than zero so callers cannot misread it.
func Evaluate(reviews []models.ScoredReview, evalIndices []int) (models.ConfusionMatrix, models.ClassificationMetrics) {
	var cm models.ConfusionMatrix

	for _, i := range evalIndices {
		r := reviews[i]
		actual := r.ReferenceLabel == models.LabelFraud
		predicted := r.PredictedLabel == models.LabelFraud

		switch {
		case actual && predicted:
			cm.TruePositives++
		case !actual && !predicted:
			cm.TrueNegatives++
		case !actual && predicted:
			cm.FalsePositives++
		default:
			cm.FalseNegatives++
		}
	}

	return cm, Metrics(cm)
}

// Metrics derives accuracy, precision, recall, and F1 from a confusion
// matrix. F1 is undefined whenever precision or recall is undefined, or
// when both are zero.
func Metrics(cm models.ConfusionMatrix) models.ClassificationMetrics {
	var m models.ClassificationMetrics

	if total := cm.Total(); total > 0 {
		m.Accuracy = models.DefinedMetric(float64(cm.TruePositives+cm.TrueNegatives) / float64(total))
	}

	if denom := cm.TruePositives + cm.FalsePositives; denom > 0 {
		m.Precision = models.DefinedMetric(float64(cm.TruePositives) / float64(denom))
	}

	if denom := cm.TruePositives + cm.FalseNegatives; denom > 0 {
		m.Recall = models.DefinedMetric(float64(cm.TruePositives) / float64(denom))
	}

	if m.Precision.Defined && m.Recall.Defined {
		if sum := m.Precision.Value + m.Recall.Value; sum > 0 {
			m.F1Score = models.DefinedMetric(2 * m.Precision.Value * m.Recall.Value / sum)
		}
	}

	return m
}
