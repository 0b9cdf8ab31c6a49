package classifier

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/spacesedan/reviewlens/internal/models"
)

// classes fixes the class ordering for every model in this package.
// Index 0 is the positive (fraud) class.
var classes = [2]models.RiskLabel{models.LabelFraud, models.LabelLegitimate}

// naiveBayes is a multinomial naive Bayes model with Laplace smoothing,
// fit on bag-of-words count vectors. All math is in log space.
type naiveBayes struct {
	logPrior [2]float64
	// logCond[c][t] is log P(term t | class c).
	logCond [2][]float64
}

func fitNaiveBayes(vectors [][]float64, labels []models.RiskLabel) *naiveBayes {
	vocabSize := 0
	if len(vectors) > 0 {
		vocabSize = len(vectors[0])
	}

	var docCount [2]float64
	termCount := [2][]float64{
		make([]float64, vocabSize),
		make([]float64, vocabSize),
	}

	for i, vec := range vectors {
		c := classIndex(labels[i])
		docCount[c]++
		floats.Add(termCount[c], vec)
	}

	nb := &naiveBayes{}
	total := float64(len(vectors))
	for c := 0; c < 2; c++ {
		nb.logPrior[c] = math.Log(docCount[c] / total)

		classTotal := floats.Sum(termCount[c])
		denom := math.Log(classTotal + float64(vocabSize))
		nb.logCond[c] = make([]float64, vocabSize)
		for t := 0; t < vocabSize; t++ {
			nb.logCond[c][t] = math.Log(termCount[c][t]+1) - denom
		}
	}

	return nb
}

// predict returns the most probable class for vec and the normalized
// posterior probability of that class.
func (nb *naiveBayes) predict(vec []float64) (models.RiskLabel, float64) {
	logProb := make([]float64, 2)
	for c := 0; c < 2; c++ {
		logProb[c] = nb.logPrior[c] + floats.Dot(vec, nb.logCond[c])
	}

	best := 0
	if logProb[1] > logProb[0] {
		best = 1
	}

	confidence := math.Exp(logProb[best] - floats.LogSumExp(logProb))
	return classes[best], confidence
}

func classIndex(label models.RiskLabel) int {
	switch label {
	case models.LabelFraud:
		return 0
	case models.LabelLegitimate:
		return 1
	default:
		panic("classifier: unknown risk label " + string(label))
	}
}
