package classifier

import (
	"math/rand"
	"sort"

	"github.com/spacesedan/reviewlens/internal/models"
)

// stratifiedSplit partitions indices into train and evaluation sets,
// preserving the label proportions of the batch. The shuffle is driven by
// the caller's seed so the same batch and seed always produce the same
// partitions. Returned index slices are sorted ascending.
func stratifiedSplit(labels []models.RiskLabel, ratio float64, seed int64) (train, eval []int) {
	rng := rand.New(rand.NewSource(seed))

	byClass := [2][]int{}
	for i, label := range labels {
		c := classIndex(label)
		byClass[c] = append(byClass[c], i)
	}

	for c := 0; c < 2; c++ {
		idx := byClass[c]
		rng.Shuffle(len(idx), func(a, b int) {
			idx[a], idx[b] = idx[b], idx[a]
		})

		trainN := int(float64(len(idx)) * ratio)
		// Keep at least one sample of each present class in training,
		// otherwise the model never sees that class.
		if trainN == 0 && len(idx) > 0 {
			trainN = 1
		}

		train = append(train, idx[:trainN]...)
		eval = append(eval, idx[trainN:]...)
	}

	sort.Ints(train)
	sort.Ints(eval)
	return train, eval
}
