package sentiment

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/spacesedan/reviewlens/internal/models"
)

const DEFAULT_SCORE_WORKERS = 4

// ScoreBatch scores every review concurrently and returns ScoredReviews in
// the original input order. Scoring is per-review independent, so workers
// write results by index and ordering never needs a re-sort.
func (s *Scorer) ScoreBatch(reviews []models.Review, workers int) ([]models.ScoredReview, error) {
	if workers <= 0 {
		workers = DEFAULT_SCORE_WORKERS
	}
	if workers > len(reviews) {
		workers = len(reviews)
	}

	scored := make([]models.ScoredReview, len(reviews))
	errs := make([]error, len(reviews))

	var wg sync.WaitGroup
	jobs := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				polarity, label, err := s.Score(reviews[i].Text)
				if err != nil {
					errs[i] = fmt.Errorf("review %q: %w", reviews[i].ReviewID, err)
					continue
				}
				scored[i] = models.ScoredReview{
					Review:    reviews[i],
					Polarity:  polarity,
					Sentiment: label,
				}
			}
		}()
	}

	for i := range reviews {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	slog.Debug("[Scorer] Batch scored",
		slog.Int("reviews", len(reviews)),
		slog.Int("workers", workers))

	return scored, nil
}
