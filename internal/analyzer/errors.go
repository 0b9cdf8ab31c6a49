package analyzer

import "fmt"

// InvalidInputError means the batch cannot be analyzed at all: there is no
// safe fallback for missing input, so it is surfaced to the caller before
// any processing happens.
type InvalidInputError struct {
	ReviewID string
	Reason   string
}

func (e *InvalidInputError) Error() string {
	if e.ReviewID == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input: review %q: %s", e.ReviewID, e.Reason)
}

// ErrEmptyBatch is returned when Analyze is called with no reviews.
var ErrEmptyBatch = &InvalidInputError{Reason: "batch contains no reviews"}
