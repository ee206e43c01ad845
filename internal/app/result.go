package app

import (
	"fmt"
	"math"

	"quiz-player/internal/domain"
)

// Percentage returns round(score/maxPoints*100). A quiz without points scores 0%.
func Percentage(score, maxPoints int) int {
	if maxPoints <= 0 {
		return 0
	}
	return int(math.Round(float64(score) * 100 / float64(maxPoints)))
}

// ResolveBand returns the first band containing percentage.
func ResolveBand(bands []domain.ResultBand, percentage int) (domain.ResultBand, error) {
	for _, band := range bands {
		if band.Contains(percentage) {
			return band, nil
		}
	}
	return domain.ResultBand{}, &domain.ConfigurationError{
		Reason: fmt.Sprintf("percentage %d", percentage),
		Err:    domain.ErrNoMatchingBand,
	}
}
