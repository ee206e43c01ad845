package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrResultsNotFound indicates the result bands for a quiz could not be loaded.
	ErrResultsNotFound = errors.New("result bands not found")
	// ErrNotPresenting is returned when an answer is submitted outside the question phase.
	ErrNotPresenting = errors.New("no question is awaiting an answer")
	// ErrNoMatchingBand is returned when no result band contains the final percentage.
	ErrNoMatchingBand = errors.New("no result band matches percentage")
	// ErrPlayNotFound is returned when a play id is not registered.
	ErrPlayNotFound = errors.New("play not found")
)

// LoadError reports that a content resource could not be fetched or parsed.
type LoadError struct {
	Resource string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ConfigurationError reports quiz content that is well-formed JSON but cannot be played
// correctly, e.g. a correct answer that references an unknown option.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return "invalid quiz configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid quiz configuration: %s: %v", e.Reason, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
