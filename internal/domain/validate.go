package domain

import (
	"errors"
	"fmt"
)

// ValidateContent checks that quiz content can be played to completion: every correct
// answer references a selectable option and every percentage from 0 to 100 maps to a
// band. All problems are reported together in a single *ConfigurationError.
func ValidateContent(content Content) error {
	var problems []error

	seenQuestions := make(map[string]struct{}, len(content.Quiz.Questions))
	for i, q := range content.Quiz.Questions {
		if q.ID == "" {
			problems = append(problems, fmt.Errorf("question %d: missing id", i))
		} else if _, dup := seenQuestions[q.ID]; dup {
			problems = append(problems, fmt.Errorf("question %q: duplicate id", q.ID))
		}
		seenQuestions[q.ID] = struct{}{}

		if err := validateQuestion(q); err != nil {
			problems = append(problems, fmt.Errorf("question %q: %w", q.ID, err))
		}
	}

	if err := validateBands(content.Bands); err != nil {
		problems = append(problems, err)
	}

	if len(problems) == 0 {
		return nil
	}
	return &ConfigurationError{Reason: "content validation failed", Err: errors.Join(problems...)}
}

func validateQuestion(q Question) error {
	if !q.Kind.Valid() {
		return fmt.Errorf("unknown kind %q", q.Kind)
	}
	if q.Points < 0 {
		return fmt.Errorf("negative points %d", q.Points)
	}

	options := q.PresentedOptions()
	if len(options) == 0 {
		return errors.New("no options")
	}
	ids := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if opt.ID == "" {
			return errors.New("option without id")
		}
		if _, dup := ids[opt.ID]; dup {
			return fmt.Errorf("duplicate option id %q", opt.ID)
		}
		ids[opt.ID] = struct{}{}
	}

	if len(q.CorrectAnswer) == 0 {
		return errors.New("no correct answer")
	}
	if !q.Kind.AllowsMany() && len(q.CorrectAnswer) != 1 {
		return fmt.Errorf("%s question needs exactly one correct answer, got %d", q.Kind, len(q.CorrectAnswer))
	}
	for _, id := range q.CorrectAnswer {
		if _, ok := ids[id]; !ok {
			return fmt.Errorf("correct answer %q is not an option", id)
		}
	}
	return nil
}

func validateBands(bands []ResultBand) error {
	if len(bands) == 0 {
		return errors.New("no result bands")
	}
	var covered [101]bool
	for i, b := range bands {
		if b.MinPercent < 0 || b.MaxPercent > 100 || b.MinPercent > b.MaxPercent {
			return fmt.Errorf("band %d: invalid range [%d,%d]", i, b.MinPercent, b.MaxPercent)
		}
		for p := b.MinPercent; p <= b.MaxPercent; p++ {
			covered[p] = true
		}
	}
	for p, ok := range covered {
		if !ok {
			return fmt.Errorf("result bands leave %d%% uncovered", p)
		}
	}
	return nil
}
