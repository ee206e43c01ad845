package app

import "quiz-player/internal/domain"

// evaluate compares the selected ids with the correct set. The answer is correct only
// when both sets are equal. Markers follow the presented option order.
func evaluate(q domain.Question, selected []string) (bool, []domain.AnswerMarker) {
	correct := make(map[string]struct{}, len(q.CorrectAnswer))
	for _, id := range q.CorrectAnswer {
		correct[id] = struct{}{}
	}
	chosen := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		chosen[id] = struct{}{}
	}

	isCorrect := len(chosen) == len(correct)
	for id := range chosen {
		if _, ok := correct[id]; !ok {
			isCorrect = false
		}
	}
	for id := range correct {
		if _, ok := chosen[id]; !ok {
			isCorrect = false
		}
	}

	markers := make([]domain.AnswerMarker, 0, len(correct)+len(chosen))
	for _, opt := range q.PresentedOptions() {
		_, isChosen := chosen[opt.ID]
		_, isRight := correct[opt.ID]
		switch {
		case isChosen && isRight:
			markers = append(markers, domain.AnswerMarker{OptionID: opt.ID, Mark: domain.MarkCorrectSelected})
		case isRight:
			markers = append(markers, domain.AnswerMarker{OptionID: opt.ID, Mark: domain.MarkMissingCorrect})
		case isChosen:
			markers = append(markers, domain.AnswerMarker{OptionID: opt.ID, Mark: domain.MarkWrong})
		}
	}
	return isCorrect, markers
}

// toggle applies one option click to the current selection and returns the new one.
// Single and boolean questions keep at most one id.
func toggle(q domain.Question, selected []string, optionID string) []string {
	present := false
	for _, id := range selected {
		if id == optionID {
			present = true
			break
		}
	}

	next := make(map[string]struct{}, len(selected)+1)
	switch {
	case present:
		for _, id := range selected {
			if id != optionID {
				next[id] = struct{}{}
			}
		}
	case q.Kind.AllowsMany():
		for _, id := range selected {
			next[id] = struct{}{}
		}
		next[optionID] = struct{}{}
	default:
		next[optionID] = struct{}{}
	}

	out := make([]string, 0, len(next))
	for _, opt := range q.PresentedOptions() {
		if _, ok := next[opt.ID]; ok {
			out = append(out, opt.ID)
		}
	}
	return out
}
