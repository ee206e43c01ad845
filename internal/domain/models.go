package domain

// QuestionKind describes how options of a question may be selected.
type QuestionKind string

const (
	SingleChoice   QuestionKind = "single"
	MultipleChoice QuestionKind = "multiple"
	BooleanChoice  QuestionKind = "boolean"
)

// Ids of the synthetic options generated for boolean questions.
const (
	OptionTrue  = "true"
	OptionFalse = "false"
)

// AllowsMany reports whether several options may be selected at once.
func (k QuestionKind) AllowsMany() bool {
	return k == MultipleChoice
}

// Valid reports whether k is a known kind.
func (k QuestionKind) Valid() bool {
	switch k {
	case SingleChoice, MultipleChoice, BooleanChoice:
		return true
	}
	return false
}

// Option represents a possible answer for a question.
type Option struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
}

// Question is a single quiz step. CorrectAnswer holds one id for single and boolean
// questions and one or more ids for multiple-choice questions.
type Question struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	ImageRef      string       `json:"imageRef,omitempty"`
	Kind          QuestionKind `json:"kind"`
	Options       []Option     `json:"options,omitempty"`
	CorrectAnswer []string     `json:"correctAnswer"`
	Points        int          `json:"points"`
}

// BooleanOptions returns the synthetic options shown for boolean questions.
func BooleanOptions() []Option {
	return []Option{
		{ID: OptionTrue, Caption: "True"},
		{ID: OptionFalse, Caption: "False"},
	}
}

// PresentedOptions returns the options a player can choose from, in display order.
// Boolean questions ignore any supplied options.
func (q Question) PresentedOptions() []Option {
	if q.Kind == BooleanChoice {
		return BooleanOptions()
	}
	out := make([]Option, len(q.Options))
	copy(out, q.Options)
	return out
}

// HasOption reports whether id is selectable for this question.
func (q Question) HasOption(id string) bool {
	for _, opt := range q.PresentedOptions() {
		if opt.ID == id {
			return true
		}
	}
	return false
}

// Quiz is the playable content: metadata plus ordered questions.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// MaxPoints sums the points of every question.
func (q Quiz) MaxPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

// ResultBand maps an inclusive percentage range to a narrative result.
type ResultBand struct {
	ID         string `json:"id,omitempty"`
	MinPercent int    `json:"minPercent"`
	MaxPercent int    `json:"maxPercent"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	ImageRef   string `json:"imageRef,omitempty"`
}

// Contains reports whether percentage falls inside the band, bounds included.
func (b ResultBand) Contains(percentage int) bool {
	return b.MinPercent <= percentage && percentage <= b.MaxPercent
}

// Content is everything a play needs, loaded up front.
type Content struct {
	Quiz  Quiz         `json:"quiz"`
	Bands []ResultBand `json:"bands"`
}

// Prompt is the render instruction for presenting one question.
type Prompt struct {
	Number   int          `json:"number"`
	Total    int          `json:"total"`
	ID       string       `json:"questionId"`
	Title    string       `json:"title"`
	ImageRef string       `json:"imageRef,omitempty"`
	Kind     QuestionKind `json:"kind"`
	Options  []Option     `json:"options"`
}

// Selection is the set of option ids currently chosen for a question, in option order.
type Selection struct {
	QuestionID string   `json:"questionId"`
	OptionIDs  []string `json:"optionIds"`
}

// Mark classifies one option after an answer was submitted.
type Mark string

const (
	MarkCorrectSelected Mark = "correct-selected"
	MarkMissingCorrect  Mark = "missing-correct"
	MarkWrong           Mark = "wrong"
)

// AnswerMarker is per-option feedback. Options that were neither selected nor correct
// get no marker.
type AnswerMarker struct {
	OptionID string `json:"optionId"`
	Mark     Mark   `json:"mark"`
}

// Feedback summarizes the outcome of a submission.
type Feedback struct {
	QuestionID string         `json:"questionId"`
	Correct    bool           `json:"correct"`
	Awarded    int            `json:"awarded"`
	TotalScore int            `json:"totalScore"`
	Markers    []AnswerMarker `json:"markers"`
}

// Outcome is the final result of a play.
type Outcome struct {
	Score      int        `json:"score"`
	MaxPoints  int        `json:"maxPoints"`
	Percentage int        `json:"percentage"`
	Band       ResultBand `json:"band"`
}
