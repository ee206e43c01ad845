// Package content decodes and encodes the JSON documents that describe a quiz and its
// result bands, validating them before they reach the engine.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"quiz-player/internal/domain"
)

// Question type values as published in quiz documents. The misspelled forms are the
// ones found in the wild and stay accepted.
const (
	TypeSingle        = "mutiplechoice-single"
	TypeMultiple      = "mutiplechoice-multiple"
	TypeBoolean       = "truefalse"
	typeSingleAlias   = "multiplechoice-single"
	typeMultipleAlias = "multiplechoice-multiple"
)

// ID accepts string, number and boolean JSON literals. Numbers are normalized so
// that 1, 1.0 and 1e0 name the same id.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("id must not be null")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	switch data[0] {
	case '{', '[':
		return fmt.Errorf("id must be a scalar, got %s", data)
	}
	*id = ID(canonicalNumber(string(data)))
	return nil
}

// canonicalNumber rewrites a JSON number in its shortest form. Integral values
// drop their fraction and exponent. Non-numeric literals are returned unchanged.
func canonicalNumber(lit string) string {
	if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return lit
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// AnswerSet holds a scalar or array correct answer.
type AnswerSet []ID

func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var ids []ID
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}
		*a = ids
		return nil
	}
	var id ID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*a = AnswerSet{id}
	return nil
}

// AnswerPayload is one entry of possible_answers.
type AnswerPayload struct {
	ID      ID     `json:"a_id"`
	Caption string `json:"caption"`
}

// QuestionPayload is one entry of questions.
type QuestionPayload struct {
	ID              ID              `json:"q_id"`
	Title           string          `json:"title"`
	Image           string          `json:"img,omitempty"`
	Type            string          `json:"question_type"`
	PossibleAnswers []AnswerPayload `json:"possible_answers,omitempty"`
	CorrectAnswer   AnswerSet       `json:"correct_answer"`
	Points          int             `json:"points"`
}

// QuizPayload is the quiz document.
type QuizPayload struct {
	ID          ID                `json:"quiz_id,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	URL         string            `json:"url,omitempty"`
	Questions   []QuestionPayload `json:"questions"`
}

// ResultPayload is one entry of results.
type ResultPayload struct {
	ID        ID     `json:"r_id,omitempty"`
	MinPoints int    `json:"minpoints"`
	MaxPoints int    `json:"maxpoints"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Image     string `json:"img,omitempty"`
}

// ResultsPayload is the results document.
type ResultsPayload struct {
	Results []ResultPayload `json:"results"`
}

// DecodeQuiz validates raw against the quiz schema and converts it to a domain quiz.
func DecodeQuiz(raw []byte) (domain.Quiz, error) {
	if err := validateDocument(quizSchema, raw); err != nil {
		return domain.Quiz{}, err
	}
	var payload QuizPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Quiz{}, fmt.Errorf("decode quiz: %w", err)
	}
	return payload.ToDomain()
}

// DecodeResults validates raw against the results schema and converts it to bands.
func DecodeResults(raw []byte) ([]domain.ResultBand, error) {
	if err := validateDocument(resultsSchema, raw); err != nil {
		return nil, err
	}
	var payload ResultsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return payload.ToDomain(), nil
}

// ToDomain converts the document, mapping question_type to a kind.
func (p QuizPayload) ToDomain() (domain.Quiz, error) {
	quiz := domain.Quiz{
		ID:          string(p.ID),
		Title:       p.Title,
		Description: p.Description,
		Questions:   make([]domain.Question, 0, len(p.Questions)),
	}
	for i, q := range p.Questions {
		kind, err := ParseKind(q.Type)
		if err != nil {
			return domain.Quiz{}, fmt.Errorf("question %d: %w", i, err)
		}
		question := domain.Question{
			ID:            string(q.ID),
			Title:         q.Title,
			ImageRef:      q.Image,
			Kind:          kind,
			CorrectAnswer: make([]string, len(q.CorrectAnswer)),
			Points:        q.Points,
		}
		for j, id := range q.CorrectAnswer {
			question.CorrectAnswer[j] = string(id)
		}
		if kind != domain.BooleanChoice {
			question.Options = make([]domain.Option, len(q.PossibleAnswers))
			for j, a := range q.PossibleAnswers {
				question.Options[j] = domain.Option{ID: string(a.ID), Caption: a.Caption}
			}
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	return quiz, nil
}

// ToDomain converts the results document.
func (p ResultsPayload) ToDomain() []domain.ResultBand {
	bands := make([]domain.ResultBand, len(p.Results))
	for i, r := range p.Results {
		bands[i] = domain.ResultBand{
			ID:         string(r.ID),
			MinPercent: r.MinPoints,
			MaxPercent: r.MaxPoints,
			Title:      r.Title,
			Message:    r.Message,
			ImageRef:   r.Image,
		}
	}
	return bands
}

// ParseKind maps a question_type value to a domain kind.
func ParseKind(questionType string) (domain.QuestionKind, error) {
	switch strings.ToLower(strings.TrimSpace(questionType)) {
	case TypeSingle, typeSingleAlias:
		return domain.SingleChoice, nil
	case TypeMultiple, typeMultipleAlias:
		return domain.MultipleChoice, nil
	case TypeBoolean:
		return domain.BooleanChoice, nil
	}
	return "", fmt.Errorf("unknown question_type %q", questionType)
}

// FromDomain builds a quiz document, the inverse of QuizPayload.ToDomain.
func FromDomain(quiz domain.Quiz) QuizPayload {
	p := QuizPayload{
		ID:          ID(quiz.ID),
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   make([]QuestionPayload, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		qp := QuestionPayload{
			ID:            ID(q.ID),
			Title:         q.Title,
			Image:         q.ImageRef,
			CorrectAnswer: make(AnswerSet, len(q.CorrectAnswer)),
			Points:        q.Points,
		}
		switch q.Kind {
		case domain.MultipleChoice:
			qp.Type = TypeMultiple
		case domain.BooleanChoice:
			qp.Type = TypeBoolean
		default:
			qp.Type = TypeSingle
		}
		for j, id := range q.CorrectAnswer {
			qp.CorrectAnswer[j] = ID(id)
		}
		if q.Kind != domain.BooleanChoice {
			qp.PossibleAnswers = make([]AnswerPayload, len(q.Options))
			for j, opt := range q.Options {
				qp.PossibleAnswers[j] = AnswerPayload{ID: ID(opt.ID), Caption: opt.Caption}
			}
		}
		p.Questions[i] = qp
	}
	return p
}

// ResultsFromDomain builds a results document from bands.
func ResultsFromDomain(bands []domain.ResultBand) ResultsPayload {
	p := ResultsPayload{Results: make([]ResultPayload, len(bands))}
	for i, b := range bands {
		p.Results[i] = ResultPayload{
			ID:        ID(b.ID),
			MinPoints: b.MinPercent,
			MaxPoints: b.MaxPercent,
			Title:     b.Title,
			Message:   b.Message,
			Image:     b.ImageRef,
		}
	}
	return p
}
