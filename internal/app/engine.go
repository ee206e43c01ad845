package app

import (
	"sync"
	"time"

	"quiz-player/internal/domain"
)

// DefaultFeedbackDelay is how long answer feedback stays visible before the next question.
const DefaultFeedbackDelay = 300 * time.Millisecond

// Phase is the engine's position in the quiz state machine.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhasePresenting
	PhaseFeedback
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhasePresenting:
		return "presenting"
	case PhaseFeedback:
		return "feedback"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Phase      Phase
	Index      int
	Total      int
	Score      int
	MaxPoints  int
	Selected   []string
	Generation uint64
	Outcome    *domain.Outcome
}

// Option configures an Engine.
type Option func(*Engine)

// WithFeedbackDelay sets the pause between a submission and the next question.
func WithFeedbackDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.delay = d
		}
	}
}

// WithScheduler replaces the timer source, mainly for tests.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.scheduler = s
		}
	}
}

// Engine drives one play of a quiz. Questions and bands are fixed for its lifetime;
// score, index and selection are reset by StartQuiz.
type Engine struct {
	quiz      domain.Quiz
	bands     []domain.ResultBand
	maxPoints int
	view      View
	scheduler Scheduler
	delay     time.Duration

	mu         sync.Mutex
	phase      Phase
	index      int
	score      int
	selected   []string
	generation uint64
	pending    Timer
	outcome    *domain.Outcome
}

// NewEngine builds an engine over already validated content.
func NewEngine(content domain.Content, view View, opts ...Option) *Engine {
	e := &Engine{
		quiz:      content.Quiz,
		bands:     content.Bands,
		maxPoints: content.Quiz.MaxPoints(),
		view:      view,
		scheduler: SystemScheduler,
		delay:     DefaultFeedbackDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Quiz returns the content the engine plays.
func (e *Engine) Quiz() domain.Quiz {
	return e.quiz
}

// StartQuiz resets the play and presents the first question. Any transition still
// pending from an earlier submission becomes inert.
func (e *Engine) StartQuiz() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPendingLocked()
	e.score = 0
	e.index = 0
	e.selected = nil
	e.outcome = nil
	e.view.ClearResult()
	e.presentLocked()
}

// SelectOption toggles an option of the current question. Clicks on unknown options or
// outside the question phase are ignored and reported with ok=false.
func (e *Engine) SelectOption(optionID string) (domain.Selection, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhasePresenting {
		return domain.Selection{}, false
	}
	q := e.quiz.Questions[e.index]
	if !q.HasOption(optionID) {
		return e.selectionLocked(q), false
	}

	e.selected = toggle(q, e.selected, optionID)
	sel := e.selectionLocked(q)
	e.view.ShowSelection(sel)
	return sel, true
}

// SubmitAnswer scores the current selection, shows feedback and schedules the move
// to the next question.
func (e *Engine) SubmitAnswer() (domain.Feedback, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhasePresenting {
		return domain.Feedback{}, domain.ErrNotPresenting
	}
	q := e.quiz.Questions[e.index]

	correct, markers := evaluate(q, e.selected)
	awarded := 0
	if correct {
		awarded = q.Points
		e.score += awarded
	}
	fb := domain.Feedback{
		QuestionID: q.ID,
		Correct:    correct,
		Awarded:    awarded,
		TotalScore: e.score,
		Markers:    markers,
	}

	e.phase = PhaseFeedback
	e.view.ShowAnswerFeedback(fb)
	e.view.ShowScore(e.score)

	gen := e.generation
	e.pending = e.scheduler.AfterFunc(e.delay, func() { e.advance(gen) })
	return fb, nil
}

// Close stops any pending transition. The engine stays readable but no timer will
// touch the view afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelPendingLocked()
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Phase:      e.phase,
		Index:      e.index,
		Total:      len(e.quiz.Questions),
		Score:      e.score,
		MaxPoints:  e.maxPoints,
		Selected:   append([]string(nil), e.selected...),
		Generation: e.generation,
	}
	if e.outcome != nil {
		out := *e.outcome
		snap.Outcome = &out
	}
	return snap
}

func (e *Engine) advance(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation || e.phase != PhaseFeedback {
		return
	}
	e.pending = nil
	e.selected = nil
	e.view.ClearFeedback()
	e.index++
	e.presentLocked()
}

func (e *Engine) presentLocked() {
	if e.index >= len(e.quiz.Questions) {
		e.finishLocked()
		return
	}

	q := e.quiz.Questions[e.index]
	e.phase = PhasePresenting
	e.view.ShowQuestion(domain.Prompt{
		Number:   e.index + 1,
		Total:    len(e.quiz.Questions),
		ID:       q.ID,
		Title:    q.Title,
		ImageRef: q.ImageRef,
		Kind:     q.Kind,
		Options:  q.PresentedOptions(),
	})
}

func (e *Engine) finishLocked() {
	e.phase = PhaseFinished
	pct := Percentage(e.score, e.maxPoints)
	band, err := ResolveBand(e.bands, pct)
	if err != nil {
		e.view.ClearQuestionArea()
		e.view.ShowError(err)
		e.view.ShowRestartAffordance()
		return
	}

	e.outcome = &domain.Outcome{
		Score:      e.score,
		MaxPoints:  e.maxPoints,
		Percentage: pct,
		Band:       band,
	}
	e.view.ClearQuestionArea()
	e.view.ShowResult(*e.outcome)
	e.view.ShowRestartAffordance()
}

func (e *Engine) cancelPendingLocked() {
	e.generation++
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
	if e.phase == PhaseFeedback {
		e.view.ClearFeedback()
	}
}

func (e *Engine) selectionLocked(q domain.Question) domain.Selection {
	return domain.Selection{
		QuestionID: q.ID,
		OptionIDs:  append([]string(nil), e.selected...),
	}
}
