// Package apptest holds test doubles for the quiz engine collaborators.
package apptest

import (
	"sync"
	"time"

	"quiz-player/internal/app"
	"quiz-player/internal/domain"
)

// Event is one recorded render call.
type Event struct {
	Kind    string
	Payload any
}

// RecordingView stores every render call in order.
type RecordingView struct {
	mu     sync.Mutex
	events []Event
}

func (v *RecordingView) record(kind string, payload any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, Event{Kind: kind, Payload: payload})
}

// Events returns a copy of everything recorded so far.
func (v *RecordingView) Events() []Event {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Event(nil), v.events...)
}

// Kinds returns the recorded call names in order.
func (v *RecordingView) Kinds() []string {
	events := v.Events()
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

// Last returns the most recent event of the given kind.
func (v *RecordingView) Last(kind string) (Event, bool) {
	events := v.Events()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind == kind {
			return events[i], true
		}
	}
	return Event{}, false
}

// Reset drops recorded events.
func (v *RecordingView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = nil
}

func (v *RecordingView) ShowMeta(title, description string) {
	v.record("meta", [2]string{title, description})
}
func (v *RecordingView) ShowQuestion(p domain.Prompt)         { v.record("question", p) }
func (v *RecordingView) ShowSelection(s domain.Selection)     { v.record("selection", s) }
func (v *RecordingView) ShowAnswerFeedback(f domain.Feedback) { v.record("feedback", f) }
func (v *RecordingView) ClearFeedback()                       { v.record("clearFeedback", nil) }
func (v *RecordingView) ShowScore(score int)                  { v.record("score", score) }
func (v *RecordingView) ShowResult(o domain.Outcome)          { v.record("result", o) }
func (v *RecordingView) ClearResult()                         { v.record("clearResult", nil) }
func (v *RecordingView) ClearQuestionArea()                   { v.record("clearQuestion", nil) }
func (v *RecordingView) ShowRestartAffordance()               { v.record("restart", nil) }
func (v *RecordingView) ShowError(err error)                  { v.record("error", err) }

// ManualScheduler queues deferred calls until the test fires them.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*ManualTimer
}

// ManualTimer is a queued call.
type ManualTimer struct {
	Delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

// Stop cancels the call if it has not fired yet.
func (t *ManualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) app.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &ManualTimer{Delay: d, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Pending returns the number of queued calls, stopped ones included.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// FireNext runs the oldest queued call. Stopped timers still run their callback when
// forced, which lets tests simulate a timer that raced with Stop.
func (s *ManualScheduler) FireNext(force bool) bool {
	s.mu.Lock()
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return false
	}
	t := s.pending[0]
	s.pending = s.pending[1:]
	s.mu.Unlock()

	if t.stopped && !force {
		return true
	}
	t.fired = true
	t.f()
	return true
}

// FireAll runs queued calls, including ones queued while firing, skipping stopped ones.
func (s *ManualScheduler) FireAll() {
	for s.FireNext(false) {
	}
}

// SampleContent is a two question quiz worth 10 and 20 points with a low band
// covering 0-50% and a high band covering 51-100%.
func SampleContent() domain.Content {
	return domain.Content{
		Quiz: domain.Quiz{
			ID:          "quiz-1",
			Title:       "Sample quiz",
			Description: "Two questions",
			Questions: []domain.Question{
				{
					ID:    "q1",
					Title: "What is 2 + 2?",
					Kind:  domain.SingleChoice,
					Options: []domain.Option{
						{ID: "o1", Caption: "3"},
						{ID: "o2", Caption: "4"},
						{ID: "o3", Caption: "5"},
					},
					CorrectAnswer: []string{"o2"},
					Points:        10,
				},
				{
					ID:    "q2",
					Title: "Which are even?",
					Kind:  domain.MultipleChoice,
					Options: []domain.Option{
						{ID: "o1", Caption: "2"},
						{ID: "o2", Caption: "3"},
						{ID: "o3", Caption: "4"},
					},
					CorrectAnswer: []string{"o1", "o3"},
					Points:        20,
				},
			},
		},
		Bands: []domain.ResultBand{
			{ID: "low", MinPercent: 0, MaxPercent: 50, Title: "Keep practicing", Message: "Try again"},
			{ID: "high", MinPercent: 51, MaxPercent: 100, Title: "Well done", Message: "Great job"},
		},
	}
}
