package tui

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"quiz-player/internal/app"
	"quiz-player/internal/app/apptest"
	"quiz-player/internal/domain"
)

// fakePlayer records calls and keeps a single-choice selection like the engine.
type fakePlayer struct {
	mu       sync.Mutex
	calls    []string
	selected []string
	delay    time.Duration
}

func (p *fakePlayer) SelectOption(optionID string) (domain.Selection, bool) {
	time.Sleep(p.delay)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "select:"+optionID)
	if len(p.selected) == 1 && p.selected[0] == optionID {
		p.selected = nil
	} else {
		p.selected = []string{optionID}
	}
	return domain.Selection{OptionIDs: slices.Clone(p.selected)}, true
}

func (p *fakePlayer) SubmitAnswer() (domain.Feedback, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "submit")
	return domain.Feedback{}, nil
}

func (p *fakePlayer) StartQuiz() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "start")
}

func (p *fakePlayer) Snapshot() app.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return app.Snapshot{Selected: slices.Clone(p.selected)}
}

func (p *fakePlayer) recorded() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return strings.Join(p.calls, ",")
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newModel(t *testing.T, player Player) Model {
	t.Helper()
	m := New()
	t.Cleanup(m.calls.close)
	if player != nil {
		m, _ = update(t, m, playerReadyMsg{player: player})
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model, cmd
}

func samplePrompt(kind domain.QuestionKind) questionMsg {
	return questionMsg(domain.Prompt{
		Number: 1,
		Total:  2,
		ID:     "q1",
		Title:  "What is 2 + 2?",
		Kind:   kind,
		Options: []domain.Option{
			{ID: "o1", Caption: "3"},
			{ID: "o2", Caption: "4"},
		},
	})
}

func TestKeysDriveThePlayer(t *testing.T) {
	player := &fakePlayer{}
	m := newModel(t, player)
	m, _ = update(t, m, samplePrompt(domain.MultipleChoice))

	m, _ = update(t, m, keyPress('j'))
	m, _ = update(t, m, keyPress('x'))
	m, _ = update(t, m, specialKey(tea.KeyEnter))
	m.calls.wait()

	if got := player.recorded(); got != "select:o2,submit" {
		t.Fatalf("unexpected calls %s", got)
	}
	if m.cursor != 1 {
		t.Fatalf("expected cursor on second option, got %d", m.cursor)
	}
}

func TestEnterPicksHighlightedSingleAnswer(t *testing.T) {
	player := &fakePlayer{}
	m := newModel(t, player)
	m, _ = update(t, m, samplePrompt(domain.SingleChoice))

	m, _ = update(t, m, specialKey(tea.KeyEnter))
	m.calls.wait()

	if got := player.recorded(); got != "select:o1,submit" {
		t.Fatalf("unexpected calls %s", got)
	}
}

// A fast select then submit reaches the player in key order, and submit does not
// pick again while the selection message is still in flight.
func TestQuickKeysKeepOrder(t *testing.T) {
	player := &fakePlayer{delay: 20 * time.Millisecond}
	m := newModel(t, player)
	m, _ = update(t, m, samplePrompt(domain.SingleChoice))

	m, _ = update(t, m, keyPress('j'))
	m, _ = update(t, m, keyPress('x'))
	m, _ = update(t, m, specialKey(tea.KeyEnter))
	m.calls.wait()

	if got := player.recorded(); got != "select:o2,submit" {
		t.Fatalf("unexpected calls %s", got)
	}
	if sel := player.Snapshot().Selected; len(sel) != 1 || sel[0] != "o2" {
		t.Fatalf("expected o2 to stay selected, got %v", sel)
	}
}

func TestKeysIgnoredDuringFeedback(t *testing.T) {
	player := &fakePlayer{}
	m := newModel(t, player)
	m, _ = update(t, m, samplePrompt(domain.SingleChoice))
	m, _ = update(t, m, feedbackMsg(domain.Feedback{QuestionID: "q1"}))

	m, _ = update(t, m, keyPress('x'))
	m, _ = update(t, m, specialKey(tea.KeyEnter))
	m.calls.wait()

	if got := player.recorded(); got != "" {
		t.Fatalf("keys must be ignored while feedback is shown, got %s", got)
	}
}

func TestRestartOnlyWhenOffered(t *testing.T) {
	player := &fakePlayer{}
	m := newModel(t, player)

	m, _ = update(t, m, keyPress('r'))
	m.calls.wait()
	if got := player.recorded(); got != "" {
		t.Fatalf("restart must wait for the affordance, got %s", got)
	}

	m, _ = update(t, m, restartMsg{})
	m, _ = update(t, m, keyPress('r'))
	m.calls.wait()
	if got := player.recorded(); got != "start" {
		t.Fatalf("expected restart, got %s", got)
	}
}

func TestQuitKey(t *testing.T) {
	_, cmd := update(t, newModel(t, nil), keyPress('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestRenderShowsFeedbackMarkers(t *testing.T) {
	m, _ := update(t, newModel(t, nil), metaMsg{title: "Sample quiz", description: "Two questions"})
	m, _ = update(t, m, samplePrompt(domain.SingleChoice))
	m, _ = update(t, m, selectionMsg(domain.Selection{QuestionID: "q1", OptionIDs: []string{"o1"}}))
	m, _ = update(t, m, feedbackMsg(domain.Feedback{
		QuestionID: "q1",
		Markers: []domain.AnswerMarker{
			{OptionID: "o1", Mark: domain.MarkWrong},
			{OptionID: "o2", Mark: domain.MarkMissingCorrect},
		},
	}))

	out := m.render()
	for _, want := range []string{"Sample quiz", "1/2. What is 2 + 2?", "wrong", "missed", "Wrong answer"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in render:\n%s", want, out)
		}
	}
}

func TestRenderShowsError(t *testing.T) {
	m, _ := update(t, newModel(t, nil), errorMsg{err: errors.New("boom")})
	if !strings.Contains(m.render(), "Error: boom") {
		t.Fatalf("expected error in render")
	}
}

// The engine drives the model through programView end to end.
func TestEngineMessagesRenderResult(t *testing.T) {
	var queue []tea.Msg
	view := programView{send: func(msg tea.Msg) { queue = append(queue, msg) }}
	sched := &apptest.ManualScheduler{}
	engine := app.NewEngine(apptest.SampleContent(), view, app.WithScheduler(sched))

	m := newModel(t, nil)
	drain := func() {
		for len(queue) > 0 {
			msg := queue[0]
			queue = queue[1:]
			m, _ = update(t, m, msg)
		}
	}

	engine.StartQuiz()
	engine.SelectOption("o2")
	engine.SubmitAnswer()
	sched.FireAll()
	engine.SelectOption("o1")
	engine.SelectOption("o3")
	engine.SubmitAnswer()
	sched.FireAll()
	drain()

	if m.outcome == nil || m.outcome.Percentage != 100 {
		t.Fatalf("expected full marks, got %+v", m.outcome)
	}
	out := m.render()
	if !strings.Contains(out, "Well done") || !strings.Contains(out, "Score: 30/30 (100%)") {
		t.Fatalf("unexpected result render:\n%s", out)
	}
	if !m.canRestart {
		t.Fatalf("expected restart affordance")
	}
}
