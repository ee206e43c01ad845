// Package tui plays a quiz in the terminal with bubbletea.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	tea "charm.land/bubbletea/v2"

	"quiz-player/internal/app"
	"quiz-player/internal/domain"
)

// Player is the part of the engine the terminal drives.
type Player interface {
	SelectOption(optionID string) (domain.Selection, bool)
	SubmitAnswer() (domain.Feedback, error)
	StartQuiz()
	Snapshot() app.Snapshot
}

// callQueue runs player calls one at a time in the order Update queued them. push
// never blocks.
type callQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	active  sync.WaitGroup
	closed  bool
}

func newCallQueue() *callQueue {
	q := &callQueue{}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

func (q *callQueue) push(f func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.active.Add(1)
	q.pending = append(q.pending, f)
	q.cond.Signal()
}

func (q *callQueue) run() {
	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		f := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		f()
		q.active.Done()
	}
}

// wait blocks until every queued call has run.
func (q *callQueue) wait() {
	q.active.Wait()
}

func (q *callQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// Model is the root bubbletea model.
type Model struct {
	player Player
	calls  *callQueue

	title       string
	description string

	prompt     *domain.Prompt
	cursor     int
	selected   []string
	feedback   *domain.Feedback
	score      int
	outcome    *domain.Outcome
	err        error
	canRestart bool
}

// New returns an empty model. Content arrives as messages from the engine.
func New() Model {
	return Model{calls: newCallQueue()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case playerReadyMsg:
		m.player = msg.player
	case metaMsg:
		m.title, m.description = msg.title, msg.description
	case questionMsg:
		p := domain.Prompt(msg)
		m.prompt = &p
		m.cursor = 0
		m.selected = nil
		m.feedback = nil
		m.err = nil
		m.canRestart = false
	case selectionMsg:
		m.selected = slices.Clone(msg.OptionIDs)
	case feedbackMsg:
		fb := domain.Feedback(msg)
		m.feedback = &fb
	case feedbackClearedMsg:
		m.feedback = nil
	case scoreMsg:
		m.score = int(msg)
	case resultMsg:
		out := domain.Outcome(msg)
		m.outcome = &out
	case resultClearedMsg:
		m.outcome = nil
		m.err = nil
		m.score = 0
		m.canRestart = false
	case questionClearedMsg:
		m.prompt = nil
		m.selected = nil
	case restartMsg:
		m.canRestart = true
	case errorMsg:
		m.err = msg.err
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.prompt != nil && m.cursor < len(m.prompt.Options)-1 {
			m.cursor++
		}
		return m, nil
	case "space", " ", "x":
		if optionID, ok := m.cursorOption(); ok {
			m.dispatch(func(p Player) { p.SelectOption(optionID) })
		}
	case "enter":
		if m.prompt == nil || m.feedback != nil {
			return m, nil
		}
		// single answers submit the highlighted option when nothing is picked yet
		optionID, ok := m.cursorOption()
		pickOnEmpty := ok && !m.prompt.Kind.AllowsMany()
		m.dispatch(func(p Player) {
			if pickOnEmpty && len(p.Snapshot().Selected) == 0 {
				p.SelectOption(optionID)
			}
			p.SubmitAnswer()
		})
	case "r":
		if m.canRestart {
			m.dispatch(func(p Player) { p.StartQuiz() })
		}
	}
	return m, nil
}

func (m Model) cursorOption() (string, bool) {
	if m.prompt == nil || m.feedback != nil || m.cursor >= len(m.prompt.Options) {
		return "", false
	}
	return m.prompt.Options[m.cursor].ID, true
}

// dispatch queues f for the player. The engine answers through programView, so f
// must not run on the event loop.
func (m Model) dispatch(f func(Player)) {
	p := m.player
	if p == nil || m.calls == nil {
		return
	}
	m.calls.push(func() { f(p) })
}

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title) + "\n")
	}
	if m.description != "" {
		b.WriteString(subtitleStyle.Render(m.description) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(wrongStyle.Render("Error: "+m.err.Error()) + "\n")
	case m.outcome != nil:
		b.WriteString(m.renderOutcome() + "\n")
	case m.prompt != nil:
		b.WriteString(m.renderPrompt())
		b.WriteString("\n" + scoreStyle.Render(fmt.Sprintf("Score: %d", m.score)) + "\n")
	default:
		b.WriteString(hintStyle.Render("Loading quiz...") + "\n")
	}

	b.WriteString("\n" + hintStyle.Render(m.hints()))
	return b.String()
}

func (m Model) renderPrompt() string {
	var b strings.Builder
	p := m.prompt
	b.WriteString(questionStyle.Render(fmt.Sprintf("%d/%d. %s", p.Number, p.Total, p.Title)) + "\n")
	if p.ImageRef != "" {
		b.WriteString(subtitleStyle.Render(p.ImageRef) + "\n")
	}
	b.WriteString("\n")

	marks := map[string]domain.Mark{}
	if m.feedback != nil {
		for _, mk := range m.feedback.Markers {
			marks[mk.OptionID] = mk.Mark
		}
	}

	for i, opt := range p.Options {
		prefix := "  "
		if i == m.cursor && m.feedback == nil {
			prefix = cursorStyle.Render("> ")
		}
		box := "( )"
		checked := slices.Contains(m.selected, opt.ID)
		switch {
		case p.Kind.AllowsMany() && checked:
			box = "[x]"
		case p.Kind.AllowsMany():
			box = "[ ]"
		case checked:
			box = "(*)"
		}
		line := fmt.Sprintf("%s %s", box, opt.Caption)

		switch marks[opt.ID] {
		case domain.MarkCorrectSelected:
			line = correctStyle.Render(line + "  correct")
		case domain.MarkMissingCorrect:
			line = correctStyle.Render(line + "  missed")
		case domain.MarkWrong:
			line = wrongStyle.Render(line + "  wrong")
		default:
			line = optionStyle.Render(line)
		}
		b.WriteString(prefix + line + "\n")
	}

	if m.feedback != nil {
		verdict := wrongStyle.Render("Wrong answer")
		if m.feedback.Correct {
			verdict = correctStyle.Render(fmt.Sprintf("Correct! +%d", m.feedback.Awarded))
		}
		b.WriteString("\n" + verdict + "\n")
	}
	return b.String()
}

func (m Model) renderOutcome() string {
	o := m.outcome
	lines := []string{
		titleStyle.Render(o.Band.Title),
		"",
		optionStyle.Render(o.Band.Message),
		"",
		scoreStyle.Render(fmt.Sprintf("Score: %d/%d (%d%%)", o.Score, o.MaxPoints, o.Percentage)),
	}
	if o.Band.ImageRef != "" {
		lines = append(lines, subtitleStyle.Render(o.Band.ImageRef))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) hints() string {
	switch {
	case m.canRestart:
		return "r restart • q quit"
	case m.prompt != nil && m.feedback == nil:
		return "↑/↓ move • space select • enter submit • q quit"
	}
	return "q quit"
}

// Run plays the quiz from source until the user quits.
func Run(ctx context.Context, source app.ContentSource, opts ...app.Option) error {
	model := New()
	defer model.calls.close()
	p := tea.NewProgram(model)
	view := programView{send: p.Send}

	ready := make(chan *app.Engine, 1)
	go func() {
		engine, err := app.Bootstrap(ctx, source, view, opts...)
		if err != nil {
			ready <- nil
			return
		}
		ready <- engine
		p.Send(playerReadyMsg{player: engine})
	}()

	_, err := p.Run()
	if engine := <-ready; engine != nil {
		engine.Close()
	}
	return err
}
