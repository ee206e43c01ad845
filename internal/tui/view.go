package tui

import (
	tea "charm.land/bubbletea/v2"

	"quiz-player/internal/domain"
)

type (
	metaMsg struct {
		title       string
		description string
	}
	questionMsg        domain.Prompt
	selectionMsg       domain.Selection
	feedbackMsg        domain.Feedback
	feedbackClearedMsg struct{}
	scoreMsg           int
	resultMsg          domain.Outcome
	resultClearedMsg   struct{}
	questionClearedMsg struct{}
	restartMsg         struct{}
	errorMsg           struct{ err error }
	playerReadyMsg     struct{ player Player }
)

// programView forwards engine output into the bubbletea event loop. The engine calls
// it while holding its lock, so Update must never call the engine synchronously.
type programView struct {
	send func(tea.Msg)
}

func (v programView) ShowMeta(title, description string) {
	v.send(metaMsg{title: title, description: description})
}
func (v programView) ShowQuestion(p domain.Prompt)         { v.send(questionMsg(p)) }
func (v programView) ShowSelection(s domain.Selection)     { v.send(selectionMsg(s)) }
func (v programView) ShowAnswerFeedback(f domain.Feedback) { v.send(feedbackMsg(f)) }
func (v programView) ClearFeedback()                       { v.send(feedbackClearedMsg{}) }
func (v programView) ShowScore(score int)                  { v.send(scoreMsg(score)) }
func (v programView) ShowResult(o domain.Outcome)          { v.send(resultMsg(o)) }
func (v programView) ClearResult()                         { v.send(resultClearedMsg{}) }
func (v programView) ClearQuestionArea()                   { v.send(questionClearedMsg{}) }
func (v programView) ShowRestartAffordance()               { v.send(restartMsg{}) }
func (v programView) ShowError(err error)                  { v.send(errorMsg{err: err}) }
