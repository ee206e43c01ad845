package app

import "quiz-player/internal/domain"

// View renders engine output and is the source of player input. Render calls are made
// while the engine holds its lock, so implementations must not call back into the
// engine synchronously.
type View interface {
	ShowMeta(title, description string)
	ShowQuestion(prompt domain.Prompt)
	ShowSelection(selection domain.Selection)
	ShowAnswerFeedback(feedback domain.Feedback)
	ClearFeedback()
	ShowScore(score int)
	ShowResult(outcome domain.Outcome)
	ClearResult()
	ClearQuestionArea()
	ShowRestartAffordance()
	ShowError(err error)
}
