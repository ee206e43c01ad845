package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"quiz-player/internal/app"
	"quiz-player/internal/domain"
)

// Outbound message types, one per View call.
const (
	msgPlay            = "play"
	msgMeta            = "meta"
	msgQuestion        = "question"
	msgSelection       = "selection"
	msgFeedback        = "feedback"
	msgFeedbackCleared = "feedbackCleared"
	msgScore           = "score"
	msgResult          = "result"
	msgResultCleared   = "resultCleared"
	msgQuestionCleared = "questionCleared"
	msgRestart         = "restartAvailable"
	msgError           = "error"
)

const (
	writeWait       = 10 * time.Second
	maxMessageBytes = 4096
	sendBuffer      = 32
)

type WSHandler struct {
	source   app.ContentSource
	plays    app.PlayRegistry
	options  []app.Option
	upgrader websocket.Upgrader
}

func NewWSHandler(source app.ContentSource, plays app.PlayRegistry, opts ...app.Option) *WSHandler {
	return &WSHandler{
		source:  source,
		plays:   plays,
		options: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	OptionID string `json:"optionId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type metaPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type scorePayload struct {
	Score int `json:"score"`
}

type playPayload struct {
	PlayID string `json:"playId"`
}

// wsView renders engine output as JSON messages on a websocket.
type wsView struct {
	send chan outboundMessage[any]
	done chan struct{}
}

func newWSView() *wsView {
	return &wsView{
		send: make(chan outboundMessage[any], sendBuffer),
		done: make(chan struct{}),
	}
}

func (v *wsView) emit(typ string, payload any) {
	select {
	case v.send <- outboundMessage[any]{Type: typ, Payload: payload}:
	case <-v.done:
	}
}

func (v *wsView) ShowMeta(title, description string) {
	v.emit(msgMeta, metaPayload{Title: title, Description: description})
}
func (v *wsView) ShowQuestion(p domain.Prompt)         { v.emit(msgQuestion, p) }
func (v *wsView) ShowSelection(s domain.Selection)     { v.emit(msgSelection, s) }
func (v *wsView) ShowAnswerFeedback(f domain.Feedback) { v.emit(msgFeedback, f) }
func (v *wsView) ClearFeedback()                       { v.emit(msgFeedbackCleared, struct{}{}) }
func (v *wsView) ShowScore(score int)                  { v.emit(msgScore, scorePayload{Score: score}) }
func (v *wsView) ShowResult(o domain.Outcome)          { v.emit(msgResult, o) }
func (v *wsView) ClearResult()                         { v.emit(msgResultCleared, struct{}{}) }
func (v *wsView) ClearQuestionArea()                   { v.emit(msgQuestionCleared, struct{}{}) }
func (v *wsView) ShowRestartAffordance()               { v.emit(msgRestart, struct{}{}) }
func (v *wsView) ShowError(err error)                  { v.emit(msgError, toErrorPayload(err)) }

// flush writes what was queued before shutdown, e.g. a load error.
func (v *wsView) flush(conn *websocket.Conn) {
	for {
		select {
		case msg := <-v.send:
			if err := writeMessage(conn, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

// writeMessage fails after writeWait when the client stops reading.
func writeMessage(conn *websocket.Conn, msg outboundMessage[any]) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func (v *wsView) discardUntilDone() {
	for {
		select {
		case <-v.send:
		case <-v.done:
			return
		}
	}
}

func toErrorPayload(err error) errorPayload {
	var (
		loadErr *domain.LoadError
		cfgErr  *domain.ConfigurationError
	)
	switch {
	case errors.As(err, &loadErr):
		return errorPayload{Kind: "load", Message: err.Error()}
	case errors.As(err, &cfgErr):
		return errorPayload{Kind: "configuration", Message: err.Error()}
	}
	return errorPayload{Kind: "request", Message: err.Error()}
}

type toucher interface {
	Touch(ctx context.Context, playID string) error
}

// ServeWS upgrades HTTP requests to websockets and runs one quiz play per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageBytes)

	view := newWSView()
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for {
			select {
			case msg := <-view.send:
				if err := writeMessage(conn, msg); err != nil {
					log.Printf("ws write error: %v", err)
					// unblock the reader so the handler can unwind
					conn.Close()
					view.discardUntilDone()
					return
				}
			case <-view.done:
				view.flush(conn)
				return
			}
		}
	}()
	defer func() {
		close(view.done)
		<-writerDone
	}()

	playID := uuid.NewString()
	view.emit(msgPlay, playPayload{PlayID: playID})

	engine, err := app.Bootstrap(r.Context(), h.source, view, h.options...)
	if err != nil {
		log.Printf("play %s: bootstrap failed: %v", playID, err)
		return
	}
	defer engine.Close()

	h.plays.Register(playID, engine)
	defer h.plays.Remove(playID)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if t, ok := h.plays.(toucher); ok {
			_ = t.Touch(r.Context(), playID)
		}

		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.OptionID == "" {
				view.emit(msgError, errorPayload{Kind: "request", Message: "invalid select payload"})
				continue
			}
			// unknown options are ignored by the engine
			engine.SelectOption(payload.OptionID)
		case "submit":
			if _, err := engine.SubmitAnswer(); err != nil && !errors.Is(err, domain.ErrNotPresenting) {
				view.ShowError(err)
			}
		case "restart":
			engine.StartQuiz()
		default:
			view.emit(msgError, errorPayload{Kind: "request", Message: "unsupported message type"})
		}
	}
}

// quizInfo is the public summary served by ServeQuiz.
type quizInfo struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QuestionCount int    `json:"questionCount"`
	MaxPoints     int    `json:"maxPoints"`
}

// ServeQuiz returns quiz metadata without answers.
func (h *WSHandler) ServeQuiz(w http.ResponseWriter, r *http.Request) {
	content, err := app.LoadContent(r.Context(), h.source)
	if err != nil {
		status := http.StatusBadGateway
		var cfgErr *domain.ConfigurationError
		if errors.As(err, &cfgErr) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, toErrorPayload(err))
		return
	}
	writeJSON(w, http.StatusOK, quizInfo{
		ID:            content.Quiz.ID,
		Title:         content.Quiz.Title,
		Description:   content.Quiz.Description,
		QuestionCount: len(content.Quiz.Questions),
		MaxPoints:     content.Quiz.MaxPoints(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
