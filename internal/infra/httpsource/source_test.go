package httpsource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quiz-player/internal/app"
	"quiz-player/internal/domain"
)

const quizJSON = `{
  "title": "Remote quiz",
  "description": "served over http",
  "questions": [
    {"q_id": 1, "title": "One?", "question_type": "truefalse", "correct_answer": true, "points": 10}
  ]
}`

const resultsJSON = `{"results": [{"r_id": 1, "minpoints": 0, "maxpoints": 100, "title": "Done", "message": "ok"}]}`

func newServer(t *testing.T, quizStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/quiz.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(quizStatus)
		w.Write([]byte(quizJSON))
	})
	mux.HandleFunc("/result.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(resultsJSON))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestSourceLoadsBothDocuments(t *testing.T) {
	server := newServer(t, http.StatusOK)
	source := NewSource(server.Client(), server.URL+"/quiz.json", server.URL+"/result.json")

	content, err := app.LoadContent(context.Background(), source)
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	if content.Quiz.Title != "Remote quiz" || len(content.Quiz.Questions) != 1 || len(content.Bands) != 1 {
		t.Fatalf("unexpected content %+v", content)
	}
	if content.Quiz.Questions[0].Kind != domain.BooleanChoice {
		t.Fatalf("expected boolean question, got %s", content.Quiz.Questions[0].Kind)
	}
}

func TestSourceReportsBadStatusAsLoadError(t *testing.T) {
	server := newServer(t, http.StatusInternalServerError)
	source := NewSource(server.Client(), server.URL+"/quiz.json", server.URL+"/result.json")

	_, err := source.LoadQuiz(context.Background())
	var loadErr *domain.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unexpected status 500") {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestSourceReportsMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": "nope"}`))
	}))
	defer server.Close()
	source := NewSource(server.Client(), server.URL, server.URL)

	_, err := source.LoadResultBands(context.Background())
	var loadErr *domain.LoadError
	if !errors.As(err, &loadErr) || loadErr.Resource != server.URL {
		t.Fatalf("expected load error for %s, got %v", server.URL, err)
	}
}
