package app_test

import (
	"context"
	"errors"
	"testing"

	"quiz-player/internal/app"
	"quiz-player/internal/app/apptest"
	"quiz-player/internal/domain"
	"quiz-player/internal/infra/memory"
)

func TestBootstrapStartsQuiz(t *testing.T) {
	view := &apptest.RecordingView{}
	engine, err := app.Bootstrap(context.Background(), memory.NewStaticSource(apptest.SampleContent()), view,
		app.WithScheduler(&apptest.ManualScheduler{}))
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if engine.Snapshot().Phase != app.PhasePresenting {
		t.Fatalf("expected first question to be presented")
	}
	kinds := view.Kinds()
	if len(kinds) != 3 || kinds[0] != "meta" || kinds[1] != "clearResult" || kinds[2] != "question" {
		t.Fatalf("unexpected render calls %v", kinds)
	}
}

func TestBootstrapFailsWhenOneResourceFails(t *testing.T) {
	content := apptest.SampleContent()
	content.Bands = nil
	view := &apptest.RecordingView{}

	engine, err := app.Bootstrap(context.Background(), memory.NewStaticSource(content), view)
	if engine != nil {
		t.Fatalf("expected no engine on partial load")
	}
	var loadErr *domain.LoadError
	if !errors.As(err, &loadErr) || loadErr.Resource != "result bands" {
		t.Fatalf("expected load error for result bands, got %v", err)
	}
	if !errors.Is(err, domain.ErrResultsNotFound) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if kinds := view.Kinds(); len(kinds) != 1 || kinds[0] != "error" {
		t.Fatalf("expected only an error render, got %v", kinds)
	}
}

func TestLoadContentRejectsInvalidContent(t *testing.T) {
	content := apptest.SampleContent()
	content.Quiz.Questions[0].CorrectAnswer = []string{"missing"}

	_, err := app.LoadContent(context.Background(), memory.NewStaticSource(content))
	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadContentKeepsExistingLoadError(t *testing.T) {
	inner := &domain.LoadError{Resource: "https://example.test/quiz.json", Err: errors.New("status 500")}
	source := failingSource{quizErr: inner}

	_, err := app.LoadContent(context.Background(), source)
	var loadErr *domain.LoadError
	if !errors.As(err, &loadErr) || loadErr != inner {
		t.Fatalf("expected the source load error, got %v", err)
	}
}

type failingSource struct {
	quizErr error
}

func (s failingSource) LoadQuiz(context.Context) (domain.Quiz, error) {
	return domain.Quiz{}, s.quizErr
}

func (s failingSource) LoadResultBands(context.Context) ([]domain.ResultBand, error) {
	return apptest.SampleContent().Bands, nil
}
