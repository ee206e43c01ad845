package app

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"quiz-player/internal/domain"
)

// ContentSource loads quiz content and result bands (HTTP, Postgres, caches, etc).
type ContentSource interface {
	LoadQuiz(ctx context.Context) (domain.Quiz, error)
	LoadResultBands(ctx context.Context) ([]domain.ResultBand, error)
}

// LoadContent fetches quiz and bands concurrently. It returns content only when both
// loads succeed and the result passes validation; a failed load yields *domain.LoadError
// and unplayable content yields *domain.ConfigurationError.
func LoadContent(ctx context.Context, source ContentSource) (domain.Content, error) {
	var (
		quiz  domain.Quiz
		bands []domain.ResultBand
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := source.LoadQuiz(gctx)
		if err != nil {
			return asLoadError("quiz", err)
		}
		quiz = q
		return nil
	})
	g.Go(func() error {
		b, err := source.LoadResultBands(gctx)
		if err != nil {
			return asLoadError("result bands", err)
		}
		bands = b
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Content{}, err
	}

	content := domain.Content{Quiz: quiz, Bands: bands}
	if err := domain.ValidateContent(content); err != nil {
		return domain.Content{}, err
	}
	return content, nil
}

// Bootstrap loads content, shows the quiz metadata and starts the first play. On
// failure the error is rendered and no engine is returned.
func Bootstrap(ctx context.Context, source ContentSource, view View, opts ...Option) (*Engine, error) {
	content, err := LoadContent(ctx, source)
	if err != nil {
		view.ShowError(err)
		return nil, err
	}

	engine := NewEngine(content, view, opts...)
	view.ShowMeta(content.Quiz.Title, content.Quiz.Description)
	engine.StartQuiz()
	return engine, nil
}

func asLoadError(resource string, err error) error {
	var loadErr *domain.LoadError
	if errors.As(err, &loadErr) {
		return err
	}
	return &domain.LoadError{Resource: resource, Err: err}
}
