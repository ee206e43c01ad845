package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-player/internal/app"
	"quiz-player/internal/app/apptest"
	"quiz-player/internal/domain"
)

func TestCachedSourceCaches(t *testing.T) {
	source := &countingSource{ContentSource: NewStaticSource(apptest.SampleContent())}
	cache := NewCachedSource(source, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := cache.LoadQuiz(context.Background()); err != nil {
			t.Fatalf("load quiz: %v", err)
		}
		if _, err := cache.LoadResultBands(context.Background()); err != nil {
			t.Fatalf("load bands: %v", err)
		}
	}
	if source.quizCalls != 1 || source.bandCalls != 1 {
		t.Fatalf("expected one load each, got quiz=%d bands=%d", source.quizCalls, source.bandCalls)
	}
}

func TestCachedSourceReloadsAfterExpiry(t *testing.T) {
	source := &countingSource{ContentSource: NewStaticSource(apptest.SampleContent())}
	cache := NewCachedSource(source, time.Minute)
	now := time.Now()
	cache.clock = func() time.Time { return now }

	if _, err := cache.LoadQuiz(context.Background()); err != nil {
		t.Fatalf("load quiz: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := cache.LoadQuiz(context.Background()); err != nil {
		t.Fatalf("load quiz: %v", err)
	}
	if source.quizCalls != 2 {
		t.Fatalf("expected reload after ttl, got %d calls", source.quizCalls)
	}
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	source := &countingSource{ContentSource: NewStaticSource(domain.Content{})}
	cache := NewCachedSource(source, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := cache.LoadResultBands(context.Background()); !errors.Is(err, domain.ErrResultsNotFound) {
			t.Fatalf("expected results not found, got %v", err)
		}
	}
	if source.bandCalls != 2 {
		t.Fatalf("expected failures to hit the source each time, got %d", source.bandCalls)
	}
}

type countingSource struct {
	app.ContentSource
	quizCalls int
	bandCalls int
}

func (s *countingSource) LoadQuiz(ctx context.Context) (domain.Quiz, error) {
	s.quizCalls++
	return s.ContentSource.LoadQuiz(ctx)
}

func (s *countingSource) LoadResultBands(ctx context.Context) ([]domain.ResultBand, error) {
	s.bandCalls++
	return s.ContentSource.LoadResultBands(ctx)
}
