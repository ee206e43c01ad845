package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"quiz-player/internal/app"
	"quiz-player/internal/app/apptest"
	"quiz-player/internal/domain"
)

func TestPlayRegistrySetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	registry := NewPlayRegistry(newClient(mr), time.Minute)
	engine := app.NewEngine(apptest.SampleContent(), &apptest.RecordingView{})

	registry.Register("play-1", engine)
	if !mr.Exists("quiz:play:play-1") {
		t.Fatalf("expected redis key to be set")
	}
	if registry.Count() != 1 {
		t.Fatalf("expected one play, got %d", registry.Count())
	}

	mr.FastForward(30 * time.Second)
	if err := registry.Touch(context.Background(), "play-1"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if ttl := mr.TTL("quiz:play:play-1"); ttl != time.Minute {
		t.Fatalf("expected ttl refreshed to 1m, got %s", ttl)
	}

	registry.Remove("play-1")
	if mr.Exists("quiz:play:play-1") {
		t.Fatalf("expected redis key to be removed")
	}
	if err := registry.Touch(context.Background(), "play-1"); !errors.Is(err, domain.ErrPlayNotFound) {
		t.Fatalf("expected play not found, got %v", err)
	}
}
