package cli

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"quiz-player/internal/app"
	"quiz-player/internal/config"
	"quiz-player/internal/infra/httpsource"
	"quiz-player/internal/infra/memory"
	pgstore "quiz-player/internal/infra/postgres"
	rediscache "quiz-player/internal/infra/redis"
)

// backends holds the connections opened for a command.
type backends struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

func (b backends) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			log.Printf("close redis: %v", err)
		}
	}
}

func openBackends(ctx context.Context, cfg config.Config) (backends, error) {
	var b backends
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return b, err
		}
		b.pool = pool
	}
	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return b, nil
}

// contentSource picks the origin (Postgres when configured, otherwise the HTTP
// documents) and puts a Redis or in-process cache in front of it.
func contentSource(cfg config.Config, b backends) app.ContentSource {
	var origin app.ContentSource
	if b.pool != nil {
		origin = pgstore.NewContentLoader(b.pool, cfg.Content.QuizID)
	} else {
		client := &http.Client{Timeout: config.Duration(cfg.Content.Timeout, 10*time.Second)}
		origin = httpsource.NewSource(client, cfg.Content.QuizURL, cfg.Content.ResultsURL)
	}

	ttl := config.Duration(cfg.Content.TTL, 10*time.Minute)
	if b.redis != nil {
		return rediscache.NewContentCache(b.redis, origin, cfg.Content.QuizID, ttl)
	}
	return memory.NewCachedSource(origin, ttl)
}

func engineOptions(cfg config.Config) []app.Option {
	return []app.Option{
		app.WithFeedbackDelay(config.Duration(cfg.Quiz.FeedbackDelay, app.DefaultFeedbackDelay)),
	}
}
