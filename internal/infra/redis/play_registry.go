package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"quiz-player/internal/app"
	"quiz-player/internal/domain"
)

// PlayRegistry is a Redis-aware implementation of app.PlayRegistry.
// Notes:
//   - Engines stay in a local map; they hold timers and a live view and cannot be shared.
//   - Redis carries a liveness marker per play so operators can count plays across
//     instances (SCAN quiz:play:*).
type PlayRegistry struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	plays  map[string]*app.Engine
}

func NewPlayRegistry(client *redis.Client, ttl time.Duration) *PlayRegistry {
	return &PlayRegistry{
		client: client,
		ttl:    ttl,
		plays:  make(map[string]*app.Engine),
	}
}

func (r *PlayRegistry) Register(playID string, engine *app.Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plays[playID] = engine
	// best-effort liveness marker
	_ = r.client.Set(context.Background(), r.key(playID), "1", r.ttl).Err()
}

func (r *PlayRegistry) Get(playID string) (*app.Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	engine, ok := r.plays[playID]
	return engine, ok
}

func (r *PlayRegistry) Remove(playID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plays[playID]; !ok {
		return
	}
	delete(r.plays, playID)
	_ = r.client.Del(context.Background(), r.key(playID)).Err()
}

func (r *PlayRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plays)
}

// Touch refreshes the liveness marker of an active play.
func (r *PlayRegistry) Touch(ctx context.Context, playID string) error {
	r.mu.RLock()
	_, ok := r.plays[playID]
	r.mu.RUnlock()
	if !ok {
		return domain.ErrPlayNotFound
	}
	return r.client.Expire(ctx, r.key(playID), r.ttl).Err()
}

func (r *PlayRegistry) key(playID string) string {
	return "quiz:play:" + playID
}
