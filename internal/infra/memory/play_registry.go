package memory

import (
	"sync"

	"quiz-player/internal/app"
)

// PlayRegistry is an in-memory implementation of app.PlayRegistry.
type PlayRegistry struct {
	mu    sync.RWMutex
	plays map[string]*app.Engine
}

func NewPlayRegistry() *PlayRegistry {
	return &PlayRegistry{
		plays: make(map[string]*app.Engine),
	}
}

func (r *PlayRegistry) Register(playID string, engine *app.Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plays[playID] = engine
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
	delete(r.plays, playID)
}

func (r *PlayRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plays)
}
