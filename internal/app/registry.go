package app

// PlayRegistry abstracts where live plays are tracked (in-memory, Redis, etc).
type PlayRegistry interface {
	Register(playID string, engine *Engine)
	Get(playID string) (*Engine, bool)
	Remove(playID string)
	Count() int
}
