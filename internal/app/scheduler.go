package app

import "time"

// Timer is a pending deferred call.
type Timer interface {
	Stop() bool
}

// Scheduler defers work, abstracting time.AfterFunc for deterministic tests.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler runs deferred calls on the runtime timer.
var SystemScheduler Scheduler = realScheduler{}
