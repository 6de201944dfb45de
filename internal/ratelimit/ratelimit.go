// Package ratelimit bounds request rates per (client identity, endpoint
// class) pair with a fixed-window counter.
//
// This is advisory throttling, not a security boundary: the identity is
// derived from forwarded headers and a restart resets every counter.
package ratelimit

import (
	"sync"
	"time"
)

// Policy is a fixed window and the number of requests allowed inside it.
type Policy struct {
	Window time.Duration
	Max    int
}

// Endpoint-class policies.
var (
	Auth     = Policy{Window: 15 * time.Minute, Max: 5}
	Lead     = Policy{Window: 5 * time.Minute, Max: 3}
	Tracking = Policy{Window: time.Minute, Max: 30}
	API      = Policy{Window: time.Minute, Max: 100}
)

// Result reports a single Check outcome.
type Result struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter is a process-local fixed-window counter. Entries are created on
// first sight of a key and swept once their window has elapsed.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	sweepEvery time.Duration
	done       chan struct{}
	stopOnce   sync.Once

	now func() time.Time // swappable in tests
}

const defaultSweepInterval = time.Minute

// New creates a Limiter and starts its background sweep.
func New() *Limiter {
	l := &Limiter{
		entries:    make(map[string]*entry),
		sweepEvery: defaultSweepInterval,
		done:       make(chan struct{}),
		now:        time.Now,
	}
	go l.sweepLoop()
	return l
}

// Check counts one request against identifier under policy p.
// The first request in a window creates a fresh entry; once the counter
// reaches p.Max further requests are refused until the window resets.
func (l *Limiter) Check(identifier string, p Policy) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identifier]
	if !ok || !now.Before(e.resetAt) {
		l.entries[identifier] = &entry{count: 1, resetAt: now.Add(p.Window)}
		return Result{Allowed: true, Remaining: p.Max - 1, ResetIn: p.Window}
	}

	if e.count >= p.Max {
		return Result{Allowed: false, Remaining: 0, ResetIn: e.resetAt.Sub(now)}
	}

	e.count++
	return Result{Allowed: true, Remaining: p.Max - e.count, ResetIn: e.resetAt.Sub(now)}
}

// Stop halts the background sweep. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(l.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.done:
			return
		}
	}
}

// sweep drops entries whose window has already elapsed, bounding memory.
func (l *Limiter) sweep() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, e := range l.entries {
		if !now.Before(e.resetAt) {
			delete(l.entries, key)
		}
	}
}
