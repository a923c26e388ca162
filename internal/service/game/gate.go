package game

import (
	"context"
	"sync"
	"time"
)

// MemoryGate is an InputGate for a single process. A pause of zero or less
// leaves the gate always open.
type MemoryGate struct {
	pause time.Duration
	now   func() time.Time

	mu     sync.Mutex
	openAt map[string]time.Time
}

func NewMemoryGate(pause time.Duration) *MemoryGate {
	return &MemoryGate{
		pause:  pause,
		now:    time.Now,
		openAt: make(map[string]time.Time),
	}
}

func (g *MemoryGate) Acquire(_ context.Context, key string) (bool, error) {
	if g.pause <= 0 {
		return true, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, t := range g.openAt {
		if !now.Before(t) {
			delete(g.openAt, k)
		}
	}

	if _, closed := g.openAt[key]; closed {
		return false, nil
	}
	g.openAt[key] = now.Add(g.pause)
	return true, nil
}
