package gleif

import (
	"sync"
	"time"
)

// Breaker tuning. The cooldown must exceed one full retry window so a
// probe never races the burst that tripped the breaker.
const (
	breakerThreshold = 5
	breakerCooldown  = 30 * time.Second
)

type breakerState uint8

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

// breaker trips after a run of consecutive failed lookups. While open it
// rejects outbound calls until the cooldown passes, then admits a single
// probe; the probe's outcome decides whether the breaker closes again.
type breaker struct {
	mu          sync.Mutex
	state       breakerState
	failures    int
	threshold   int
	cooldown    time.Duration
	lastFailure time.Time
}

func newBreaker() *breaker {
	return &breaker{threshold: breakerThreshold, cooldown: breakerCooldown}
}

// allow reports whether a lookup may go out to the registry.
func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == breakerOpen {
		if time.Since(b.lastFailure) > b.cooldown {
			b.state = breakerHalfOpen
			return true
		}
		return false
	}
	return true
}

func (b *breaker) success() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = breakerClosed
	b.failures = 0
}

func (b *breaker) failure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	b.lastFailure = time.Now()
	if b.failures >= b.threshold {
		b.state = breakerOpen
	}
}
