package playback

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Gate lets one action through per interval. Time is supplied by the caller.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	limiter  *rate.Limiter
}

func NewGate(interval time.Duration) *Gate {
	return &Gate{
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}
}

// TryAcquire reports whether an action may run at now, and if so consumes the slot.
func (g *Gate) TryAcquire(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.limiter.AllowN(now, 1)
}

// Reset makes the next TryAcquire succeed.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.limiter = rate.NewLimiter(rate.Every(g.interval), 1)
}

// elapsed reports whether more than interval has passed since last. A zero last always passes.
func elapsed(last, now time.Time, interval time.Duration) bool {
	return last.IsZero() || now.Sub(last) > interval
}
