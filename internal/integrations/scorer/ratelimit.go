package scorer

import (
	"sync"
	"time"
)

const (
	rateWindow            = 60 * time.Second
	defaultMaxPerMinute   = 30
	postWindowGracePeriod = time.Second
)

// limiter is a client-side cooperative throttle: at most max calls per
// rolling 60-second window. Before each call, timestamps older than the
// window are pruned from the log; if the log is full, the caller blocks
// until the oldest entry ages out. The mutex is held across the blocking
// sleep so the log is mutated atomically with respect to it.
type limiter struct {
	max    int
	window time.Duration

	mu     sync.Mutex
	stamps []time.Time

	// Injected for deterministic tests.
	now   func() time.Time
	sleep func(time.Duration)
}

func newLimiter(maxPerMinute int) *limiter {
	if maxPerMinute <= 0 {
		maxPerMinute = defaultMaxPerMinute
	}
	return &limiter{
		max:    maxPerMinute,
		window: rateWindow,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// acquire blocks until a call slot is available, then records the call.
func (l *limiter) acquire() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	kept := l.stamps[:0]
	for _, ts := range l.stamps {
		if now.Sub(ts) < l.window {
			kept = append(kept, ts)
		}
	}
	l.stamps = kept

	if len(l.stamps) >= l.max {
		wait := l.window - now.Sub(l.stamps[0]) + postWindowGracePeriod
		if wait > 0 {
			l.sleep(wait)
		}
	}

	l.stamps = append(l.stamps, l.now())
}
