package devlog

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// Limiter caps how many requests one client IP may make within a sliding
// window.
type Limiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	now    func() time.Time
	stop   chan struct{}
	once   sync.Once
}

// NewLimiter creates a Limiter that allows max requests per window. Stop
// ends its background sweep.
func NewLimiter(max int, window time.Duration) *Limiter {
	l := &Limiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	go l.sweep()
	return l
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			for ip := range l.hits {
				if kept := l.prune(ip); len(kept) == 0 {
					delete(l.hits, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

// prune drops hits older than the window. Callers hold mu.
func (l *Limiter) prune(ip string) []time.Time {
	cutoff := l.now().Add(-l.window)
	hits := l.hits[ip]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.hits[ip] = kept
	return kept
}

// Allow reports whether ip is under the limit and, if so, records the request.
func (l *Limiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.prune(ip)) >= l.max {
		return false
	}
	l.hits[ip] = append(l.hits[ip], l.now())
	return true
}

// Stop ends the background sweep. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Middleware rejects requests over the limit with 429.
func (l *Limiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !l.Allow(c.RealIP()) {
			return c.String(http.StatusTooManyRequests, "Too many requests")
		}
		return next(c)
	}
}
