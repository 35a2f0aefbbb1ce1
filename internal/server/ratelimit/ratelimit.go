// Package ratelimit provides token-bucket rate limiting for the public API.
package ratelimit

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds per-route-class limits expressed in requests per minute.
// Application submissions and auth endpoints get much tighter budgets than
// the read-heavy public surface.
type Config struct {
	Enabled         bool
	DefaultRPM      int
	SubmitRPM       int
	AuthRPM         int
	CleanupInterval time.Duration
}

// LoadConfig reads rate limit configuration from the environment, falling
// back to safe defaults.
func LoadConfig() Config {
	cfg := Config{
		Enabled:         true,
		DefaultRPM:      300,
		SubmitRPM:       10,
		AuthRPM:         20,
		CleanupInterval: 5 * time.Minute,
	}
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		cfg.Enabled = v != "false" && v != "0"
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_DEFAULT_RPM")); err == nil && v > 0 {
		cfg.DefaultRPM = v
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_SUBMIT_RPM")); err == nil && v > 0 {
		cfg.SubmitRPM = v
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_AUTH_RPM")); err == nil && v > 0 {
		cfg.AuthRPM = v
	}
	return cfg
}

// Info describes the limit state returned alongside each decision, for the
// standard X-RateLimit response headers.
type Info struct {
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// bucket is a token bucket refilling at a steady per-second rate.
type bucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(float64(b.capacity), b.tokens+elapsed*b.refillRate)
	b.lastRefill = now
}

// Limiter applies per-client, per-route-class token buckets.
type Limiter struct {
	cfg     Config
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
}

// NewLimiter creates a limiter and starts its stale-bucket cleanup loop.
func NewLimiter(cfg Config) *Limiter {
	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// classRPM returns the route class and its budget for a request.
func (l *Limiter) classRPM(path, method string) (string, int) {
	switch {
	case method == "POST" && path == "/api/applications":
		return "submit", l.cfg.SubmitRPM
	case method == "POST" && (path == "/api/auth/register" || path == "/api/auth/login"):
		return "auth", l.cfg.AuthRPM
	default:
		return "default", l.cfg.DefaultRPM
	}
}

// Allow decides whether the client may proceed and reports the limit state.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.cfg.Enabled {
		return true, Info{}
	}

	class, rpm := l.classRPM(path, method)
	key := fmt.Sprintf("%s|%s", clientID, class)
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{
			capacity:   rpm,
			refillRate: float64(rpm) / 60.0,
			tokens:     float64(rpm),
			lastRefill: now,
		}
		l.buckets[key] = b
	}
	b.lastSeen = now
	b.refill(now)

	info := Info{Limit: rpm}
	allowed := b.tokens >= 1.0
	if allowed {
		b.tokens -= 1.0
	} else {
		// Seconds until one token is available.
		wait := (1.0 - b.tokens) / b.refillRate
		info.RetryAfter = time.Duration(wait * float64(time.Second))
	}
	info.Remaining = int(b.tokens)
	refillAll := (float64(b.capacity) - b.tokens) / b.refillRate
	info.ResetTime = now.Add(time.Duration(refillAll * float64(time.Second)))

	return allowed, info
}

// Stop terminates the cleanup loop.
func (l *Limiter) Stop() {
	close(l.stop)
}

func (l *Limiter) cleanupLoop() {
	interval := l.cfg.CleanupInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for key, b := range l.buckets {
				if now.Sub(b.lastSeen) > 2*interval {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
