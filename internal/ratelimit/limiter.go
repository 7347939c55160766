package ratelimit

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config holds rate limiter configuration.
type Config struct {
	// RequestsPerSecond is the sustained per-client rate.
	RequestsPerSecond float64
	// Burst is the bucket size per client.
	Burst int
}

// DefaultConfig returns the default submission rate limit.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		Burst:             10,
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter applies per-client token buckets keyed by IP. Entries for idle
// clients are evicted in the background.
type Limiter struct {
	config  Config
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewLimiter creates a limiter and starts its eviction loop.
func NewLimiter(config Config) *Limiter {
	l := &Limiter{
		config:  config,
		clients: make(map[string]*clientLimiter),
	}
	go l.evictIdle()
	return l
}

// Allow reports whether the client identified by key may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	client, ok := l.clients[key]
	if !ok {
		client = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst),
		}
		l.clients[key] = client
	}
	client.lastSeen = time.Now()
	return client.limiter.Allow()
}

func (l *Limiter) evictIdle() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-30 * time.Minute)
		l.mu.Lock()
		before := len(l.clients)
		for key, client := range l.clients {
			if client.lastSeen.Before(cutoff) {
				delete(l.clients, key)
			}
		}
		evicted := before - len(l.clients)
		l.mu.Unlock()
		if evicted > 0 {
			slog.Debug("Evicted idle rate limiters", "count", evicted)
		}
	}
}
