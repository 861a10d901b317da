/* ratelimit.go
 * Contains a token bucket rate limiter keyed by viewer. It is shared by the web skip route and the bot commands so a
 * single viewer can't flood the watched store with writes
 */

package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const idleTimeout = 10 * time.Minute

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter hands out one limiter per key
type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	rate    rate.Limit
	burst   int
}

// NewKeyedLimiter creates a limiter allowing r events per second per key with the given burst
func NewKeyedLimiter(r rate.Limit, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		entries: make(map[string]*entry),
		rate:    r,
		burst:   burst,
	}
}

// Allow reports whether an event for key may happen now
func (kl *KeyedLimiter) Allow(key string) bool {
	return kl.limiter(key).Allow()
}

func (kl *KeyedLimiter) limiter(key string) *rate.Limiter {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	now := time.Now()
	if e, ok := kl.entries[key]; ok {
		e.lastSeen = now
		return e.limiter
	}
	l := rate.NewLimiter(kl.rate, kl.burst)
	kl.entries[key] = &entry{limiter: l, lastSeen: now}
	return l
}

// Prune drops limiters that haven't been used since before cutoff
func (kl *KeyedLimiter) Prune(cutoff time.Time) {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	for k, e := range kl.entries {
		if e.lastSeen.Before(cutoff) {
			delete(kl.entries, k)
		}
	}
}

// Len returns the number of tracked keys
func (kl *KeyedLimiter) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.entries)
}

// RunCleanup prunes idle limiters every interval until ctx is cancelled
func (kl *KeyedLimiter) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			kl.Prune(now.Add(-idleTimeout))
		}
	}
}
