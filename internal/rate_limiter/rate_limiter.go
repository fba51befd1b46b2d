package rate_limiter

import (
	"sync"
	"time"
)

// RateLimiter caps the number of requests per client within a sliding
// window. Used on the login endpoint.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for client, times := range rl.requests {
			valid := rl.prune(times)
			if len(valid) == 0 {
				delete(rl.requests, client)
			} else {
				rl.requests[client] = valid
			}
		}
		rl.mu.Unlock()
	}
}

// prune drops timestamps that fell out of the window.
func (rl *RateLimiter) prune(times []time.Time) []time.Time {
	windowStart := time.Now().Add(-rl.window)
	var valid []time.Time
	for _, t := range times {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	return valid
}

func (rl *RateLimiter) IsAllowed(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := rl.prune(rl.requests[client])
	if len(valid) >= rl.limit {
		rl.requests[client] = valid
		return false
	}

	rl.requests[client] = append(valid, time.Now())
	return true
}

func (rl *RateLimiter) GetRemainingRequests(client string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return rl.limit - len(rl.prune(rl.requests[client]))
}
