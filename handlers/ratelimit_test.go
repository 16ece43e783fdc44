package handlers

import (
	"sync"
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	// A private limiter keeps the test independent of the global login limiter.
	limiter := &rateLimiter{
		attempts: make(map[string]*attemptData),
		blocked:  make(map[string]time.Time),
	}

	ip := "127.0.0.1"

	// 1. Initial state: Allowed
	if !limiter.Allow(ip) {
		t.Errorf("Expected IP to be allowed initially")
	}

	// 2. Record failures below the threshold
	for i := 0; i < maxAttempts-1; i++ {
		limiter.RecordFailure(ip)
	}
	if !limiter.Allow(ip) {
		t.Errorf("Expected IP to be allowed below the threshold")
	}

	// 3. Threshold failure blocks
	limiter.RecordFailure(ip)
	if limiter.Allow(ip) {
		t.Errorf("Expected IP to be blocked at the threshold")
	}

	// 4. Reset allows again
	limiter.Reset(ip)
	if !limiter.Allow(ip) {
		t.Errorf("Expected IP to be allowed after reset")
	}
}

func TestRateLimiterParallel(t *testing.T) {
	limiter := &rateLimiter{
		attempts: make(map[string]*attemptData),
		blocked:  make(map[string]time.Time),
	}
	ip := "10.0.0.1"

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter.RecordFailure(ip)
		}()
	}
	wg.Wait()

	if limiter.Allow(ip) {
		t.Errorf("Expected IP to be blocked after concurrent failures")
	}
}
