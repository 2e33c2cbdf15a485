package ratelimit

import (
	"sync"
	"time"
)

// Limiter defines the interface for request rate limiting
type Limiter interface {
	// Wait blocks until the rate limit allows another request
	Wait()
	// Touch records that a request just completed
	Touch()
	// Reset clears the rate limiter state
	Reset()
}

// Interval enforces a minimum wall-clock gap between consecutive
// requests. The gap is measured from the moment the previous request
// returned (Touch), not from when it was started, so N requests span at
// least (N-1) times the configured interval.
type Interval struct {
	minGap time.Duration
	last   time.Time
	mu     sync.Mutex
}

// NewInterval creates a minimum-gap rate limiter
func NewInterval(minGap time.Duration) *Interval {
	return &Interval{minGap: minGap}
}

// Wait blocks until at least the configured gap has passed since the
// last Touch. The first call never blocks.
func (i *Interval) Wait() {
	i.mu.Lock()
	var remaining time.Duration
	if !i.last.IsZero() {
		remaining = i.minGap - time.Since(i.last)
	}
	i.mu.Unlock()

	if remaining > 0 {
		time.Sleep(remaining)
	}
}

// Touch stamps the current time as the start of the next gap. Call it
// when a request returns, regardless of its outcome, so the throttle
// applies uniformly.
func (i *Interval) Touch() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.last = time.Now()
}

// Reset clears the limiter so the next Wait does not block
func (i *Interval) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.last = time.Time{}
}
