package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalFirstWaitDoesNotBlock(t *testing.T) {
	limiter := NewInterval(time.Hour)

	start := time.Now()
	limiter.Wait()
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestIntervalEnforcesFloor(t *testing.T) {
	const gap = 30 * time.Millisecond
	const requests = 4

	limiter := NewInterval(gap)

	start := time.Now()
	for i := 0; i < requests; i++ {
		limiter.Wait()
		limiter.Touch()
	}
	elapsed := time.Since(start)

	// N requests must span at least (N-1) gaps
	assert.GreaterOrEqual(t, elapsed, gap*(requests-1))
}

func TestIntervalGapMeasuredFromTouch(t *testing.T) {
	const gap = 50 * time.Millisecond

	limiter := NewInterval(gap)
	limiter.Touch()
	time.Sleep(gap)

	// The full gap already passed, so Wait must return promptly
	start := time.Now()
	limiter.Wait()
	assert.Less(t, time.Since(start), gap)
}

func TestIntervalReset(t *testing.T) {
	limiter := NewInterval(time.Hour)
	limiter.Touch()
	limiter.Reset()

	start := time.Now()
	limiter.Wait()
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
