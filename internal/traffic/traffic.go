// Package traffic keeps a sliding window of lookup outcomes for the health endpoint.
package traffic

import (
	"sync"
	"time"
)

// DefaultHorizon bounds how long outcome timestamps are retained.
const DefaultHorizon = 30 * time.Minute

// Tracker maintains sliding windows of lookup outcome timestamps. The zero value
// is ready to use and retains DefaultHorizon of history.
type Tracker struct {
	mu            sync.Mutex
	horizon       time.Duration
	foundTimes    []time.Time
	notFoundTimes []time.Time
}

// NewTracker returns a Tracker retaining horizon of history. Non-positive horizon uses DefaultHorizon.
func NewTracker(horizon time.Duration) *Tracker {
	return &Tracker{horizon: horizon}
}

// RecordFound records a lookup that resolved to a result.
func (t *Tracker) RecordFound() {
	t.record(&t.foundTimes, time.Now())
}

// RecordNotFound records a lookup that resolved to "Location not found", whatever the cause.
func (t *Tracker) RecordNotFound() {
	t.record(&t.notFoundTimes, time.Now())
}

func (t *Tracker) record(slice *[]time.Time, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	*slice = append(*slice, now)
	t.pruneLocked(now)
}

// Counts returns (found, notFound) within the window ending now.
func (t *Tracker) Counts(window time.Duration) (found, notFound int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.pruneLocked(now)
	cutoff := now.Add(-window)
	return countSince(t.foundTimes, cutoff), countSince(t.notFoundTimes, cutoff)
}

// Reset clears all recorded outcomes.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.foundTimes = nil
	t.notFoundTimes = nil
}

func countSince(times []time.Time, cutoff time.Time) int {
	n := 0
	for _, ts := range times {
		if !ts.Before(cutoff) {
			n++
		}
	}
	return n
}

// pruneLocked drops timestamps older than the horizon. Must be called with mu held.
func (t *Tracker) pruneLocked(now time.Time) {
	horizon := t.horizon
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	cutoff := now.Add(-horizon)
	prune := func(slice *[]time.Time) {
		times := *slice
		i := 0
		for ; i < len(times) && times[i].Before(cutoff); i++ {
		}
		if i > 0 {
			*slice = append(times[:0], times[i:]...)
		}
	}
	prune(&t.foundTimes)
	prune(&t.notFoundTimes)
}
