package timing

import (
	"context"
	"sync"
	"time"
)

type timingKey struct{}

type TimingInfo struct {
	Operation string
	StartTime time.Time
}

// totals is the running count and sum of one operation.
type totals struct {
	count int
	sum   time.Duration
}

// Tracker accumulates durations per named operation. Memory is bounded by the
// number of distinct operations. Safe for concurrent use.
type Tracker struct {
	timings map[string]*totals
	mu      sync.RWMutex
	enabled bool
}

func NewTracker() *Tracker {
	return &Tracker{
		timings: make(map[string]*totals),
		enabled: true,
	}
}

// StartTiming derives a context carrying the start time of operation.
func (tt *Tracker) StartTiming(ctx context.Context, operation string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if !tt.isEnabled() {
		return ctx
	}

	return context.WithValue(ctx, timingKey{}, TimingInfo{
		Operation: operation,
		StartTime: time.Now(),
	})
}

// EndTiming records the time elapsed since the matching StartTiming and
// returns it.
func (tt *Tracker) EndTiming(ctx context.Context) time.Duration {
	if !tt.isEnabled() {
		return 0
	}

	timingInfo, ok := ctx.Value(timingKey{}).(TimingInfo)
	if !ok {
		return 0
	}

	duration := time.Since(timingInfo.StartTime)

	tt.add(timingInfo.Operation, duration)
	return duration
}

// Record adds an externally measured duration.
func (tt *Tracker) Record(operation string, duration time.Duration) {
	if !tt.isEnabled() {
		return
	}
	tt.add(operation, duration)
}

func (tt *Tracker) add(operation string, duration time.Duration) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	t, ok := tt.timings[operation]
	if !ok {
		t = &totals{}
		tt.timings[operation] = t
	}
	t.count++
	t.sum += duration
}

// Count reports how many durations were recorded for operation.
func (tt *Tracker) Count(operation string) int {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	if t, ok := tt.timings[operation]; ok {
		return t.count
	}
	return 0
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	t, ok := tt.timings[operation]
	if !ok || t.count == 0 {
		return 0
	}
	return t.sum / time.Duration(t.count)
}

// Summary returns count and average per operation in a form ready to attach
// to a log entry.
func (tt *Tracker) Summary() map[string]interface{} {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	summary := make(map[string]interface{}, len(tt.timings)*2)
	for operation, t := range tt.timings {
		summary[operation+"_count"] = t.count
		summary[operation+"_avg_ms"] = (t.sum / time.Duration(t.count)).Milliseconds()
	}
	return summary
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

func (tt *Tracker) isEnabled() bool {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return tt.enabled
}

func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string]*totals)
	} else {
		delete(tt.timings, operation)
	}
}
