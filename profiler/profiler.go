// Package profiler - Stage timing for detection runs.
package profiler

import (
	"sync"
	"time"
)

// TimeTracker tracks operation timing statistics.
type TimeTracker struct {
	Count   int64
	Total   time.Duration
	MinTime time.Duration
	MaxTime time.Duration
}

// Mean returns the average duration, or 0 before the first sample.
func (t TimeTracker) Mean() time.Duration {
	if t.Count == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Count)
}

// Stopwatch records named stage durations. It is safe for concurrent use; a
// stage timed several times accumulates its samples.
type Stopwatch struct {
	mu     sync.Mutex
	order  []string
	stages map[string]*TimeTracker
	now    func() time.Time
}

// NewStopwatch creates an empty stopwatch.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{
		stages: make(map[string]*TimeTracker),
		now:    time.Now,
	}
}

// Start begins timing a stage and returns the function that stops it.
//
// @example
// done := sw.Start("inference")
// outputs, err := engine.Run(ctx, input)
// done()
func (s *Stopwatch) Start(stage string) func() {
	start := s.now()
	var once sync.Once
	return func() {
		once.Do(func() { s.Record(stage, s.now().Sub(start)) })
	}
}

// Record adds one sample for a stage.
func (s *Stopwatch) Record(stage string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracker, exists := s.stages[stage]
	if !exists {
		tracker = &TimeTracker{MinTime: d, MaxTime: d}
		s.stages[stage] = tracker
		s.order = append(s.order, stage)
	}

	tracker.Count++
	tracker.Total += d
	if d < tracker.MinTime {
		tracker.MinTime = d
	}
	if d > tracker.MaxTime {
		tracker.MaxTime = d
	}
}

// Stages returns the recorded stage names in first-recorded order.
func (s *Stopwatch) Stages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Stats returns a copy of the statistics of one stage.
func (s *Stopwatch) Stats(stage string) (TimeTracker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.stages[stage]
	if !ok {
		return TimeTracker{}, false
	}
	return *t, true
}

// Durations returns the accumulated duration of every stage.
func (s *Stopwatch) Durations() map[string]time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]time.Duration, len(s.stages))
	for name, t := range s.stages {
		out[name] = t.Total
	}
	return out
}

// Total returns the sum of all stage durations.
func (s *Stopwatch) Total() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total time.Duration
	for _, t := range s.stages {
		total += t.Total
	}
	return total
}

// Fields returns the stage totals in milliseconds, keyed "<stage>_ms", for
// structured logging.
func (s *Stopwatch) Fields() map[string]interface{} {
	durations := s.Durations()
	out := make(map[string]interface{}, len(durations))
	for name, d := range durations {
		out[name+"_ms"] = float64(d.Microseconds()) / 1000
	}
	return out
}
