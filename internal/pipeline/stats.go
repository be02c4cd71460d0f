package pipeline

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	at         time.Time
	durationMs int64
	records    int
	failed     bool
}

// StatsSnapshot aggregates the per-file samples inside the window.
type StatsSnapshot struct {
	Files   int     `json:"files"`
	Failed  int     `json:"failed"`
	Records int     `json:"records"`
	MinMs   int64   `json:"min_ms"`
	MaxMs   int64   `json:"max_ms"`
	AvgMs   float64 `json:"avg_ms"`
	P50Ms   float64 `json:"p50_ms"`
	P95Ms   float64 `json:"p95_ms"`
}

// ParseStats keeps per-file parse timings for a rolling window.
type ParseStats struct {
	mu      sync.Mutex
	samples []sample
	window  time.Duration
}

func NewParseStats(window time.Duration) *ParseStats {
	if window <= 0 {
		window = time.Hour
	}
	return &ParseStats{window: window}
}

// Record adds one processed file.
func (s *ParseStats) Record(durationMs int64, records int, failed bool) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		at:         now,
		durationMs: max(durationMs, 0),
		records:    records,
		failed:     failed,
	})
}

func (s *ParseStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(time.Now())

	var snap StatsSnapshot
	if len(s.samples) == 0 {
		return snap
	}
	durations := make([]int64, len(s.samples))
	var sum int64
	for i, sm := range s.samples {
		durations[i] = sm.durationMs
		sum += sm.durationMs
		snap.Records += sm.records
		if sm.failed {
			snap.Failed++
		}
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	snap.Files = len(durations)
	snap.MinMs = durations[0]
	snap.MaxMs = durations[len(durations)-1]
	snap.AvgMs = float64(sum) / float64(len(durations))
	snap.P50Ms = percentile(durations, 50)
	snap.P95Ms = percentile(durations, 95)
	return snap
}

func (s *ParseStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	kept := s.samples[:0]
	for _, sm := range s.samples {
		if !sm.at.Before(cutoff) {
			kept = append(kept, sm)
		}
	}
	s.samples = kept
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}
	pos := float64(len(sorted)-1) * pct / 100
	lo := int(pos)
	if lo+1 >= len(sorted) {
		return float64(sorted[lo])
	}
	frac := pos - float64(lo)
	return float64(sorted[lo]) + (float64(sorted[lo+1])-float64(sorted[lo]))*frac
}
