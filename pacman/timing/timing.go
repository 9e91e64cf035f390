// Package timing implements DeltaTime, Timing, and SystemTimings per
// spec.md §4.9, grounded on the teacher's tickLoop TPS sampling
// (server/world/tick.go): a fixed-size running sample window, averaged,
// compared against a threshold, and reported with one guarded slog.Warn.
// This package generalizes that single running-average counter into a
// per-system keyed set of 30-sample ring buffers.
package timing

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/segmentio/fasthash/fnv1a"
)

// SystemID identifies a scheduled system for the SystemTimings map, a
// uint64 computed from the system's name so the hot per-tick path never
// hashes or compares strings, matching the teacher's redstone Metrics
// keying its counters by a small integer id (metrics.go).
type SystemID uint64

// NewSystemID derives a SystemID from a system's name.
func NewSystemID(name string) SystemID {
	return SystemID(fnv1a.HashString64(name))
}

// TotalSystemID is the reserved key SystemTimings uses for the whole
// frame's aggregate duration.
var TotalSystemID = NewSystemID("__total__")

// DeltaTime is written once per frame before the schedule runs.
type DeltaTime struct {
	Seconds float64
	Ticks   uint32
}

// Timing holds the monotonically increasing current tick counter.
type Timing struct {
	currentTick atomic.Uint64
}

// CurrentTick returns the current tick number.
func (t *Timing) CurrentTick() uint64 {
	return t.currentTick.Load()
}

// Advance increments the tick counter and returns the new value.
func (t *Timing) Advance() uint64 {
	return t.currentTick.Add(1)
}

const ringCapacity = 30

// ring is a fixed-capacity circular buffer of durations.
type ring struct {
	samples [ringCapacity]time.Duration
	pos     int
	filled  int
}

func (r *ring) push(d time.Duration) {
	r.samples[r.pos] = d
	r.pos = (r.pos + 1) % ringCapacity
	if r.filled < ringCapacity {
		r.filled++
	}
}

func (r *ring) last() time.Duration {
	if r.filled == 0 {
		return 0
	}
	return r.samples[(r.pos-1+ringCapacity)%ringCapacity]
}

func (r *ring) values() []time.Duration {
	return r.samples[:r.filled]
}

// SystemTimings maintains one 30-sample ring buffer per SystemID (plus
// TotalSystemID for the whole frame), per spec.md §4.9.
type SystemTimings struct {
	rings map[SystemID]*ring
}

// NewSystemTimings returns an empty SystemTimings.
func NewSystemTimings() *SystemTimings {
	return &SystemTimings{rings: make(map[SystemID]*ring)}
}

func (s *SystemTimings) ring(id SystemID) *ring {
	r, ok := s.rings[id]
	if !ok {
		r = &ring{}
		s.rings[id] = r
	}
	return r
}

// Record appends a real elapsed-time sample for id.
func (s *SystemTimings) Record(id SystemID, d time.Duration) {
	s.ring(id).push(d)
}

// RecordSkipped appends a zero sample for id, used when gating bypassed the
// system this tick so its ring buffer does not go stale, per spec.md §4.9.
func (s *SystemTimings) RecordSkipped(id SystemID) {
	s.ring(id).push(0)
}

// Profile times fn and records its elapsed duration under id.
func (s *SystemTimings) Profile(id SystemID, fn func()) {
	start := time.Now()
	fn()
	s.Record(id, time.Since(start))
}

// Stats computes the one-pass Welford mean and standard deviation over the
// last (<=30) recorded samples for id.
func (s *SystemTimings) Stats(id SystemID) (mean, stddev time.Duration, ok bool) {
	r, exists := s.rings[id]
	if !exists || r.filled == 0 {
		return 0, 0, false
	}
	var meanF, m2 float64
	n := 0
	for _, d := range r.values() {
		n++
		x := float64(d)
		delta := x - meanF
		meanF += delta / float64(n)
		m2 += delta * (x - meanF)
	}
	var variance float64
	if n > 1 {
		variance = m2 / float64(n)
	}
	return time.Duration(meanF), time.Duration(math.Sqrt(variance)), true
}

// CheckSlowFrame implements spec.md §4.9's slow-frame warning: if
// actualTotal exceeds ~1.2x expectedBudget, log a structured warning naming
// the slowest systems — every system whose most recent sample is >= 2ms,
// or, failing that, the top systems whose cumulative share first crosses
// 30% of the frame, up to five. names maps a SystemID to a display name for
// the log line; an unnamed id falls back to its numeric form.
func (s *SystemTimings) CheckSlowFrame(log *slog.Logger, tick uint64, actualTotal, expectedBudget time.Duration, names map[SystemID]string) {
	threshold := time.Duration(float64(expectedBudget) * 1.2)
	if actualTotal <= threshold {
		return
	}

	type sample struct {
		id   SystemID
		last time.Duration
	}
	entries := make([]sample, 0, len(s.rings))
	for id, r := range s.rings {
		if id == TotalSystemID || r.filled == 0 {
			continue
		}
		entries = append(entries, sample{id: id, last: r.last()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].last > entries[j].last })

	var slow []SystemID
	for _, e := range entries {
		if e.last >= 2*time.Millisecond {
			slow = append(slow, e.id)
		}
	}
	if len(slow) == 0 {
		var cumulative time.Duration
		for _, e := range entries {
			if len(slow) >= 5 {
				break
			}
			slow = append(slow, e.id)
			cumulative += e.last
			if actualTotal > 0 && float64(cumulative) >= 0.3*float64(actualTotal) {
				break
			}
		}
	}
	if len(slow) > 5 {
		slow = slow[:5]
	}

	systemNames := make([]string, 0, len(slow))
	for _, id := range slow {
		if name, ok := names[id]; ok {
			systemNames = append(systemNames, name)
		} else {
			systemNames = append(systemNames, fmt.Sprintf("system:%d", id))
		}
	}
	log.Warn("frame exceeded budget", slog.Uint64("tick", tick), slog.Duration("total", actualTotal), slog.Any("systems", systemNames))
}
