// Package metrics holds in-process counters surfaced through logs and the
// health endpoint.
package metrics

import (
	"math"
	"sync/atomic"
	"time"
)

type Counter struct {
	n atomic.Uint64
}

func (c *Counter) Inc()             { c.n.Add(1) }
func (c *Counter) Add(delta uint64) { c.n.Add(delta) }
func (c *Counter) Load() uint64     { return c.n.Load() }

// Timer measures one operation. Durations go into log fields.
type Timer struct {
	start time.Time
}

func StartTimer() Timer {
	return Timer{start: time.Now()}
}

func (t Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// CacheStats counts lookups against a cache.
type CacheStats struct {
	Hits          Counter
	Misses        Counter
	Evictions     Counter
	Invalidations Counter
}

type CacheSnapshot struct {
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	Evictions     uint64  `json:"evictions"`
	Invalidations uint64  `json:"invalidations"`
	HitRatio      float64 `json:"hitRatio"`
}

func (s *CacheStats) Snapshot() CacheSnapshot {
	snap := CacheSnapshot{
		Hits:          s.Hits.Load(),
		Misses:        s.Misses.Load(),
		Evictions:     s.Evictions.Load(),
		Invalidations: s.Invalidations.Load(),
	}
	if lookups := snap.Hits + snap.Misses; lookups > 0 {
		snap.HitRatio = math.Round(float64(snap.Hits)/float64(lookups)*1000) / 1000
	}
	return snap
}
