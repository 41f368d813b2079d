package ratewindow

import (
	"hash/fnv"
	"sync"
	"time"
)

const shardCount = 32

// RateWindow counts recent observations per key over a sliding window.
// Counters live in process memory only; a restart starts them empty.
type RateWindow struct {
	shards       [shardCount]*shard
	timeProvider func() time.Time
}

type Opts struct {
	TimeProvider func() time.Time
}

type shard struct {
	mu      sync.Mutex
	entries map[string][]time.Time
}

func NewRateWindow(opts *Opts) *RateWindow {
	timeProvider := time.Now
	if opts != nil && opts.TimeProvider != nil {
		timeProvider = opts.TimeProvider
	}

	w := &RateWindow{timeProvider: timeProvider}
	for i := range w.shards {
		w.shards[i] = &shard{entries: make(map[string][]time.Time)}
	}
	return w
}

// Observe records one occurrence for the key and returns how many
// occurrences fall inside the window, the new one included. The prune,
// append and count happen under one lock so concurrent observers for the
// same key each see their own occurrence counted exactly once.
func (w *RateWindow) Observe(key string, window time.Duration) int {
	now := w.timeProvider()
	cutoff := now.Add(-window)

	s := w.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[key][:0]
	for _, t := range s.entries[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	s.entries[key] = kept
	return len(kept)
}

// Count returns the occurrences inside the window without recording one.
func (w *RateWindow) Count(key string, window time.Duration) int {
	now := w.timeProvider()
	cutoff := now.Add(-window)

	s := w.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.entries[key] {
		if t.After(cutoff) {
			n++
		}
	}
	return n
}

// Forget drops all state for the key.
func (w *RateWindow) Forget(key string) {
	s := w.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (w *RateWindow) shardFor(key string) *shard {
	h := fnv.New32a()
	h.Write([]byte(key)) //nolint:errcheck
	return w.shards[h.Sum32()%shardCount]
}
