package view

import "sync/atomic"

// Generation guards overlapping asynchronous passes over the catalog. Each
// pass snapshots the counter when it starts; work that completes under an
// older snapshot is discarded instead of clobbering newer results.
type Generation struct {
	counter atomic.Uint64
}

// Next advances the generation and returns the new value.
func (g *Generation) Next() uint64 {
	return g.counter.Add(1)
}

// Current returns the latest generation without advancing it.
func (g *Generation) Current() uint64 {
	return g.counter.Load()
}

// IsCurrent reports whether a snapshot taken earlier is still the latest.
func (g *Generation) IsCurrent(snapshot uint64) bool {
	return g.counter.Load() == snapshot
}
