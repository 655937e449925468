// Package render schedules preview encoding lazily: entries are encoded when
// a proximity observer reports them near the viewport, with a small eager
// preload so the first screen never waits.
package render
