package view

import (
	"testing"
	"time"

	"github.com/NaiHeeeee/repkg-gui/internal/catalog"
)

func entryNamed(id, name string, modified *time.Time) catalog.Entry {
	return catalog.Entry{ID: id, DisplayName: name, ModifiedAt: modified, HasManifest: true}
}

func timePtr(t time.Time) *time.Time { return &t }

func idsOf(entries []catalog.Entry) []string {
	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ID
	}
	return ids
}

func assertOrder(t *testing.T, entries []catalog.Entry, want ...string) {
	t.Helper()
	got := idsOf(entries)
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDefaultSortStateIsDateDescending(t *testing.T) {
	state := DefaultSortState()
	if state.Key() != KeyDate {
		t.Errorf("Key = %q, want date", state.Key())
	}
	if state.Direction(KeyDate) != Descending {
		t.Errorf("Direction = %q, want desc", state.Direction(KeyDate))
	}
}

func TestToggleFlipsActiveKey(t *testing.T) {
	state := DefaultSortState()

	if dir := state.Toggle(KeyDate); dir != Ascending {
		t.Errorf("re-selecting the active key should flip desc->asc, got %q", dir)
	}
	if dir := state.Toggle(KeyDate); dir != Descending {
		t.Errorf("second toggle should flip back, got %q", dir)
	}
}

func TestToggleSwitchingKeysKeepsRememberedDirection(t *testing.T) {
	state := DefaultSortState()

	if dir := state.Toggle(KeyName); dir != Ascending {
		t.Errorf("first use of name should be asc, got %q", dir)
	}
	state.Toggle(KeyName) // name now desc
	state.Toggle(KeyDate) // switch away; date keeps its remembered desc
	if dir := state.Direction(KeyDate); dir != Descending {
		t.Errorf("date should resume desc, got %q", dir)
	}
	if dir := state.Toggle(KeyName); dir != Descending {
		t.Errorf("name should resume its remembered desc, got %q", dir)
	}
}

func TestSortByNameIsCaseInsensitive(t *testing.T) {
	entries := []catalog.Entry{
		entryNamed("1", "zen garden", nil),
		entryNamed("2", "Ambient Rain", nil),
		entryNamed("3", "neon City", nil),
	}
	state := DefaultSortState()
	state.Toggle(KeyName)

	NewSorter().Sort(entries, state)
	assertOrder(t, entries, "2", "3", "1")
}

func TestSortByDateDescending(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	entries := []catalog.Entry{
		entryNamed("old", "A", timePtr(base)),
		entryNamed("new", "B", timePtr(base.Add(48*time.Hour))),
		entryNamed("mid", "C", timePtr(base.Add(24*time.Hour))),
	}

	NewSorter().Sort(entries, DefaultSortState())
	assertOrder(t, entries, "new", "mid", "old")
}

func TestSortNilDatesHoldPosition(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	entries := []catalog.Entry{
		entryNamed("a", "A", timePtr(base)),
		entryNamed("b", "B", nil),
		entryNamed("c", "C", timePtr(base.Add(time.Hour))),
	}
	state := DefaultSortState()
	state.Toggle(KeyDate) // ascending

	NewSorter().Sort(entries, state)

	// b compares equal to both neighbors, so the stable sort keeps it
	// second while a and c stay put around it.
	assertOrder(t, entries, "a", "b", "c")
}

func TestSortIsStableForEqualNames(t *testing.T) {
	entries := []catalog.Entry{
		entryNamed("first", "Duplicate", nil),
		entryNamed("second", "Duplicate", nil),
		entryNamed("third", "Duplicate", nil),
	}
	state := DefaultSortState()
	state.Toggle(KeyName)

	NewSorter().Sort(entries, state)
	assertOrder(t, entries, "first", "second", "third")
}
