package view

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/NaiHeeeee/repkg-gui/internal/catalog"
)

// Key selects which entry attribute orders the catalog.
type Key string

const (
	KeyName Key = "name"
	KeyDate Key = "date"
)

// Direction is the order applied along the active key.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortState carries the active key plus each key's remembered direction.
// Re-selecting the active key flips only that key's direction; switching keys
// resumes the other key at whatever direction it last had.
type SortState struct {
	key        Key
	directions map[Key]Direction
}

// DefaultSortState is the order applied after every scan or refresh:
// most recently modified first.
func DefaultSortState() *SortState {
	return &SortState{
		key: KeyDate,
		directions: map[Key]Direction{
			KeyDate: Descending,
		},
	}
}

// Key returns the active sort key.
func (s *SortState) Key() Key { return s.key }

// Direction returns the direction remembered for the given key. Keys never
// toggled before start ascending.
func (s *SortState) Direction(key Key) Direction {
	if dir, ok := s.directions[key]; ok {
		return dir
	}
	return Ascending
}

// Toggle applies the selection rule for key and returns the resulting active
// direction.
func (s *SortState) Toggle(key Key) Direction {
	if s.key == key {
		if s.Direction(key) == Ascending {
			s.directions[key] = Descending
		} else {
			s.directions[key] = Ascending
		}
	} else {
		s.key = key
		if _, ok := s.directions[key]; !ok {
			s.directions[key] = Ascending
		}
	}
	return s.directions[s.key]
}

// Sorter orders catalog entries. The collator is locale-aware and
// case-insensitive so "ambient" and "Zen" interleave the way a user expects.
type Sorter struct {
	collator *collate.Collator
}

func NewSorter() *Sorter {
	return &Sorter{collator: collate.New(language.Und, collate.IgnoreCase)}
}

// Sort orders entries in place according to state. The sort is stable:
// entries the comparator cannot distinguish keep their relative order.
//
// Entries without a modification time compare equal to every other entry
// under the date key. Stability then keeps them where they were instead of
// sinking them to one end.
func (s *Sorter) Sort(entries []catalog.Entry, state *SortState) {
	key := state.Key()
	descending := state.Direction(key) == Descending

	sort.SliceStable(entries, func(i, j int) bool {
		cmp := s.compare(entries[i], entries[j], key)
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

func (s *Sorter) compare(a, b catalog.Entry, key Key) int {
	switch key {
	case KeyDate:
		if a.ModifiedAt == nil || b.ModifiedAt == nil {
			return 0
		}
		return a.ModifiedAt.Compare(*b.ModifiedAt)
	default:
		return s.collator.CompareString(a.DisplayName, b.DisplayName)
	}
}
