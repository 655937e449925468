package view

import (
	"strings"

	"github.com/NaiHeeeee/repkg-gui/internal/catalog"
)

// RatingSource answers synchronous rating lookups for the filter. The
// classification cache satisfies it.
type RatingSource interface {
	Peek(key string) (string, bool)
}

// FilterState is the conjunction of a free-text search and a rating
// allow-set. Both components are permissive when empty.
type FilterState struct {
	SearchText      string
	SelectedRatings []string
}

// IsEmpty reports whether the filter passes everything.
func (f FilterState) IsEmpty() bool {
	return strings.TrimSpace(f.SearchText) == "" && len(f.SelectedRatings) == 0
}

// Matches applies both predicates to a single entry. A non-empty rating set
// rejects entries whose rating is unresolved or absent; "unknown" is not a
// member of any allow-set.
func (f FilterState) Matches(entry catalog.Entry, ratings RatingSource) bool {
	if text := strings.ToLower(strings.TrimSpace(f.SearchText)); text != "" {
		name := strings.ToLower(entry.DisplayName)
		id := strings.ToLower(entry.ID)
		if !strings.Contains(name, text) && !strings.Contains(id, text) {
			return false
		}
	}

	if len(f.SelectedRatings) == 0 {
		return true
	}
	rating, resolved := ratings.Peek(entry.CacheKey())
	if !resolved || rating == "" {
		return false
	}
	for _, selected := range f.SelectedRatings {
		if strings.EqualFold(selected, rating) {
			return true
		}
	}
	return false
}

// Visible returns the entries passing the filter, preserving input order.
func (f FilterState) Visible(entries []catalog.Entry, ratings RatingSource) []catalog.Entry {
	if f.IsEmpty() {
		return append([]catalog.Entry(nil), entries...)
	}
	visible := make([]catalog.Entry, 0, len(entries))
	for _, entry := range entries {
		if f.Matches(entry, ratings) {
			visible = append(visible, entry)
		}
	}
	return visible
}
