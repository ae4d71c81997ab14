package catalog

import (
	"strings"

	"pulseralux/internal/model"
)

const (
	// CategoryAll disables the category filter.
	CategoryAll = "todos"
	// DefaultVisibleCount is the number of products shown before any load-more.
	DefaultVisibleCount = 6
	// loadMoreStep is how many more products each load-more reveals.
	loadMoreStep = 3
)

// FilterState is the ephemeral view state the visible product list is
// derived from.
type FilterState struct {
	SearchTerm    string
	Category      string
	FavoritesOnly bool
	VisibleCount  int
}

// NewFilterState returns the initial view state: everything visible up to
// the default count, no filters.
func NewFilterState() FilterState {
	return FilterState{Category: CategoryAll, VisibleCount: DefaultVisibleCount}
}

// LoadMore reveals loadMoreStep more products, clamped at total. Once the
// whole catalog is visible it is a no-op.
func (f *FilterState) LoadMore(total int) {
	if f.VisibleCount >= total {
		return
	}
	f.VisibleCount += loadMoreStep
	if f.VisibleCount > total {
		f.VisibleCount = total
	}
}

// Filter derives the visible product subset. It is a pure function of its
// inputs: favorites-only first, then case-insensitive name substring, then
// category equality, then truncation to VisibleCount. Catalog order is
// preserved throughout.
func Filter(products []model.Product, favorites []int, st FilterState) []model.Product {
	favSet := map[int]bool{}
	if st.FavoritesOnly {
		for _, id := range favorites {
			favSet[id] = true
		}
	}
	term := strings.ToLower(st.SearchTerm)

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if st.FavoritesOnly && !favSet[p.ID] {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		if st.Category != "" && st.Category != CategoryAll && p.Category != st.Category {
			continue
		}
		out = append(out, p)
	}

	if len(out) > st.VisibleCount {
		out = out[:st.VisibleCount]
	}
	return out
}
