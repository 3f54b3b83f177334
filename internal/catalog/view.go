package catalog

import (
	"sort"
	"strings"

	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
)

// Sort keys for the product view.
const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

const (
	DefaultInitialCount = 12
	DefaultIncrement    = 3
)

// View derives the visible, ordered, paginated product sequence from the
// full catalog and three independent criteria. Filtering and sorting are
// pure functions of (products, category, search, sort); the visible-count
// cursor only grows via LoadMore and is deliberately not reset when
// criteria change.
type View struct {
	products []domain.Product
	filtered []domain.Product

	category string
	search   string
	sortKey  string

	visible   int
	increment int
}

// NewView returns a view over an empty catalog. Non-positive counts fall
// back to the defaults.
func NewView(initialCount, increment int) *View {
	if initialCount <= 0 {
		initialCount = DefaultInitialCount
	}
	if increment <= 0 {
		increment = DefaultIncrement
	}
	return &View{
		category:  CategoryAll,
		sortKey:   SortNewest,
		visible:   initialCount,
		increment: increment,
	}
}

// SetProducts replaces the full catalog and recomputes the view.
func (v *View) SetProducts(products []domain.Product) {
	v.products = products
	v.recompute()
}

// SetCategory filters to an exact, case-sensitive category label;
// CategoryAll disables the filter.
func (v *View) SetCategory(category string) {
	v.category = category
	v.recompute()
}

// SetSearch filters to products whose title or description contains the
// term as a case-insensitive substring. Empty disables the filter.
func (v *View) SetSearch(term string) {
	v.search = term
	v.recompute()
}

// SetSort orders the filtered sequence by the given key. Unknown keys
// leave the prior relative order untouched.
func (v *View) SetSort(key string) {
	v.sortKey = key
	v.recompute()
}

func (v *View) Category() string { return v.category }
func (v *View) Search() string   { return v.search }
func (v *View) SortKey() string  { return v.sortKey }

// Items returns the render set: the first visible-count elements of the
// filtered, sorted sequence.
func (v *View) Items() []domain.Product {
	if v.visible >= len(v.filtered) {
		return v.filtered
	}
	return v.filtered[:v.visible]
}

// HasMore reports whether LoadMore would reveal further products.
func (v *View) HasMore() bool {
	return v.visible < len(v.filtered)
}

// LoadMore advances the visible-count cursor. It never refetches or
// re-filters.
func (v *View) LoadMore() {
	v.visible += v.increment
}

// FilteredLen is the length of the filtered sequence regardless of the
// cursor.
func (v *View) FilteredLen() int {
	return len(v.filtered)
}

func (v *View) recompute() {
	v.filtered = SortProducts(FilterProducts(v.products, v.category, v.search), v.sortKey)
}

// FilterProducts retains products matching the category exactly and the
// search term as a case-insensitive substring of title or description.
// The input slice is never mutated.
func FilterProducts(products []domain.Product, category, search string) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	term := strings.ToLower(search)
	for _, p := range products {
		if category != CategoryAll && p.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// SortProducts orders products by the given key with a stable sort, so
// ties preserve their prior relative order. The input slice is never
// mutated.
func SortProducts(products []domain.Product, key string) []domain.Product {
	result := make([]domain.Product, len(products))
	copy(result, products)

	switch key {
	case SortNewest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	case SortPriceLow:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price < result[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price > result[j].Price
		})
	}
	return result
}
