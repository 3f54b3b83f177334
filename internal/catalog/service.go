package catalog

import (
	"context"
	"sync"

	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/repository"
	"golang.org/x/sync/singleflight"
)

// Service holds the full product catalog and the view derived from it.
type Service struct {
	repo repository.ProductRepository
	sfg  singleflight.Group // collapses concurrent refreshes

	mu       sync.RWMutex
	products []domain.Product
	view     *View
}

func NewService(repo repository.ProductRepository, initialCount, increment int) *Service {
	return &Service{
		repo: repo,
		view: NewView(initialCount, increment),
	}
}

// Refresh fetches the full catalog, newest first. Concurrent callers
// share a single round trip.
func (s *Service) Refresh(ctx context.Context) error {
	_, err, _ := s.sfg.Do("catalog", func() (interface{}, error) {
		products, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.products = products
		s.view.SetProducts(products)
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// Products returns the full catalog snapshot.
func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Product looks up one product in the snapshot by id.
func (s *Service) Product(id string) (*domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, true
		}
	}
	return nil, false
}

// Categories returns the unique category labels in first-seen order.
func (s *Service) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categoriesLocked()
}

func (s *Service) categoriesLocked() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// SetCategory updates the view's category selector.
func (s *Service) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SetCategory(category)
}

// SetSearch updates the view's free-text search term.
func (s *Service) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SetSearch(term)
}

// SetSort updates the view's sort key.
func (s *Service) SetSort(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SetSort(key)
}

// LoadMore advances the view's visible-count cursor.
func (s *Service) LoadMore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.LoadMore()
}

// Snapshot is the render surface's read-only picture of the view.
type Snapshot struct {
	Items      []domain.Product
	HasMore    bool
	Total      int
	Category   string
	Search     string
	SortKey    string
	Categories []string
}

func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Items:      s.view.Items(),
		HasMore:    s.view.HasMore(),
		Total:      s.view.FilteredLen(),
		Category:   s.view.Category(),
		Search:     s.view.Search(),
		SortKey:    s.view.SortKey(),
		Categories: s.categoriesLocked(),
	}
}
