package cart

import (
	"context"
	"sync"

	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/repository"
)

// Identity is the slice of the session state the cart depends on.
type Identity interface {
	UserID() string
}

// Service mirrors the user's persisted cart rows joined with products.
// Every mutation is one optimistic write followed by a full refetch; the
// stock checks run against the local product snapshot and are advisory
// only; the backend stays authoritative.
type Service struct {
	identity Identity
	repo     repository.CartRepository

	mu    sync.RWMutex
	items []domain.CartItemWithProduct
}

func NewService(identity Identity, repo repository.CartRepository) *Service {
	return &Service{identity: identity, repo: repo}
}

// Refresh rebuilds the mirror from the backend. Signed out means an
// empty cart, not an error.
func (s *Service) Refresh(ctx context.Context) error {
	userID := s.identity.UserID()
	if userID == "" {
		s.setItems(nil)
		return nil
	}

	items, err := s.repo.ListWithProducts(ctx, userID)
	if err != nil {
		return err
	}
	s.setItems(items)
	return nil
}

// Items returns the current cart snapshot.
func (s *Service) Items() []domain.CartItemWithProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Count is the total quantity across all lines.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the cart total at snapshot prices.
func (s *Service) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum := 0.0
	for _, item := range s.items {
		sum += item.Subtotal()
	}
	return sum
}

// Add puts quantity units of product into the cart. An existing line for
// the same product is topped up rather than duplicated, keeping at most
// one line per (user, product).
func (s *Service) Add(ctx context.Context, product domain.Product, quantity int) error {
	userID := s.identity.UserID()
	if userID == "" {
		return domain.ErrNotSignedIn
	}
	if quantity < 1 {
		return &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if product.Stock < quantity {
		return &domain.InsufficientStockError{ProductID: product.ID, Available: product.Stock, Requested: quantity}
	}

	if existing := s.findByProduct(product.ID); existing != nil {
		newQuantity := existing.Quantity + quantity
		if product.Stock < newQuantity {
			return &domain.InsufficientStockError{ProductID: product.ID, Available: product.Stock, Requested: newQuantity}
		}
		if err := s.repo.UpdateQuantity(ctx, existing.ID, newQuantity); err != nil {
			return err
		}
	} else {
		if err := s.repo.InsertItem(ctx, userID, product.ID, quantity); err != nil {
			return err
		}
	}

	return s.Refresh(ctx)
}

// SetQuantity replaces a line's quantity.
func (s *Service) SetQuantity(ctx context.Context, itemID string, quantity int) error {
	if s.identity.UserID() == "" {
		return domain.ErrNotSignedIn
	}
	if quantity < 1 {
		return &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	item := s.findByID(itemID)
	if item == nil {
		return domain.ErrNotFound
	}
	if item.Product.Stock < quantity {
		return &domain.InsufficientStockError{ProductID: item.ProductID, Available: item.Product.Stock, Requested: quantity}
	}

	if err := s.repo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Remove deletes one line.
func (s *Service) Remove(ctx context.Context, itemID string) error {
	if s.identity.UserID() == "" {
		return domain.ErrNotSignedIn
	}

	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Clear deletes every line for the current user. The mirror is emptied
// directly, no refetch.
func (s *Service) Clear(ctx context.Context) error {
	userID := s.identity.UserID()
	if userID == "" {
		return domain.ErrNotSignedIn
	}

	if err := s.repo.DeleteAll(ctx, userID); err != nil {
		return err
	}
	s.setItems(nil)
	return nil
}

func (s *Service) setItems(items []domain.CartItemWithProduct) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

func (s *Service) findByProduct(productID string) *domain.CartItemWithProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			item := s.items[i]
			return &item
		}
	}
	return nil
}

func (s *Service) findByID(itemID string) *domain.CartItemWithProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.items[i].ID == itemID {
			item := s.items[i]
			return &item
		}
	}
	return nil
}
