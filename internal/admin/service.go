package admin

import (
	"context"

	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Identity is the slice of the session state the admin surface depends on.
type Identity interface {
	UserID() string
	IsAdmin() bool
}

// Stats is the dashboard headline: row counts plus total revenue summed
// over every order.
type Stats struct {
	ProductCount int     `json:"product_count"`
	OrderCount   int     `json:"order_count"`
	UserCount    int     `json:"user_count"`
	Revenue      float64 `json:"revenue"`
}

// ProductForm carries the admin product create/update fields.
type ProductForm struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

func (f ProductForm) validate() error {
	switch {
	case f.Title == "":
		return &domain.ValidationError{Field: "title", Reason: "required"}
	case f.Description == "":
		return &domain.ValidationError{Field: "description", Reason: "required"}
	case f.Category == "":
		return &domain.ValidationError{Field: "category", Reason: "required"}
	case f.ImageURL == "":
		return &domain.ValidationError{Field: "image_url", Reason: "required"}
	case f.Price < 0:
		return &domain.ValidationError{Field: "price", Reason: "must not be negative"}
	case f.Stock < 0:
		return &domain.ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	return nil
}

const recentLimit = 5

// Service is the role-gated admin surface: dashboard stats, recent rows
// and product CRUD.
type Service struct {
	identity Identity
	products repository.ProductRepository
	orders   repository.OrderRepository
	profiles repository.ProfileRepository
}

func NewService(identity Identity, products repository.ProductRepository, orders repository.OrderRepository, profiles repository.ProfileRepository) *Service {
	return &Service{
		identity: identity,
		products: products,
		orders:   orders,
		profiles: profiles,
	}
}

func (s *Service) guard() error {
	if s.identity.UserID() == "" {
		return domain.ErrNotSignedIn
	}
	if !s.identity.IsAdmin() {
		return domain.ErrNotAdmin
	}
	return nil
}

// Stats fetches the four dashboard figures concurrently.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	var stats Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.products.Count(ctx)
		stats.ProductCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.orders.Count(ctx)
		stats.OrderCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.profiles.Count(ctx)
		stats.UserCount = n
		return err
	})
	g.Go(func() error {
		amounts, err := s.orders.TotalAmounts(ctx)
		if err != nil {
			return err
		}
		for _, amount := range amounts {
			stats.Revenue += amount
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RecentProducts returns the five newest products.
func (s *Service) RecentProducts(ctx context.Context) ([]domain.Product, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return s.products.Recent(ctx, recentLimit)
}

// RecentOrders returns the five newest orders.
func (s *Service) RecentOrders(ctx context.Context) ([]domain.Order, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return s.orders.Recent(ctx, recentLimit)
}

// CreateProduct inserts a product stamped with the acting admin's id.
func (s *Service) CreateProduct(ctx context.Context, form ProductForm) (*domain.Product, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	if err := form.validate(); err != nil {
		return nil, err
	}

	return s.products.Insert(ctx, repository.ProductInput{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		ImageURL:    form.ImageURL,
		Category:    form.Category,
		Stock:       form.Stock,
		AdminID:     s.identity.UserID(),
	})
}

// UpdateProduct replaces a product's writable columns.
func (s *Service) UpdateProduct(ctx context.Context, id string, form ProductForm) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := form.validate(); err != nil {
		return err
	}

	return s.products.Update(ctx, id, repository.ProductInput{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		ImageURL:    form.ImageURL,
		Category:    form.Category,
		Stock:       form.Stock,
	})
}

// DeleteProduct removes a product row.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}
