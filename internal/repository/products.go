package repository

import (
	"context"
	"fmt"

	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/remote"
)

// ProductRepository is the gateway to the backend "products" table.
type ProductRepository interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Related(ctx context.Context, category, excludeID string, limit int) ([]domain.Product, error)
	Recent(ctx context.Context, limit int) ([]domain.Product, error)
	Insert(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) error
	UpdateStock(ctx context.Context, id string, stock int) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ProductInput is the writable column set of a product row.
type ProductInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	AdminID     string  `json:"admin_id,omitempty"`
}

type productRepository struct {
	client *remote.Client
}

func NewProductRepository(client *remote.Client) ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.client.From("products").
		Select("*").
		Order("created_at", false).
		Get(ctx, &products)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.client.From("products").
		Select("*").
		Eq("id", id).
		Single().
		Get(ctx, &product)
	if remote.IsNotFound(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &product, nil
}

func (r *productRepository) Related(ctx context.Context, category, excludeID string, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.client.From("products").
		Select("*").
		Eq("category", category).
		Neq("id", excludeID).
		Limit(limit).
		Get(ctx, &products)
	if err != nil {
		return nil, fmt.Errorf("list related products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Recent(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.client.From("products").
		Select("*").
		Order("created_at", false).
		Limit(limit).
		Get(ctx, &products)
	if err != nil {
		return nil, fmt.Errorf("list recent products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Insert(ctx context.Context, input ProductInput) (*domain.Product, error) {
	var created []domain.Product
	if err := r.client.From("products").Insert(ctx, input, &created); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("insert product: backend returned no representation")
	}
	return &created[0], nil
}

func (r *productRepository) Update(ctx context.Context, id string, input ProductInput) error {
	if err := r.client.From("products").Eq("id", id).Update(ctx, input); err != nil {
		return fmt.Errorf("update product %s: %w", id, err)
	}
	return nil
}

func (r *productRepository) UpdateStock(ctx context.Context, id string, stock int) error {
	patch := map[string]int{"stock": stock}
	if err := r.client.From("products").Eq("id", id).Update(ctx, patch); err != nil {
		return fmt.Errorf("update stock for product %s: %w", id, err)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.From("products").Eq("id", id).Delete(ctx); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	n, err := r.client.From("products").Select("*").Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
