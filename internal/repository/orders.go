package repository

import (
	"context"
	"fmt"

	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/remote"
)

// OrderRepository is the gateway to the backend "orders" and
// "order_items" tables.
type OrderRepository interface {
	Insert(ctx context.Context, input OrderInput) (*domain.Order, error)
	InsertItems(ctx context.Context, items []OrderItemInput) error
	ListForUser(ctx context.Context, userID string, limit int) ([]domain.Order, error)
	Recent(ctx context.Context, limit int) ([]domain.Order, error)
	Count(ctx context.Context) (int, error)
	TotalAmounts(ctx context.Context) ([]float64, error)
}

// OrderInput is the writable column set of an order header.
type OrderInput struct {
	UserID          string  `json:"user_id"`
	TotalAmount     float64 `json:"total_amount"`
	Status          string  `json:"status"`
	PaymentIntentID string  `json:"payment_intent_id,omitempty"`
}

// OrderItemInput is the writable column set of an order line.
type OrderItemInput struct {
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type orderRepository struct {
	client *remote.Client
}

func NewOrderRepository(client *remote.Client) OrderRepository {
	return &orderRepository{client: client}
}

func (r *orderRepository) Insert(ctx context.Context, input OrderInput) (*domain.Order, error) {
	var created []domain.Order
	if err := r.client.From("orders").Insert(ctx, input, &created); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("insert order: backend returned no representation")
	}
	return &created[0], nil
}

func (r *orderRepository) InsertItems(ctx context.Context, items []OrderItemInput) error {
	if err := r.client.From("order_items").Insert(ctx, items, nil); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

func (r *orderRepository) ListForUser(ctx context.Context, userID string, limit int) ([]domain.Order, error) {
	q := r.client.From("orders").
		Select("*").
		Eq("user_id", userID).
		Order("created_at", false)
	if limit > 0 {
		q = q.Limit(limit)
	}

	var orders []domain.Order
	err := q.Get(ctx, &orders)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.client.From("orders").
		Select("*").
		Order("created_at", false).
		Limit(limit).
		Get(ctx, &orders)
	if err != nil {
		return nil, fmt.Errorf("list recent orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context) (int, error) {
	n, err := r.client.From("orders").Select("*").Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// TotalAmounts reads every order's total for client-side revenue
// aggregation; the backend offers no aggregate read.
func (r *orderRepository) TotalAmounts(ctx context.Context) ([]float64, error) {
	var rows []struct {
		TotalAmount float64 `json:"total_amount"`
	}
	if err := r.client.From("orders").Select("total_amount").Get(ctx, &rows); err != nil {
		return nil, fmt.Errorf("list order totals: %w", err)
	}

	amounts := make([]float64, len(rows))
	for i, row := range rows {
		amounts[i] = row.TotalAmount
	}
	return amounts, nil
}
