package repository

import (
	"context"
	"fmt"

	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/remote"
)

// CartRepository is the gateway to the backend "cart_items" table.
type CartRepository interface {
	ListWithProducts(ctx context.Context, userID string) ([]domain.CartItemWithProduct, error)
	InsertItem(ctx context.Context, userID, productID string, quantity int) error
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	DeleteItem(ctx context.Context, itemID string) error
	DeleteAll(ctx context.Context, userID string) error
}

type cartRepository struct {
	client *remote.Client
}

func NewCartRepository(client *remote.Client) CartRepository {
	return &cartRepository{client: client}
}

// ListWithProducts reads the user's cart rows with the product embedded,
// one round trip for the whole join.
func (r *cartRepository) ListWithProducts(ctx context.Context, userID string) ([]domain.CartItemWithProduct, error) {
	var items []domain.CartItemWithProduct
	err := r.client.From("cart_items").
		Select("*,product:products(*)").
		Eq("user_id", userID).
		Get(ctx, &items)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}

func (r *cartRepository) InsertItem(ctx context.Context, userID, productID string, quantity int) error {
	row := map[string]any{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	}
	if err := r.client.From("cart_items").Insert(ctx, row, nil); err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	patch := map[string]int{"quantity": quantity}
	if err := r.client.From("cart_items").Eq("id", itemID).Update(ctx, patch); err != nil {
		return fmt.Errorf("update cart item %s: %w", itemID, err)
	}
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, itemID string) error {
	if err := r.client.From("cart_items").Eq("id", itemID).Delete(ctx); err != nil {
		return fmt.Errorf("delete cart item %s: %w", itemID, err)
	}
	return nil
}

func (r *cartRepository) DeleteAll(ctx context.Context, userID string) error {
	if err := r.client.From("cart_items").Eq("user_id", userID).Delete(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
