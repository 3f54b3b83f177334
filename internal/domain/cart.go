package domain

import "time"

// CartItem mirrors a row of the backend "cart_items" table. At most one
// row exists per (user, product) pair; the cart service enforces this with
// find-or-update, the backend does not.
type CartItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// CartItemWithProduct is a cart row joined with its product, as returned
// by the embedded-resource read the cart state is rebuilt from.
type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}

// Subtotal is the line price at the product's current snapshot price.
func (c CartItemWithProduct) Subtotal() float64 {
	return c.Product.Price * float64(c.Quantity)
}
