package domain

import "time"

// Order mirrors a row of the backend "orders" table. TotalAmount is frozen
// at placement time and never recomputed from lines.
type Order struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	TotalAmount     float64   `json:"total_amount"`
	Status          string    `json:"status"`
	PaymentIntentID string    `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// OrderItem snapshots product id, quantity and unit price at order time,
// decoupled from later product price changes.
type OrderItem struct {
	ID        string    `json:"id,omitempty"`
	OrderID   string    `json:"order_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
