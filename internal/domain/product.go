package domain

import "time"

// Product mirrors a row of the backend "products" table. Rows are created
// and mutated only through the admin surface; stock is decremented when an
// order is placed.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	AdminID     string    `json:"admin_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
