package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotSignedIn = errors.New("not signed in")
	ErrNotAdmin    = errors.New("admin role required")
	ErrEmptyCart   = errors.New("cart is empty, nothing to checkout")
	ErrNotFound    = errors.New("not found")
)

// ValidationError reports a missing or invalid form field, checked
// client-side before any write is issued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// InsufficientStockError means the requested quantity exceeds the
// last-known stock figure. The check is advisory: it runs against the
// local product snapshot, not a fresh read.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: %d available, %d requested", e.ProductID, e.Available, e.Requested)
}
