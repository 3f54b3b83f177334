package checkout

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/repository"
)

// Identity is the slice of the session state checkout depends on.
type Identity interface {
	UserID() string
}

// Cart is the slice of the cart state checkout depends on.
type Cart interface {
	Items() []domain.CartItemWithProduct
	Clear(ctx context.Context) error
}

// StockWriter decrements product stock after an order is placed.
type StockWriter interface {
	UpdateStock(ctx context.Context, id string, stock int) error
}

// ShippingForm carries the checkout form fields. Payment is simulated;
// the card fields are validated for presence only and never stored.
type ShippingForm struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCVC    string `json:"card_cvc"`
}

// Validate checks that every field is present.
func (f ShippingForm) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"full_name", f.FullName},
		{"email", f.Email},
		{"address", f.Address},
		{"city", f.City},
		{"state", f.State},
		{"zip_code", f.ZipCode},
		{"card_number", f.CardNumber},
		{"card_expiry", f.CardExpiry},
		{"card_cvc", f.CardCVC},
	}
	for _, field := range fields {
		if field.value == "" {
			return &domain.ValidationError{Field: field.name, Reason: "required"}
		}
	}
	return nil
}

// Service turns the current cart into an order.
type Service struct {
	identity Identity
	cart     Cart
	orders   repository.OrderRepository
	products StockWriter
}

func NewService(identity Identity, cart Cart, orders repository.OrderRepository, products StockWriter) *Service {
	return &Service{
		identity: identity,
		cart:     cart,
		orders:   orders,
		products: products,
	}
}

// PlaceOrder validates the form, writes the order header, then the order
// lines (unit prices frozen at placement), decrements stock and clears
// the cart. The steps are sequential network writes with no compensating
// rollback; a failure mid-way leaves earlier writes in place.
func (s *Service) PlaceOrder(ctx context.Context, form ShippingForm) (*domain.Order, error) {
	userID := s.identity.UserID()
	if userID == "" {
		return nil, domain.ErrNotSignedIn
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Subtotal()
	}

	order, err := s.orders.Insert(ctx, repository.OrderInput{
		UserID:          userID,
		TotalAmount:     subtotal,
		Status:          "completed",
		PaymentIntentID: fmt.Sprintf("demo_%d", time.Now().UnixMilli()),
	})
	if err != nil {
		return nil, err
	}

	lines := make([]repository.OrderItemInput, len(items))
	for i, item := range items {
		lines[i] = repository.OrderItemInput{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		}
	}
	if err := s.orders.InsertItems(ctx, lines); err != nil {
		return nil, err
	}

	for _, item := range items {
		newStock := item.Product.Stock - item.Quantity
		if err := s.products.UpdateStock(ctx, item.ProductID, newStock); err != nil {
			// Stock drift is tolerated; the order itself went through.
			log.Printf("decrement stock for product %s: %v", item.ProductID, err)
		}
	}

	if err := s.cart.Clear(ctx); err != nil {
		log.Printf("clear cart after order %s: %v", order.ID, err)
	}

	return order, nil
}
