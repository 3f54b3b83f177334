package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Abusayem99133/kacha-bazaar/internal/cart"
	"github.com/Abusayem99133/kacha-bazaar/internal/catalog"
	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cart     *cart.Service
	catalog  *catalog.Service
	products repository.ProductRepository
}

func NewCartHandler(cart *cart.Service, catalog *catalog.Service, products repository.ProductRepository) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog, products: products}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartDTO struct {
	Items    []domain.CartItemWithProduct `json:"items"`
	Count    int                          `json:"count"`
	Subtotal float64                      `json:"subtotal"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}

	product, err := h.resolveProduct(r, req.ProductID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.cart.Add(r.Context(), *product, req.Quantity); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, h.snapshot())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}

	if err := h.cart.SetQuantity(r.Context(), itemID, req.Quantity); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	if err := h.cart.Remove(r.Context(), itemID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.snapshot())
}

// resolveProduct prefers the in-memory catalog snapshot (the stock figure
// the user was shown) and falls back to a fresh read.
func (h *CartHandler) resolveProduct(r *http.Request, id string) (*domain.Product, error) {
	if product, ok := h.catalog.Product(id); ok {
		return product, nil
	}
	return h.products.Get(r.Context(), id)
}

func (h *CartHandler) snapshot() CartDTO {
	return CartDTO{
		Items:    h.cart.Items(),
		Count:    h.cart.Count(),
		Subtotal: h.cart.Subtotal(),
	}
}
