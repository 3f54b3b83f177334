package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Abusayem99133/kacha-bazaar/internal/checkout"
	"github.com/Abusayem99133/kacha-bazaar/internal/repository"
	"github.com/Abusayem99133/kacha-bazaar/internal/session"
)

type CheckoutHandler struct {
	checkout *checkout.Service
	orders   repository.OrderRepository
	session  *session.Service
}

func NewCheckoutHandler(checkout *checkout.Service, orders repository.OrderRepository, session *session.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, orders: orders, session: session}
}

const userOrdersLimit = 5

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var form checkout.ShippingForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), form)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// ListOrders serves the signed-in user's most recent orders.
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := h.session.UserID()
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}

	orders, err := h.orders.ListForUser(r.Context(), userID, userOrdersLimit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}
