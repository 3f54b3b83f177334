package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Abusayem99133/kacha-bazaar/internal/admin"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	admin *admin.Service
}

func NewAdminHandler(admin *admin.Service) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) RecentProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.admin.RecentProducts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *AdminHandler) RecentOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.admin.RecentOrders(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var form admin.ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.admin.CreateProduct(r.Context(), form)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var form admin.ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.admin.UpdateProduct(r.Context(), id, form); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.admin.DeleteProduct(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
