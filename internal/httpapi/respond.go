package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/remote"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleServiceError maps the domain error taxonomy to HTTP statuses.
// Remote failures keep their backend status when it is meaningful,
// otherwise surface as a bad gateway.
func handleServiceError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: ve.Error(), Code: "validation_error", Field: ve.Field})
		return
	}

	var se *domain.InsufficientStockError
	if errors.As(err, &se) {
		respondError(w, http.StatusConflict, "insufficient_stock", se.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotSignedIn):
		respondError(w, http.StatusUnauthorized, "unauthorized", "sign in required")
	case errors.Is(err, domain.ErrNotAdmin):
		respondError(w, http.StatusForbidden, "forbidden", "admin role required")
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
	default:
		var re *remote.Error
		if errors.As(err, &re) {
			status := http.StatusBadGateway
			if re.Status >= 400 && re.Status < 500 {
				status = re.Status
			}
			respondError(w, status, "remote_error", re.Message)
			return
		}
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
