package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Abusayem99133/kacha-bazaar/internal/domain"
	"github.com/Abusayem99133/kacha-bazaar/internal/remote"
	"github.com/Abusayem99133/kacha-bazaar/internal/session"
)

type AuthHandler struct {
	session *session.Service
}

func NewAuthHandler(session *session.Service) *AuthHandler {
	return &AuthHandler{session: session}
}

type SignInRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequestDTO struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type SessionDTO struct {
	User    *remote.User        `json:"user"`
	Profile *domain.UserProfile `json:"profile"`
	IsAdmin bool                `json:"is_admin"`
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.session.SignIn(r.Context(), req.Email, req.Password); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.snapshot())
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	err := h.session.SignUp(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, h.snapshot())
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.session.SignOut(r.Context()); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.snapshot())
}

func (h *AuthHandler) GetSession(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.snapshot())
}

func (h *AuthHandler) snapshot() SessionDTO {
	return SessionDTO{
		User:    h.session.User(),
		Profile: h.session.Profile(),
		IsAdmin: h.session.IsAdmin(),
	}
}
