package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/service"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register mounts the public login routes.
func (h *AuthHandler) Register(r *mux.Router) {
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/access-code", h.loginWithAccessCode).Methods(http.MethodPost)
}

// RegisterProtected mounts staff management routes that require an
// authenticated admin.
func (h *AuthHandler) RegisterProtected(r *mux.Router) {
	r.HandleFunc("/auth/users", h.createStaffUser).Methods(http.MethodPost)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"user":         user,
	})
}

func (h *AuthHandler) loginWithAccessCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AccessCode string `json:"access_code"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	token, boarder, err := h.auth.LoginWithAccessCode(r.Context(), body.AccessCode)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid access code"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"boarder":      boarder,
	})
}

func (h *AuthHandler) createStaffUser(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	if claims == nil || !domain.UserRole(claims.Role).IsAdmin() {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin access required"})
		return
	}

	var body struct {
		Email    string          `json:"email"`
		Name     string          `json:"name"`
		Password string          `json:"password"`
		Role     domain.UserRole `json:"role"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.auth.CreateStaffUser(r.Context(), body.Email, body.Name, body.Password, body.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}
