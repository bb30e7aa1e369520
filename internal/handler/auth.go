package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"inkpress/internal/httputil"
	"inkpress/internal/model"
	"inkpress/internal/service"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.Signup(r.Context(), &req)
	if err != nil {
		var vErr *model.ValidationError
		switch {
		case errors.As(err, &vErr):
			httputil.WriteValidationFailed(w, vErr.Errors)
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "Username already taken")
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteConflict(w, "Email already registered")
		default:
			log.Printf("[ERROR] Signup handler: username=%s err=%v", req.Username, err)
			httputil.WriteInternalError(w, "Failed to create account")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteUnauthorized(w, "Invalid email or password")
			return
		}
		log.Printf("[ERROR] Login handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to log in")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}
