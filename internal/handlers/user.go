package handlers

import (
	"fmt"
	"net/http"
	"time"

	"passkeeper/internal/common"
	"passkeeper/internal/middleware"

	"go.uber.org/zap"
)

// UserHandler обрабатывает регистрацию, вход и информацию о пользователе.
type UserHandler struct {
	Auth   AuthService
	Logger *zap.SugaredLogger
}

// NewUserHandler создаёт хендлер пользователей
func NewUserHandler(a AuthService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{Auth: a, Logger: logger}
}

type signupRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword *string `json:"confirmPassword,omitempty"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type meResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Signup регистрирует пользователя и возвращает токен
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Logger, "signup", err)
		return
	}
	if req.ConfirmPassword != nil && *req.ConfirmPassword != req.Password {
		writeError(w, h.Logger, "signup", fmt.Errorf("%w: passwords do not match", common.ErrInvalidInput))
		return
	}

	tok, err := h.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, h.Logger, "signup", err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: tok.Token, ExpiresAt: tok.ExpiresAt})
}

// Signin проверяет пароль и возвращает токен
func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Logger, "signin", err)
		return
	}

	tok, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Logger, "signin", err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: tok.Token, ExpiresAt: tok.ExpiresAt})
}

// Me возвращает данные текущего пользователя из токена
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, h.Logger, "me", common.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{ID: id.Subject, Email: id.Email, Name: id.Name})
}
