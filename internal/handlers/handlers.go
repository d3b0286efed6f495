package handlers

import (
	"context"
	"net/http"

	"passkeeper/internal/auth"
	"passkeeper/internal/generator"
	"passkeeper/internal/middleware"
	"passkeeper/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// AuthService - регистрация, вход и проверка токена.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (service.AuthToken, error)
	Login(ctx context.Context, email, password string) (service.AuthToken, error)
	Verify(token string) (auth.Identity, error)
}

// CredentialStore - зашифрованные записи пользователя.
type CredentialStore interface {
	Create(ctx context.Context, ownerID, name, secret string) (service.CredentialView, error)
	List(ctx context.Context, ownerID string) ([]service.CredentialView, error)
	Delete(ctx context.Context, ownerID, id string) (bool, error)
}

// PasswordGenerator генерирует пароли по набору классов символов.
type PasswordGenerator interface {
	Generate(length int, opts generator.Options) (string, error)
}

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	authService AuthService,
	credentialStore CredentialStore,
	gen PasswordGenerator,
	logger *zap.SugaredLogger,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(authService))

	// Handlers
	userHandler := NewUserHandler(authService, logger)
	credentialHandler := NewCredentialHandler(credentialStore, logger)
	generatorHandler := NewGeneratorHandler(gen, logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public routes
	r.Post("/api/signup", userHandler.Signup)
	r.Post("/api/signin", userHandler.Signin)
	r.Get("/api/password/generate", generatorHandler.Generate)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/api/me", userHandler.Me)
		r.Post("/api/item", credentialHandler.Create)
		r.Get("/api/items", credentialHandler.List)
		r.Delete("/api/item/{id}", credentialHandler.Delete)
	})

	return &Handler{Router: r}
}
