package handlers

import (
	"net/http"
	"time"

	"passkeeper/internal/common"
	"passkeeper/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CredentialHandler обрабатывает сохранённые пароли пользователя.
type CredentialHandler struct {
	Store  CredentialStore
	Logger *zap.SugaredLogger
}

// NewCredentialHandler создаёт хендлер записей
func NewCredentialHandler(s CredentialStore, logger *zap.SugaredLogger) *CredentialHandler {
	return &CredentialHandler{Store: s, Logger: logger}
}

type createItemRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type createItemResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemDTO - запись в ответе списка. Если расшифровка не удалась, Password пуст,
// а Error содержит код ошибки.
type ItemDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
	Error     string    `json:"error,omitempty"`
}

// Create сохраняет новую запись
func (h *CredentialHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.Logger, "create item", common.ErrUnauthenticated)
		return
	}
	var req createItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Logger, "create item", err)
		return
	}

	item, err := h.Store.Create(r.Context(), userID, req.Name, req.Password)
	if err != nil {
		writeError(w, h.Logger, "create item", err)
		return
	}
	writeJSON(w, http.StatusCreated, createItemResponse{ID: item.ID, Name: item.Name})
}

// List возвращает записи пользователя, новые первыми
func (h *CredentialHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.Logger, "list items", common.ErrUnauthenticated)
		return
	}

	views, err := h.Store.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.Logger, "list items", err)
		return
	}
	out := make([]ItemDTO, 0, len(views))
	for _, v := range views {
		dto := ItemDTO{ID: v.ID, Name: v.Name, Password: v.Secret, CreatedAt: v.CreatedAt.UTC()}
		if v.Err != nil {
			dto.Error = common.Code(v.Err)
		}
		out = append(out, dto)
	}
	writeJSON(w, http.StatusOK, out)
}

// Delete удаляет запись пользователя по id
func (h *CredentialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.Logger, "delete item", common.ErrUnauthenticated)
		return
	}

	deleted, err := h.Store.Delete(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "delete item", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
