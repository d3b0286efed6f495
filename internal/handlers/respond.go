package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"passkeeper/internal/common"

	"go.uber.org/zap"
)

// maxBodyBytes ограничивает размер JSON-тела запроса.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor переводит категорию ошибки в HTTP-статус.
func statusFor(err error) int {
	switch common.KindOf(err) {
	case common.KindValidation:
		return http.StatusBadRequest
	case common.KindAuth:
		return http.StatusUnauthorized
	case common.KindConflict:
		return http.StatusConflict
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindTransient:
		return http.StatusServiceUnavailable
	case common.KindCrypto, common.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// writeError пишет безопасный ответ об ошибке. Подробности уходят только в лог.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Errorw(op+" failed", "kind", common.KindOf(err).String(), "error", err)
	} else {
		logger.Debugw(op+" rejected", "code", common.Code(err), "error", err)
	}
	writeJSON(w, status, errorResponse{Error: common.Code(err), Message: common.PublicMessage(err)})
}

// decodeJSON читает тело запроса в dst. Любая ошибка разбора - ErrInvalidInput.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", common.ErrInvalidInput)
		}
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	return nil
}
