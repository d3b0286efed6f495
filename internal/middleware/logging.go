package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

var sugar = zap.NewNop().Sugar()

// SetLogger задаёт логгер для middleware.
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		sugar = l
	}
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// WithLogging логирует метод, путь, статус, размер ответа и длительность.
// Тела запросов и ответов не логируются: в них пароли.
func WithLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rd := &responseData{status: http.StatusOK}
		lw := loggingResponseWriter{ResponseWriter: w, responseData: rd}
		h.ServeHTTP(&lw, r)

		sugar.Infow("request",
			"method", r.Method,
			"uri", r.URL.Path,
			"status", rd.status,
			"size", rd.size,
			"duration", time.Since(start),
		)
	})
}
