package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"passkeeper/internal/auth"
	"passkeeper/internal/common"
)

// TokenVerifier проверяет bearer-токен.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

type ctxKey int

const (
	identityKey ctxKey = iota
	authErrKey
)

// WithAuth разбирает заголовок Authorization: Bearer <token>. При успехе
// личность пользователя кладётся в контекст; иначе запрос идёт дальше
// анонимным, а причина отказа сохраняется для RequireAuth.
func WithAuth(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			id, err := v.Verify(token)
			ctx := r.Context()
			if err != nil {
				ctx = context.WithValue(ctx, authErrKey, err)
			} else {
				ctx = context.WithValue(ctx, identityKey, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth отвечает 401, если в контексте нет проверенной личности.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentityFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		err := common.ErrUnauthenticated
		if e, ok := r.Context().Value(authErrKey).(error); ok && errors.Is(e, common.ErrTokenExpired) {
			err = common.ErrTokenExpired
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("WWW-Authenticate", `Bearer realm="passkeeper"`)
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   common.Code(err),
			"message": common.PublicMessage(err),
		})
	})
}

// GetIdentityFromContext возвращает пользователя, установленного WithAuth.
func GetIdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok && id.Subject != ""
}

// GetUserIDFromContext - короткая форма для id пользователя.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := GetIdentityFromContext(ctx)
	return id.Subject, ok
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
