package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"passkeeper/internal/auth"
	"passkeeper/internal/generator"
	"passkeeper/internal/handlers"
	"passkeeper/internal/repo"
	"passkeeper/internal/service"
	"passkeeper/internal/vault"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "handlers-test-signing-secret-0123456789"

// newTestServer поднимает роутер поверх настоящих сервисов и in-memory SQLite.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	tokens, err := auth.NewTokenIssuer([]byte(testSecret), time.Hour)
	require.NoError(t, err)
	v, err := vault.New([]byte("thisis32byteslongsecretkey123456"))
	require.NoError(t, err)

	log := zap.NewNop().Sugar()
	authSvc := service.NewAuthService(repo.NewUserRepository(db), auth.BcryptHasher{Cost: bcrypt.MinCost}, tokens, log, 5*time.Second)
	credSvc := service.NewCredentialService(repo.NewCredentialRepository(db), v, log, 5*time.Second)

	h := handlers.NewHandler(authSvc, credSvc, generator.New(), log)
	srv := httptest.NewServer(h.Router)
	t.Cleanup(srv.Close)
	return srv
}

// do отправляет JSON-запрос и возвращает статус и разобранное тело.
func do(t *testing.T, srv *httptest.Server, method, path, token string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type errBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// моки сервисов для проверки маппинга ошибок
type mockAuth struct{ mock.Mock }

func (m *mockAuth) Register(ctx context.Context, name, email, password string) (service.AuthToken, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(service.AuthToken), args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (service.AuthToken, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(service.AuthToken), args.Error(1)
}

func (m *mockAuth) Verify(token string) (auth.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(auth.Identity), args.Error(1)
}

var _ handlers.AuthService = (*mockAuth)(nil)

type mockStore struct{ mock.Mock }

func (m *mockStore) Create(ctx context.Context, ownerID, name, secret string) (service.CredentialView, error) {
	args := m.Called(ctx, ownerID, name, secret)
	return args.Get(0).(service.CredentialView), args.Error(1)
}

func (m *mockStore) List(ctx context.Context, ownerID string) ([]service.CredentialView, error) {
	args := m.Called(ctx, ownerID)
	if v, ok := args.Get(0).([]service.CredentialView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Bool(0), args.Error(1)
}

var _ handlers.CredentialStore = (*mockStore)(nil)

func newMockRouter(a *mockAuth, s *mockStore) http.Handler {
	return handlers.NewHandler(a, s, generator.New(), zap.NewNop().Sugar()).Router
}
