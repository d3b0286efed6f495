package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"passkeeper/internal/auth"
	"passkeeper/internal/config"
	"passkeeper/internal/generator"
	"passkeeper/internal/handlers"
	"passkeeper/internal/repo"
	"passkeeper/internal/service"
	"passkeeper/internal/vault"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// newTestConfig поднимает настоящий сервер на in-memory SQLite и возвращает
// конфиг клиента, у которого токен и база лежат во временном каталоге.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	tokens, err := auth.NewTokenIssuer([]byte("commands-test-signing-secret-0123456789"), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	v, err := vault.New([]byte("thisis32byteslongsecretkey123456"))
	if err != nil {
		t.Fatal(err)
	}
	log := zap.NewNop().Sugar()
	h := handlers.NewHandler(
		service.NewAuthService(repo.NewUserRepository(db), auth.BcryptHasher{Cost: bcrypt.MinCost}, tokens, log, 5*time.Second),
		service.NewCredentialService(repo.NewCredentialRepository(db), v, log, 5*time.Second),
		generator.New(),
		log,
	)
	srv := httptest.NewServer(h.Router)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	return &config.Config{
		ServerURL:    srv.URL,
		TokenFile:    filepath.Join(dir, "auth_token"),
		ClientDBPath: filepath.Join(dir, "db"),
	}
}

// captureIO подменяет Out и In на время теста.
func captureIO(t *testing.T, input string) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	prevOut, prevIn := Out, In
	Out, In = &out, strings.NewReader(input)
	t.Cleanup(func() { Out, In = prevOut, prevIn })
	return &out
}

// run выполняет команду через Dispatch и возвращает код выхода.
func run(t *testing.T, cfg *config.Config, args ...string) int {
	t.Helper()
	return Dispatch(context.Background(), cfg, args)
}

