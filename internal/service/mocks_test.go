package service

import (
	"context"
	"testing"
	"time"

	"passkeeper/internal/auth"
	"passkeeper/internal/model"
	"passkeeper/internal/repo"
	"passkeeper/internal/vault"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.CredentialRepository
type mockCredRepo struct{ mock.Mock }

func (m *mockCredRepo) Create(ctx context.Context, c *model.Credential) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCredRepo) ExistsByName(ctx context.Context, ownerID, name string) (bool, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockCredRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Credential, error) {
	args := m.Called(ctx, ownerID)
	if v, ok := args.Get(0).([]model.Credential); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCredRepo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Bool(0), args.Error(1)
}

var _ repo.CredentialRepository = (*mockCredRepo)(nil)

// хелперы
func testHasher() auth.Hasher { return auth.BcryptHasher{Cost: bcrypt.MinCost} }

func testTokens(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	ti, err := auth.NewTokenIssuer([]byte("test-signing-secret-0123456789abcdef"), time.Hour)
	require.NoError(t, err)
	return ti
}

func testVault(t *testing.T) *vault.Vault {
	t.Helper()
	v, err := vault.New([]byte("thisis32byteslongsecretkey123456"))
	require.NoError(t, err)
	return v
}
