package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"passkeeper/internal/auth"
	"passkeeper/internal/common"
	"passkeeper/internal/model"
	"passkeeper/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthToken - выданный токен и момент его истечения.
type AuthToken struct {
	Token     string
	ExpiresAt time.Time
	Identity  auth.Identity
}

// AuthService регистрирует пользователей, проверяет пароли и токены.
type AuthService struct {
	repo    repo.UserRepository
	hasher  auth.Hasher
	tokens  *auth.TokenIssuer
	logger  *zap.SugaredLogger
	timeout time.Duration

	dummyMu   sync.Mutex
	dummyHash string
}

// NewAuthService создаёт сервис. timeout ограничивает каждую операцию.
func NewAuthService(r repo.UserRepository, h auth.Hasher, t *auth.TokenIssuer, logger *zap.SugaredLogger, timeout time.Duration) *AuthService {
	return &AuthService{repo: r, hasher: h, tokens: t, logger: logger, timeout: timeout}
}

// Register создаёт пользователя и сразу выдаёт токен.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (AuthToken, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return AuthToken{}, fmt.Errorf("%w: name, email and password are required", common.ErrInvalidInput)
	}
	if !emailRe.MatchString(email) {
		return AuthToken{}, fmt.Errorf("%w: invalid email format", common.ErrInvalidInput)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	// быстрая проверка; окончательно уникальность гарантирует индекс БД
	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthToken{}, err
	}
	if existing != nil {
		return AuthToken{}, common.ErrEmailInUse
	}

	hash, err := runBounded(ctx, func() (string, error) { return s.hasher.Hash(password) })
	if err != nil {
		return AuthToken{}, err
	}

	u, err := s.repo.CreateUser(ctx, &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return AuthToken{}, err
	}
	s.logger.Infow("user registered", "user_id", u.ID)
	return s.issue(u)
}

// Login проверяет пароль. Неизвестный email и неверный пароль дают одну и ту же
// ошибку ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthToken, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return AuthToken{}, common.ErrInvalidCredentials
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthToken{}, err
	}

	// для неизвестного email сравниваем с фиктивным хешем, чтобы время ответа не отличалось
	var hash string
	if u != nil {
		hash = u.PasswordHash
	} else if hash, err = s.dummy(ctx); err != nil {
		return AuthToken{}, err
	}
	_, cmpErr := runBounded(ctx, func() (struct{}, error) { return struct{}{}, s.hasher.Compare(hash, password) })
	if errors.Is(cmpErr, common.ErrTimeout) {
		return AuthToken{}, cmpErr
	}
	if u == nil || cmpErr != nil {
		return AuthToken{}, common.ErrInvalidCredentials
	}
	return s.issue(u)
}

// Verify проверяет токен: подпись и срок действия.
func (s *AuthService) Verify(token string) (auth.Identity, error) {
	return s.tokens.Verify(token)
}

func (s *AuthService) issue(u *model.User) (AuthToken, error) {
	id := auth.Identity{Subject: u.ID, Email: u.Email, Name: u.Name}
	tok, exp, err := s.tokens.Issue(id)
	if err != nil {
		return AuthToken{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthToken{Token: tok, ExpiresAt: exp, Identity: id}, nil
}

// dummy возвращает фиктивный хеш. Хеш считается в пределах ctx и
// кешируется только после успешного вычисления.
func (s *AuthService) dummy(ctx context.Context) (string, error) {
	s.dummyMu.Lock()
	h := s.dummyHash
	s.dummyMu.Unlock()
	if h != "" {
		return h, nil
	}

	h, err := runBounded(ctx, func() (string, error) { return s.hasher.Hash(uuid.NewString()) })
	if err != nil {
		if !errors.Is(err, common.ErrTimeout) {
			s.logger.Warnw("failed to prepare dummy hash", "error", err)
			err = fmt.Errorf("prepare dummy hash: %w", err)
		}
		return "", err
	}

	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()
	if s.dummyHash == "" {
		s.dummyHash = h
	}
	return s.dummyHash, nil
}
