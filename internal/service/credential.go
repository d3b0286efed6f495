package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"passkeeper/internal/common"
	"passkeeper/internal/model"
	"passkeeper/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxNameLength ограничивает имя записи.
const MaxNameLength = 255

// Cipher шифрует секреты перед записью в БД.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(blob string) (string, error)
}

// CredentialView - расшифрованная запись. Если расшифровать не удалось,
// Secret пуст, а Err содержит ошибку common.ErrDecryptionFailed.
type CredentialView struct {
	ID        string
	Name      string
	Secret    string
	CreatedAt time.Time
	Err       error
}

// CredentialService - хранилище паролей пользователя.
type CredentialService struct {
	repo    repo.CredentialRepository
	cipher  Cipher
	logger  *zap.SugaredLogger
	timeout time.Duration
	now     func() time.Time
}

// NewCredentialService создаёт сервис поверх репозитория и шифратора.
func NewCredentialService(r repo.CredentialRepository, c Cipher, logger *zap.SugaredLogger, timeout time.Duration) *CredentialService {
	return &CredentialService{repo: r, cipher: c, logger: logger, timeout: timeout, now: time.Now}
}

// Create шифрует секрет и сохраняет запись. Возвращает сохранённую запись
// с нормализованным именем.
func (s *CredentialService) Create(ctx context.Context, ownerID, name, secret string) (CredentialView, error) {
	name = strings.TrimSpace(name)
	if ownerID == "" {
		return CredentialView{}, common.ErrUnauthenticated
	}
	if name == "" || secret == "" {
		return CredentialView{}, fmt.Errorf("%w: name and password are required", common.ErrInvalidInput)
	}
	if len(name) > MaxNameLength {
		return CredentialView{}, fmt.Errorf("%w: name longer than %d", common.ErrInvalidInput, MaxNameLength)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	exists, err := s.repo.ExistsByName(ctx, ownerID, name)
	if err != nil {
		return CredentialView{}, err
	}
	if exists {
		return CredentialView{}, common.ErrDuplicateName
	}

	blob, err := s.cipher.Encrypt(secret)
	if err != nil {
		return CredentialView{}, fmt.Errorf("encrypt secret: %w", err)
	}

	c := &model.Credential{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Secret:    blob,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return CredentialView{}, err
	}
	s.logger.Infow("credential created", "user_id", ownerID, "id", c.ID)
	return CredentialView{ID: c.ID, Name: c.Name, Secret: secret, CreatedAt: c.CreatedAt}, nil
}

// List возвращает записи владельца, новые первыми. Ошибка расшифровки одной
// записи не прерывает выдачу остальных.
func (s *CredentialService) List(ctx context.Context, ownerID string) ([]CredentialView, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthenticated
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]CredentialView, 0, len(rows))
	for _, r := range rows {
		v := CredentialView{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt}
		secret, err := s.cipher.Decrypt(r.Secret)
		if err != nil {
			s.logger.Warnw("credential decrypt failed", "user_id", ownerID, "id", r.ID, "error", err)
			v.Err = err
		} else {
			v.Secret = secret
		}
		out = append(out, v)
	}
	return out, nil
}

// Delete удаляет запись владельца. Отсутствие записи и чужая запись неразличимы:
// в обоих случаях ErrNotFoundOrUnauthorized.
func (s *CredentialService) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	if ownerID == "" {
		return false, common.ErrUnauthenticated
	}
	// id хранится как uuid; Postgres отвергает любую другую строку ошибкой 22P02
	if _, err := uuid.Parse(id); err != nil {
		return false, common.ErrNotFoundOrUnauthorized
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	ok, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, common.ErrNotFoundOrUnauthorized
	}
	s.logger.Infow("credential deleted", "user_id", ownerID, "id", id)
	return true, nil
}
