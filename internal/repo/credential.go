package repo

import (
	"context"

	"passkeeper/internal/common"
	"passkeeper/internal/model"

	"gorm.io/gorm"
)

// CredentialRepository - доступ к сохранённым паролям. Все методы работают
// только в пределах владельца ownerID.
type CredentialRepository interface {
	// Create вставляет запись. Повтор (owner_id, name) - common.ErrDuplicateName;
	// проверку выполняет уникальный индекс БД.
	Create(ctx context.Context, c *model.Credential) error

	// ExistsByName - быстрая предварительная проверка имени.
	ExistsByName(ctx context.Context, ownerID, name string) (bool, error)

	// ListByOwner возвращает записи владельца, новые первыми.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Credential, error)

	// Delete удаляет запись по id и владельцу. false - ничего не удалено.
	Delete(ctx context.Context, ownerID, id string) (bool, error)
}

type credentialRepo struct {
	db *gorm.DB
}

// NewCredentialRepository создаёт реализацию репозитория для Credential.
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepo{db: db}
}

func (r *credentialRepo) Create(ctx context.Context, c *model.Credential) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return common.ErrDuplicateName
		}
		return mapError("create credential", err)
	}
	return nil
}

func (r *credentialRepo) ExistsByName(ctx context.Context, ownerID, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Credential{}).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Count(&n).Error
	if err != nil {
		return false, mapError("check credential name", err)
	}
	return n > 0, nil
}

func (r *credentialRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Credential, error) {
	var list []model.Credential
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, mapError("list credentials", err)
	}
	return list, nil
}

func (r *credentialRepo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Credential{})
	if tx.Error != nil {
		return false, mapError("delete credential", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}
