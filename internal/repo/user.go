package repo

import (
	"context"

	"passkeeper/internal/common"
	"passkeeper/internal/model"

	"gorm.io/gorm"
)

// UserRepository - доступ к пользователям.
type UserRepository interface {
	// CreateUser сохраняет пользователя. Занятый email - common.ErrEmailInUse.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	// GetUserByEmail ищет пользователя по точному email.
	// Если не найден - gorm.ErrRecordNotFound.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория пользователей.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrEmailInUse
		}
		return nil, mapError("create user", err)
	}
	return user, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, mapError("get user", err)
	}
	return &u, nil
}
