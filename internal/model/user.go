package model

import "time"

// User - зарегистрированный пользователь. Email уникален и сравнивается
// с учётом регистра, как сохранён.
type User struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
