package model

import "time"

// Credential - сохранённый пароль пользователя. Пара (OwnerID, Name)
// уникальна, Secret хранится только в зашифрованном виде hex(iv):hex(ct).
type Credential struct {
	ID      string `gorm:"primaryKey;type:uuid"`
	OwnerID string `gorm:"not null;type:uuid;uniqueIndex:idx_credentials_owner_name,priority:1"`

	// Связи
	Owner *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Name   string `gorm:"not null;uniqueIndex:idx_credentials_owner_name,priority:2"`
	Secret string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;index"`
}
