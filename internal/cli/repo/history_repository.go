package repo

import (
	"context"
	"time"
)

// HistoryLimit - сколько последних сгенерированных паролей хранится локально.
const HistoryLimit = 20

// HistoryEntry - запись локальной истории. Secret хранится зашифрованным.
type HistoryEntry struct {
	ID        string
	Secret    string
	Strength  string
	CreatedAt time.Time
}

// HistoryRepository - локальная история сгенерированных паролей.
type HistoryRepository interface {
	Add(ctx context.Context, secret, strength string) (string, error)
	List(ctx context.Context) ([]HistoryEntry, error)
	Clear(ctx context.Context) error
	Close() error
}
