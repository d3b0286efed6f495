package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"passkeeper/internal/cli/repo"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// HistoryRepositorySQLite - локальная история сгенерированных паролей (SQLite).
type HistoryRepositorySQLite struct {
	db    *sql.DB
	limit int
	now   func() time.Time
}

var _ repo.HistoryRepository = (*HistoryRepositorySQLite)(nil)

// Open открывает (и создаёт при необходимости) файл БД в каталоге пользователя
// и применяет миграции. Вторым значением возвращается путь к БД.
func Open(userDir string) (*HistoryRepositorySQLite, string, error) {
	dbPath := filepath.Join(userDir, "client.sqlite")
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, "", err
	}
	r := &HistoryRepositorySQLite{db: db, limit: repo.HistoryLimit, now: time.Now}
	if err := r.Migrate(); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("migrate client db: %w", err)
	}
	return r, dbPath, nil
}

// Close закрывает соединение с БД.
func (r *HistoryRepositorySQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Migrate гарантирует наличие необходимых таблиц/индексов.
func (r *HistoryRepositorySQLite) Migrate() error {
	_, err := r.db.Exec(initDDL)
	return err
}

// Add сохраняет уже зашифрованный пароль и обрезает историю до лимита.
func (r *HistoryRepositorySQLite) Add(ctx context.Context, secret, strength string) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO history(id, secret, strength, created_at) VALUES(?, ?, ?, ?)`,
		id, secret, strength, r.now().UnixNano(),
	); err != nil {
		return "", err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM history WHERE id NOT IN (
        SELECT id FROM history ORDER BY created_at DESC, id DESC LIMIT ?)`, r.limit); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// List возвращает историю, новые первыми.
func (r *HistoryRepositorySQLite) List(ctx context.Context) ([]repo.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, secret, strength, created_at FROM history ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []repo.HistoryEntry
	for rows.Next() {
		var e repo.HistoryEntry
		var ts int64
		if err := rows.Scan(&e.ID, &e.Secret, &e.Strength, &ts); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(0, ts)
		res = append(res, e)
	}
	return res, rows.Err()
}

// Clear удаляет всю историю.
func (r *HistoryRepositorySQLite) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}
