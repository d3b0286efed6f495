package repo

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"passkeeper/internal/common"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	pgUniqueViolation = "23505"
	pgInvalidText     = "22P02"
)

// isUniqueViolation распознаёт нарушение уникального индекса для обоих драйверов.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		switch code {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
		// без расширенных кодов остаётся только базовый SQLITE_CONSTRAINT
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE")
	}
	return false
}

func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidText
}

// mapError переводит ошибки драйвера в общие категории. Исходная ошибка
// сохраняется в цепочке для логов.
func mapError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, common.ErrTimeout)
	case errors.Is(err, driver.ErrBadConn):
		return fmt.Errorf("%s: %w: %v", op, common.ErrUnavailable, err)
	case isInvalidText(err):
		// строка, которая не разбирается как uuid, не может быть id существующей записи
		return fmt.Errorf("%s: %w: %v", op, common.ErrNotFoundOrUnauthorized, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
