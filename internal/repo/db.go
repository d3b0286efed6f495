package repo

import (
	"fmt"
	"strings"

	"passkeeper/internal/model"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// DefaultSQLiteDSN используется, если DATABASE_URI не задан.
const DefaultSQLiteDSN = "file:passkeeper.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// InitDB открывает БД по строке подключения и применяет миграции.
// postgres:// и DSN вида "host=..." открываются через pgx, всё остальное
// считается путём к файлу SQLite (драйвер modernc.org/sqlite).
func InitDB(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(dialectorFor(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate создаёт таблицы users и credentials вместе с уникальными индексами.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Credential{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func dialectorFor(dsn string) gorm.Dialector {
	switch {
	case isPostgresDSN(dsn):
		return postgres.Open(dsn)
	case dsn == "":
		return gormsqlite.Dialector{DriverName: "sqlite", DSN: DefaultSQLiteDSN}
	default:
		return gormsqlite.Dialector{DriverName: "sqlite", DSN: withSQLitePragmas(dsn)}
	}
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// withSQLitePragmas включает внешние ключи: без них ON DELETE CASCADE в SQLite не работает.
func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
