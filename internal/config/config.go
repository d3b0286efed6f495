package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"passkeeper/internal/vault"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// minSecretLen - минимальная длина секрета подписи токенов.
const minSecretLen = 32

type Config struct {
	// Server-side settings
	DatabaseDSN    string        `env:"DATABASE_URI"`
	AuthSecret     string        `env:"AUTH_SECRET"`
	EncryptionKey  string        `env:"ENCRYPTION_KEY"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	PasswordHasher string        `env:"PASSWORD_HASHER" envDefault:"bcrypt"`
	BcryptCost     int           `env:"BCRYPT_COST" envDefault:"10"`
	OpTimeout      time.Duration `env:"OP_TIMEOUT" envDefault:"5s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"development"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL    string `env:"-"`
	ClientDBPath string `env:"CLIENT_DB_PATH"`
	TokenFile    string `env:"TOKEN_FILE"`
	Version      bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают поверх значений из env
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres:// или путь к файлу SQLite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.EncryptionKey, "encryption-key", cfg.EncryptionKey, "ключ шифрования паролей: 64 hex-символа или 32 байта")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "время жизни токена")
	flag.StringVar(&cfg.PasswordHasher, "hasher", cfg.PasswordHasher, "алгоритм хеширования паролей: bcrypt | argon2id")
	flag.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "стоимость bcrypt")
	flag.DurationVar(&cfg.OpTimeout, "op-timeout", cfg.OpTimeout, "таймаут одной операции")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "development | production")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "directory for per-user client databases")
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	// Fill client defaults if empty
	home, _ := os.UserHomeDir()
	if cfg.ClientDBPath == "" {
		cfg.ClientDBPath = filepath.Join(home, ".passkeeper")
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = filepath.Join(home, ".passkeeper", "auth_token")
	}

	return cfg
}

// ValidateServer проверяет секреты сервера. Значений по умолчанию для ключей нет:
// без них сервер не стартует.
func (c *Config) ValidateServer() error {
	var errs []error
	var key []byte
	if c.EncryptionKey == "" {
		errs = append(errs, errors.New("ENCRYPTION_KEY is required"))
	} else if k, err := vault.ParseKey(c.EncryptionKey); err != nil {
		errs = append(errs, fmt.Errorf("ENCRYPTION_KEY must be %d raw bytes or %d hex chars", vault.KeyLen, 2*vault.KeyLen))
	} else {
		key = k
	}
	if len(c.AuthSecret) < minSecretLen {
		errs = append(errs, fmt.Errorf("AUTH_SECRET is required and must be at least %d bytes", minSecretLen))
	}
	// ключ сравниваем в байтах: hex и raw-запись одного ключа совпадают
	if c.AuthSecret != "" && (c.AuthSecret == c.EncryptionKey || bytes.Equal(key, []byte(c.AuthSecret))) {
		errs = append(errs, errors.New("AUTH_SECRET must differ from ENCRYPTION_KEY"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.PasswordHasher == "bcrypt" && (c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost) {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be in [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost))
	}
	return errors.Join(errs...)
}
