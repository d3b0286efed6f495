// Package crypto manages the CLI's per-user local key. Local data is sealed
// with the same AES-256-GCM vault the server uses.
package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"passkeeper/internal/vault"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._@-]`)

// UserDir возвращает каталог пользователя внутри base и создаёт его с правами 0700.
func UserDir(base, email string) (string, error) {
	if email == "" {
		return "", errors.New("empty email for user dir")
	}
	if base == "" {
		return "", errors.New("client db path is not configured")
	}
	safe := unsafeChars.ReplaceAllString(email, "_")
	if safe == "." || safe == ".." {
		return "", fmt.Errorf("invalid email %q", email)
	}
	dir := filepath.Join(base, safe)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

func keyFilePath(base, email string) (string, error) {
	dir, err := UserDir(base, email)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "key.bin"), nil
}

// LoadOrCreateKey загружает существующий ключ пользователя или создаёт новый случайный.
func LoadOrCreateKey(base, email string) ([]byte, error) {
	path, err := keyFilePath(base, email)
	if err != nil {
		return nil, err
	}
	if b, err := os.ReadFile(path); err == nil {
		if len(b) != vault.KeyLen {
			return nil, errors.New("invalid key length")
		}
		return b, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	key := make([]byte, vault.KeyLen)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	// O_EXCL: не перезаписываем ключ, созданный параллельным процессом
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return LoadOrCreateKey(base, email)
		}
		return nil, err
	}
	if _, err := f.Write(key); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return key, nil
}

// VaultFor возвращает шифратор на ключе пользователя.
func VaultFor(base, email string) (*vault.Vault, error) {
	key, err := LoadOrCreateKey(base, email)
	if err != nil {
		return nil, err
	}
	return vault.New(key)
}
