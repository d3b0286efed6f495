package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"passkeeper/internal/cli/repo"
)

// AuthFSStore - файловое хранилище токена и email пользователя для CLI.
// Email хранится рядом с токеном в файле last_email.
type AuthFSStore struct {
	TokenPath string
}

var (
	_ repo.TokenStore       = AuthFSStore{}
	_ repo.UserContextStore = AuthFSStore{}
)

// ErrNoSession - токен не сохранён, нужно выполнить login.
var ErrNoSession = errors.New("not logged in")

func (s AuthFSStore) emailPath() string {
	return filepath.Join(filepath.Dir(s.TokenPath), "last_email")
}

func (s AuthFSStore) write(path, value string) error {
	if s.TokenPath == "" {
		return errors.New("token file path is not configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(value), 0o600)
}

func readTrimmed(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoSession
		}
		return "", err
	}
	v := strings.TrimSpace(string(b))
	if v == "" {
		return "", ErrNoSession
	}
	return v, nil
}

// Save сохраняет auth‑токен в файл с правами 0600.
func (s AuthFSStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	return s.write(s.TokenPath, token)
}

// Load читает auth‑токен из файла.
func (s AuthFSStore) Load() (string, error) {
	return readTrimmed(s.TokenPath)
}

// Clear удаляет токен и email.
func (s AuthFSStore) Clear() error {
	for _, p := range []string{s.TokenPath, s.emailPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// SaveEmail сохраняет email пользователя.
func (s AuthFSStore) SaveEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("empty email")
	}
	return s.write(s.emailPath(), email)
}

// LoadEmail читает email пользователя.
func (s AuthFSStore) LoadEmail() (string, error) {
	return readTrimmed(s.emailPath())
}
