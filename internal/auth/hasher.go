package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch - пароль не совпадает с хешем.
var ErrMismatch = errors.New("auth: password does not match hash")

// Hasher хеширует пароли пользователей медленной солёной функцией.
type Hasher interface {
	Hash(password string) (string, error)
	// Compare возвращает ErrMismatch, если пароль не подходит.
	Compare(hash, password string) error
}

// Имена алгоритмов в конфигурации.
const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

// NewHasher выбирает реализацию по имени. cost применяется только к bcrypt.
func NewHasher(name string, cost int) (Hasher, error) {
	switch strings.ToLower(name) {
	case "", HasherBcrypt:
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("auth: bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return BcryptHasher{Cost: cost}, nil
	case HasherArgon2id:
		return DefaultArgon2(), nil
	default:
		return nil, fmt.Errorf("auth: unknown password hasher %q", name)
	}
}

// BcryptHasher - bcrypt с настраиваемой стоимостью.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}

// Argon2Hasher - argon2id, хеш хранится в PHC-формате
// $argon2id$v=19$m=<mem>,t=<time>,p=<threads>$<salt>$<key>.
type Argon2Hasher struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// DefaultArgon2 возвращает параметры, совпадающие с клиентским KDF.
func DefaultArgon2() Argon2Hasher {
	return Argon2Hasher{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}
}

func (h Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, h.Time, h.Memory, h.Threads, h.KeyLen)
	enc := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.Memory, h.Time, h.Threads, enc.EncodeToString(salt), enc.EncodeToString(key)), nil
}

func (h Argon2Hasher) Compare(hash, password string) error {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return errors.New("auth: malformed argon2id hash")
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return errors.New("auth: unsupported argon2 version")
	}
	var mem, iter uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iter, &threads); err != nil {
		return fmt.Errorf("auth: malformed argon2id params: %w", err)
	}
	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("auth: malformed argon2id salt: %w", err)
	}
	want, err := enc.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("auth: malformed argon2id key: %w", err)
	}
	got := argon2.IDKey([]byte(password), salt, iter, mem, threads, uint32(len(want)))
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}
