// Package vault encrypts stored secrets with AES-256-GCM.
//
// A sealed value is serialized as hex(iv) + ":" + hex(ciphertext), where the
// ciphertext carries the GCM tag. The IV is 12 random bytes, fresh per call.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"passkeeper/internal/common"
)

// KeyLen - длина ключа AES-256 в байтах.
const KeyLen = 32

const ivLen = 12

// ErrInvalidKey возвращается для ключа неверной длины или формата.
var ErrInvalidKey = errors.New("vault: encryption key must be 32 bytes (or 64 hex chars)")

// Vault шифрует и расшифровывает значения одним ключом.
type Vault struct {
	aead cipher.AEAD
	rnd  io.Reader
}

// New создаёт Vault. Ключ должен быть ровно 32 байта.
func New(key []byte) (*Vault, error) {
	if len(key) != KeyLen {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCMWithNonceSize(block, ivLen)
	if err != nil {
		return nil, err
	}
	return &Vault{aead: aead, rnd: rand.Reader}, nil
}

// ParseKey разбирает ключ из конфигурации: 64 hex-символа или сырые 32 байта.
func ParseKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) == 2*KeyLen {
		if b, err := hex.DecodeString(s); err == nil {
			return b, nil
		}
	}
	if len(s) == KeyLen {
		return []byte(s), nil
	}
	return nil, ErrInvalidKey
}

// Encrypt шифрует plaintext со свежим случайным IV.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, ivLen)
	if _, err := io.ReadFull(v.rnd, iv); err != nil {
		return "", fmt.Errorf("vault: read iv: %w", err)
	}
	ct := v.aead.Seal(nil, iv, []byte(plaintext), nil)
	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ct), nil
}

// Decrypt разбирает и расшифровывает значение. Любая ошибка формата или
// аутентификации оборачивает common.ErrDecryptionFailed.
func (v *Vault) Decrypt(blob string) (string, error) {
	parts := strings.Split(blob, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("%w: expected 2 segments, got %d", common.ErrDecryptionFailed, len(parts))
	}
	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: iv is not hex", common.ErrDecryptionFailed)
	}
	if len(iv) != ivLen {
		return "", fmt.Errorf("%w: iv length %d", common.ErrDecryptionFailed, len(iv))
	}
	ct, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext is not hex", common.ErrDecryptionFailed)
	}
	if len(ct) < v.aead.Overhead() {
		return "", fmt.Errorf("%w: ciphertext too short", common.ErrDecryptionFailed)
	}
	plain, err := v.aead.Open(nil, iv, ct, nil)
	if err != nil {
		return "", fmt.Errorf("%w: wrong key or tampered data", common.ErrDecryptionFailed)
	}
	return string(plain), nil
}
