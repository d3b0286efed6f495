// Package generator produces random passwords from character-class pools.
//
// Every character is drawn independently and uniformly from the pool using
// crypto/rand. There is no guarantee that each requested class appears in the
// output: a 4-character password with all classes enabled may well consist of
// lowercase letters only.
package generator

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"passkeeper/internal/common"
)

const (
	Upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lower   = "abcdefghijklmnopqrstuvwxyz"
	Digits  = "0123456789"
	Symbols = "!@#$%^&*()_+~|}{[]:;?><,./-="

	// DefaultLength используется, когда клиент не передал длину.
	DefaultLength = 12
	// MaxLength ограничивает размер ответа.
	MaxLength = 1024
)

// Options задаёт классы символов для генерации.
type Options struct {
	Upper   bool
	Lower   bool
	Digits  bool
	Symbols bool
}

// AllClasses включает все четыре класса.
func AllClasses() Options {
	return Options{Upper: true, Lower: true, Digits: true, Symbols: true}
}

// Pool возвращает объединение выбранных классов. Если ни один класс не выбран,
// используется lower+digits.
func (o Options) Pool() string {
	pool := ""
	if o.Upper {
		pool += Upper
	}
	if o.Lower {
		pool += Lower
	}
	if o.Digits {
		pool += Digits
	}
	if o.Symbols {
		pool += Symbols
	}
	if pool == "" {
		pool = Lower + Digits
	}
	return pool
}

// Generator генерирует пароли из источника случайности rnd.
type Generator struct {
	rnd io.Reader
}

// New создаёт генератор поверх crypto/rand.
func New() *Generator {
	return &Generator{rnd: rand.Reader}
}

// Generate возвращает пароль длины length. length == 0 даёт пустую строку,
// отрицательная длина или больше MaxLength - ErrInvalidLength.
func (g *Generator) Generate(length int, opts Options) (string, error) {
	if length < 0 || length > MaxLength {
		return "", fmt.Errorf("%w: %d", common.ErrInvalidLength, length)
	}
	pool := opts.Pool()
	max := big.NewInt(int64(len(pool)))

	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(g.rnd, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		out[i] = pool[n.Int64()]
	}
	return string(out), nil
}

// Generate - удобная обёртка с позиционными флагами.
func Generate(length int, useUpper, useLower, useDigits, useSymbols bool) (string, error) {
	return New().Generate(length, Options{
		Upper:   useUpper,
		Lower:   useLower,
		Digits:  useDigits,
		Symbols: useSymbols,
	})
}
