// Package common defines the closed error taxonomy shared by the server,
// the storage layer and the CLI client. Callers match values with errors.Is
// and classify them with KindOf.
package common

import (
	"context"
	"errors"
)

// Kind - категория ошибки. Набор закрыт: новые значения не добавляются без
// правки KindOf и маппинга в HTTP-слое.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindConflict
	KindNotFound
	KindCrypto
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindCrypto:
		return "crypto"
	case KindTransient:
		return "transient"
	default:
		return "internal"
	}
}

var (
	// Validation errors.
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidLength = errors.New("invalid length")

	// Auth errors. ErrInvalidCredentials is returned for unknown email and wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")

	// Conflict errors.
	ErrEmailInUse    = errors.New("email already in use")
	ErrDuplicateName = errors.New("credential with this name already exists")

	// Not found, merged with authorization failure for credentials.
	ErrNotFoundOrUnauthorized = errors.New("not found or not authorized")

	// Crypto errors.
	ErrDecryptionFailed = errors.New("decryption failed")

	// Transient errors, retryable by the caller.
	ErrTimeout     = errors.New("operation timed out")
	ErrUnavailable = errors.New("store unavailable")

	// ErrInternal is the fallback for everything that is not classified.
	ErrInternal = errors.New("internal error")
)

// KindOf классифицирует ошибку по закрытому набору категорий.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidLength):
		return KindValidation
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrTokenExpired), errors.Is(err, ErrTokenInvalid):
		return KindAuth
	case errors.Is(err, ErrEmailInUse), errors.Is(err, ErrDuplicateName):
		return KindConflict
	case errors.Is(err, ErrNotFoundOrUnauthorized):
		return KindNotFound
	case errors.Is(err, ErrDecryptionFailed):
		return KindCrypto
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return KindTransient
	default:
		return KindInternal
	}
}

// Code возвращает машиночитаемый код ошибки для ответа клиенту.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenInvalid), errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrEmailInUse):
		return "email_in_use"
	case errors.Is(err, ErrDuplicateName):
		return "duplicate_name"
	case errors.Is(err, ErrNotFoundOrUnauthorized):
		return "not_found"
	case errors.Is(err, ErrDecryptionFailed):
		return "decryption_failed"
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "internal"
	}
}

// PublicMessage возвращает безопасный текст для пользователя. Детали,
// обёрнутые через %w, наружу не попадают.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid input"
	case errors.Is(err, ErrInvalidLength):
		return "invalid password length"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid credentials"
	case errors.Is(err, ErrTokenExpired):
		return "token expired"
	case errors.Is(err, ErrTokenInvalid), errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrEmailInUse):
		return "email already in use"
	case errors.Is(err, ErrDuplicateName):
		return "item with this name already exists"
	case errors.Is(err, ErrNotFoundOrUnauthorized):
		return "item not found or not authorized"
	case errors.Is(err, ErrDecryptionFailed):
		return "stored value could not be decrypted"
	case KindOf(err) == KindTransient:
		return "service temporarily unavailable, try again"
	default:
		return "internal error"
	}
}

// FromCode восстанавливает sentinel по коду из ответа сервера. Неизвестный код
// даёт ErrInternal.
func FromCode(code string) error {
	switch code {
	case "invalid_input":
		return ErrInvalidInput
	case "invalid_length":
		return ErrInvalidLength
	case "invalid_credentials":
		return ErrInvalidCredentials
	case "token_expired":
		return ErrTokenExpired
	case "unauthenticated":
		return ErrUnauthenticated
	case "email_in_use":
		return ErrEmailInUse
	case "duplicate_name":
		return ErrDuplicateName
	case "not_found":
		return ErrNotFoundOrUnauthorized
	case "decryption_failed":
		return ErrDecryptionFailed
	case "timeout":
		return ErrTimeout
	case "unavailable":
		return ErrUnavailable
	default:
		return ErrInternal
	}
}
