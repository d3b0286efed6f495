package repo

// TokenStore описывает абстракцию хранилища auth-токена на клиенте.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	// Clear удаляет токен и связанный с ним email; отсутствие файлов не ошибка.
	Clear() error
}
