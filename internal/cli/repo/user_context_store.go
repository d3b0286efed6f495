package repo

// UserContextStore хранит email последнего вошедшего пользователя: по нему
// выбирается локальная база истории и ключ шифрования.
type UserContextStore interface {
	SaveEmail(email string) error
	LoadEmail() (string, error)
}
