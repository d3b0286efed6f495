package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"passkeeper/internal/cli/api"
	"passkeeper/internal/cli/crypto"
	"passkeeper/internal/cli/repo/fs"
	"passkeeper/internal/cli/repo/sqlite"
	"passkeeper/internal/config"

	"golang.org/x/term"
)

func authStore(cfg *config.Config) fs.AuthFSStore {
	return fs.AuthFSStore{TokenPath: cfg.TokenFile}
}

// anonymousClient - клиент без токена для signup/signin.
func anonymousClient(cfg *config.Config) *api.Client {
	return api.New(cfg.ServerURL, "")
}

// sessionClient - клиент с сохранённым токеном. Без токена - fs.ErrNoSession.
func sessionClient(cfg *config.Config) (*api.Client, error) {
	tok, err := authStore(cfg).Load()
	if err != nil {
		return nil, err
	}
	return api.New(cfg.ServerURL, tok), nil
}

// saveSession сохраняет токен и email после успешного входа.
func saveSession(cfg *config.Config, email, token string) error {
	st := authStore(cfg)
	if err := st.Save(token); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	if err := st.SaveEmail(email); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	return nil
}

// localHistory - локальная история текущего пользователя вместе с его шифратором.
type localHistory struct {
	repo  *sqlite.HistoryRepositorySQLite
	vault interface {
		Encrypt(string) (string, error)
		Decrypt(string) (string, error)
	}
}

func openHistory(cfg *config.Config) (*localHistory, error) {
	email, err := authStore(cfg).LoadEmail()
	if err != nil {
		return nil, err
	}
	dir, err := crypto.UserDir(cfg.ClientDBPath, email)
	if err != nil {
		return nil, err
	}
	v, err := crypto.VaultFor(cfg.ClientDBPath, email)
	if err != nil {
		return nil, err
	}
	r, _, err := sqlite.Open(dir)
	if err != nil {
		return nil, err
	}
	return &localHistory{repo: r, vault: v}, nil
}

// readPassword читает пароль без эха, если stdin - терминал, иначе строку из In.
var readPassword = func(prompt string) (string, error) {
	fmt.Fprint(Out, prompt)
	if f, ok := In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(Out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return readLine(In)
}

// readLine читает одну строку побайтно: буферизованный reader съел бы
// следующие строки ввода.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				break
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				break
			}
			return "", err
		}
	}
	return strings.TrimRight(sb.String(), "\r"), nil
}

// passwordArg берёт пароль из аргументов или спрашивает его.
func passwordArg(args []string, idx int, prompt string) (string, error) {
	if len(args) > idx {
		return args[idx], nil
	}
	pw, err := readPassword(prompt)
	if err != nil {
		return "", err
	}
	if pw == "" {
		return "", errors.New("password must not be empty")
	}
	return pw, nil
}
