package commands

import (
	"context"
	"fmt"

	"passkeeper/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth token" }
func (loginCmd) Usage() string       { return "login <email> [password]" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	email := args[0]
	password, err := passwordArg(args, 1, "Password: ")
	if err != nil {
		return err
	}

	token, err := anonymousClient(cfg).Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := saveSession(cfg, email, token); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored auth token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, _ []string) error {
	if err := authStore(cfg).Clear(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
}
