package commands

import (
	"context"
	"errors"
	"fmt"

	"passkeeper/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and log in" }
func (registerCmd) Usage() string       { return "register <name> <email> [password]" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	name, email := args[0], args[1]
	password, err := passwordArg(args, 2, "Password: ")
	if err != nil {
		return err
	}
	if len(args) < 3 {
		confirm, err := readPassword("Repeat password: ")
		if err != nil {
			return err
		}
		if confirm != password {
			return errors.New("passwords do not match")
		}
	}

	token, err := anonymousClient(cfg).Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	if err := saveSession(cfg, email, token); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Registered and logged in as %s\n", email)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
