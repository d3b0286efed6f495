package commands

import (
	"context"
	"fmt"

	"passkeeper/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show the logged-in user" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, _ []string) error {
	c, err := sessionClient(cfg)
	if err != nil {
		return err
	}
	me, err := c.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Logged in as %s <%s>\nServer: %s\n", me.Name, me.Email, cfg.ServerURL)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
