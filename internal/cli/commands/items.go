package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"passkeeper/internal/config"
)

type addCmd struct{}

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "Store a named password on the server" }
func (addCmd) Usage() string       { return "add <name> [password]" }

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		return ErrUsage
	}
	c, err := sessionClient(cfg)
	if err != nil {
		return err
	}
	password, err := passwordArg(args, 1, "Password to store: ")
	if err != nil {
		return err
	}
	id, err := c.CreateCredential(ctx, args[0], password)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Saved %q (id %s)\n", args[0], id)
	return nil
}

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "List stored passwords, newest first" }
func (listCmd) Usage() string       { return "list [-hide]" }

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fset := flag.NewFlagSet("list", flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	hide := fset.Bool("hide", false, "mask passwords")
	if err := fset.Parse(args); err != nil || fset.NArg() > 0 {
		return ErrUsage
	}

	c, err := sessionClient(cfg)
	if err != nil {
		return err
	}
	items, err := c.ListCredentials(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(Out, "No items")
		return nil
	}

	tw := tabwriter.NewWriter(Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPASSWORD\tCREATED")
	for _, it := range items {
		pw := it.Password
		switch {
		case it.Error != "":
			pw = "<unreadable: " + it.Error + ">"
		case *hide:
			pw = strings.Repeat("*", 8)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID, it.Name, pw, it.CreatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "Delete a stored password by id" }
func (deleteCmd) Usage() string       { return "delete <id>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	c, err := sessionClient(cfg)
	if err != nil {
		return err
	}
	if err := c.DeleteCredential(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Deleted")
	return nil
}

func init() {
	RegisterCmd(addCmd{})
	RegisterCmd(listCmd{})
	RegisterCmd(deleteCmd{})
}
