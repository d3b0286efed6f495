package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"passkeeper/internal/cli/repo/fs"
	"passkeeper/internal/common"
	"passkeeper/internal/config"
)

// Dispatch is the single entry point to execute CLI commands.
// It prints help and usage messages and returns a process exit code.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	// If user passed global --help after flags parsing, show global usage
	for _, a := range os.Args[1:] {
		if a == "--help" || a == "-h" {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	name := strings.ToLower(args[0])
	if name == "help" { // pkcli help [command]
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
		if c, ok := Get(args[1]); ok {
			fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
			return 0
		}
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[1])
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return 2
	default:
		fmt.Fprintf(Out, "%s error: %s\n", name, describe(err))
		return 1
	}
}

// describe превращает ошибку в подсказку для пользователя.
func describe(err error) string {
	switch {
	case errors.Is(err, fs.ErrNoSession), errors.Is(err, common.ErrUnauthenticated):
		return "not logged in, run `pkcli login <email>`"
	case errors.Is(err, common.ErrTokenExpired):
		return "session expired, run `pkcli login <email>`"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "invalid email or password"
	case errors.Is(err, common.ErrEmailInUse):
		return "email already in use"
	case errors.Is(err, common.ErrDuplicateName):
		return "an item with this name already exists"
	case errors.Is(err, common.ErrNotFoundOrUnauthorized):
		return "item not found"
	case common.KindOf(err) == common.KindTransient:
		return "server unavailable, try again later"
	default:
		return err.Error()
	}
}
