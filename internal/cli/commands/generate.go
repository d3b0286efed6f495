package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"passkeeper/internal/cli/repo/fs"
	"passkeeper/internal/config"
	"passkeeper/internal/generator"
)

type generateCmd struct{}

func (generateCmd) Name() string        { return "generate" }
func (generateCmd) Description() string { return "Generate a random password (optionally save it)" }
func (generateCmd) Usage() string {
	return "generate [-length N] [-upper=false] [-lower=false] [-digits=false] [-symbols=false] [-save <name>]"
}

func (generateCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fset := flag.NewFlagSet("generate", flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	length := fset.Int("length", generator.DefaultLength, "password length")
	opts := generator.AllClasses()
	fset.BoolVar(&opts.Upper, "upper", opts.Upper, "include A-Z")
	fset.BoolVar(&opts.Lower, "lower", opts.Lower, "include a-z")
	fset.BoolVar(&opts.Digits, "digits", opts.Digits, "include 0-9")
	fset.BoolVar(&opts.Symbols, "symbols", opts.Symbols, "include symbols")
	saveAs := fset.String("save", "", "store the password on the server under this name")
	if err := fset.Parse(args); err != nil || fset.NArg() > 0 {
		return ErrUsage
	}

	pw, err := generator.New().Generate(*length, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, pw)
	strength := generator.Strength(pw)
	fmt.Fprintf(Out, "Strength: %s (score %d)\n", strength, generator.Score(pw))

	// история ведётся только для вошедшего пользователя
	if h, err := openHistory(cfg); err == nil {
		defer h.repo.Close()
		blob, err := h.vault.Encrypt(pw)
		if err == nil {
			_, err = h.repo.Add(ctx, blob, string(strength))
		}
		if err != nil {
			fmt.Fprintf(Out, "warning: password not added to history: %v\n", err)
		}
	} else if !errors.Is(err, fs.ErrNoSession) {
		fmt.Fprintf(Out, "warning: history unavailable: %v\n", err)
	}

	if *saveAs != "" {
		c, err := sessionClient(cfg)
		if err != nil {
			return err
		}
		id, err := c.CreateCredential(ctx, *saveAs, pw)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Saved %q (id %s)\n", *saveAs, id)
	}
	return nil
}

func init() { RegisterCmd(generateCmd{}) }
