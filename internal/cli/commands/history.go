package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"passkeeper/internal/config"
)

type historyCmd struct{}

func (historyCmd) Name() string        { return "history" }
func (historyCmd) Description() string { return "Show or clear locally kept generated passwords" }
func (historyCmd) Usage() string       { return "history [clear]" }

func (historyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 || (len(args) == 1 && args[0] != "clear") {
		return ErrUsage
	}
	h, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer h.repo.Close()

	if len(args) == 1 {
		if err := h.repo.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(Out, "History cleared")
		return nil
	}

	entries, err := h.repo.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(Out, "History is empty")
		return nil
	}
	tw := tabwriter.NewWriter(Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCREATED\tSTRENGTH\tPASSWORD")
	for i, e := range entries {
		pw, err := h.vault.Decrypt(e.Secret)
		if err != nil {
			pw = "<unreadable>"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, e.CreatedAt.Local().Format(time.DateTime), e.Strength, pw)
	}
	return tw.Flush()
}

func init() { RegisterCmd(historyCmd{}) }
