package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"financelite/internal/core"
)

type listCmd struct {
	month string
	typ   string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list a month's entries" }
func (*listCmd) Usage() string {
	return `financelite list [-m <month>] [-t <type>]

  Lists the month's entries in creation order, optionally filtered by
  type.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to list (YYYY-MM). Defaults to the current month.")
	f.StringVar(&c.typ, "t", "", "Filter by type: income, fixed, card, or variable.")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openFor(ctx, c.month)
	if err != nil {
		return fail(err)
	}
	defer svc.Close()

	printEntries(svc.EntriesFor(core.EntryType(c.typ)))
	return subcommands.ExitSuccess
}
