package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type totalsCmd struct {
	month string
}

func (*totalsCmd) Name() string     { return "totals" }
func (*totalsCmd) Synopsis() string { return "show a month's totals" }
func (*totalsCmd) Usage() string {
	return `financelite totals [-m <month>]

  Shows per-type totals, total expenses, and the net balance of the
  month.
`
}

func (c *totalsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to aggregate (YYYY-MM). Defaults to the current month.")
}

func (c *totalsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openFor(ctx, c.month)
	if err != nil {
		return fail(err)
	}
	defer svc.Close()

	printTotals(svc.CurrentMonth(), svc.Totals())
	return subcommands.ExitSuccess
}
