package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type saveCmd struct {
	month string
}

func (*saveCmd) Name() string     { return "save" }
func (*saveCmd) Synopsis() string { return "persist a month to the configured backend" }
func (*saveCmd) Usage() string {
	return `financelite save [-m <month>]

  Writes the month's entries to the highest-priority backend.
`
}

func (c *saveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to save (YYYY-MM). Defaults to the current month.")
}

func (c *saveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openFor(ctx, c.month)
	if err != nil {
		return fail(err)
	}
	defer svc.Close()

	if err := svc.SaveCurrentMonth(ctx); err != nil {
		return fail(err)
	}
	fmt.Printf("saved %s\n", svc.CurrentMonth())
	return subcommands.ExitSuccess
}
