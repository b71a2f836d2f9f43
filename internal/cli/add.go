package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"financelite/internal/core"
)

type addCmd struct {
	month string
	typ   string
	date  string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add an entry to a month" }
func (*addCmd) Usage() string {
	return `financelite add [-m <month>] [-t <type>] [-d <date>] <title> <amount>

  Adds an entry to the selected month (current month by default) and
  saves it. The amount accepts a comma or dot decimal separator.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to add to (YYYY-MM). Defaults to the current month.")
	f.StringVar(&c.typ, "t", string(core.Variable), "Entry type: income, fixed, card, or variable.")
	f.StringVar(&c.date, "d", "", "Optional date (YYYY-MM-DD), must fall inside the month.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	svc, err := openFor(ctx, c.month)
	if err != nil {
		return fail(err)
	}
	defer svc.Close()

	e, err := svc.AddEntry(ctx, core.EntryType(c.typ), f.Arg(0), f.Arg(1), c.date)
	if err != nil {
		return fail(err)
	}
	if err := svc.SaveCurrentMonth(ctx); err != nil {
		return fail(err)
	}

	fmt.Printf("added %s %q %.2f (id %s)\n", e.Type, e.Title, e.Amount, e.ID)
	return subcommands.ExitSuccess
}
