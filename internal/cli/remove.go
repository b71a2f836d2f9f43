package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type removeCmd struct {
	month string
}

func (*removeCmd) Name() string     { return "rm" }
func (*removeCmd) Synopsis() string { return "remove an entry by id" }
func (*removeCmd) Usage() string {
	return `financelite rm [-m <month>] <id>

  Removes the entry with the given id and saves the month. Removing an
  unknown id is a no-op.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to remove from (YYYY-MM). Defaults to the current month.")
}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	svc, err := openFor(ctx, c.month)
	if err != nil {
		return fail(err)
	}
	defer svc.Close()

	svc.RemoveEntry(ctx, f.Arg(0))
	if err := svc.SaveCurrentMonth(ctx); err != nil {
		return fail(err)
	}

	fmt.Printf("removed %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}
