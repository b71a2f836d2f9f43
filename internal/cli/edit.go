package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type editCmd struct {
	month  string
	title  string
	amount string
	date   string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit fields of an entry" }
func (*editCmd) Usage() string {
	return `financelite edit [-m <month>] [-title <t>] [-amount <a>] [-date <d>] <id>

  Patches the given fields of an entry; omitted flags keep the current
  value. Editing an unknown id is a no-op.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month the entry lives in (YYYY-MM). Defaults to the current month.")
	f.StringVar(&c.title, "title", "", "New title.")
	f.StringVar(&c.amount, "amount", "", "New amount, comma or dot decimal separator.")
	f.StringVar(&c.date, "date", "", "New date (YYYY-MM-DD).")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	svc, err := openFor(ctx, c.month)
	if err != nil {
		return fail(err)
	}
	defer svc.Close()

	var title, amount, date *string
	if c.title != "" {
		title = &c.title
	}
	if c.amount != "" {
		amount = &c.amount
	}
	if c.date != "" {
		date = &c.date
	}
	if title == nil && amount == nil && date == nil {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	if err := svc.UpdateEntry(ctx, f.Arg(0), title, amount, date); err != nil {
		return fail(err)
	}
	if err := svc.SaveCurrentMonth(ctx); err != nil {
		return fail(err)
	}

	fmt.Printf("edited %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}
