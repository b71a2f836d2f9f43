package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"financelite/internal/core"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a month file" }
func (*importCmd) Usage() string {
	return `financelite import <file.json>

  Merges a month file into the store, selects its month, and saves the
  result. Importing the same file twice is a no-op.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	mf, err := core.ParseMonthFile(data)
	if err != nil {
		return fail(fmt.Errorf("parse %s: %w", f.Arg(0), err))
	}

	svc, _, err := OpenService(ctx)
	if err != nil {
		return fail(err)
	}
	defer svc.Close()

	// Merge the backend's copy first so the import resolves against it.
	if err := svc.SwitchMonth(ctx, mf.Month); err != nil {
		return fail(err)
	}
	if err := svc.ImportMonthFile(ctx, *mf); err != nil {
		return fail(err)
	}
	if err := svc.SaveCurrentMonth(ctx); err != nil {
		return fail(err)
	}

	fmt.Printf("imported %s (%d entries)\n", mf.Month, len(mf.Entries))
	return subcommands.ExitSuccess
}
