package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type monthsCmd struct{}

func (*monthsCmd) Name() string     { return "months" }
func (*monthsCmd) Synopsis() string { return "list months available in the configured backends" }
func (*monthsCmd) Usage() string {
	return `financelite months

  Lists every month found across the configured backends. When no
  backend holds any data, the bundled starter months are listed.
`
}

func (*monthsCmd) SetFlags(*flag.FlagSet) {}

func (c *monthsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, _, err := OpenService(ctx)
	if err != nil {
		return fail(err)
	}
	defer svc.Close()

	listed, err := svc.ListAvailableMonths(ctx)
	if err != nil {
		return fail(err)
	}
	if len(listed) == 0 {
		fmt.Println("no months available")
		return subcommands.ExitSuccess
	}
	for _, lm := range listed {
		entries := 0
		if lm.File != nil {
			entries = len(lm.File.Entries)
		}
		fmt.Printf("%s\t%d entries\n", lm.Label, entries)
	}
	return subcommands.ExitSuccess
}
