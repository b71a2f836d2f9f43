package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"financelite/internal/core"
	"financelite/internal/services"
)

type shellCmd struct {
	month string
}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "interactive session with autosave" }
func (*shellCmd) Usage() string {
	return `financelite shell [-m <month>]

  Starts an interactive session. Dirty months are flushed periodically
  and on exit; the prompt shows * while unsaved changes exist.
`
}

func (c *shellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to start in (YYYY-MM). Defaults to the current month.")
}

func (c *shellCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, cfg, err := OpenService(ctx)
	if err != nil {
		return fail(err)
	}
	defer svc.Close()

	if c.month != "" {
		if err := svc.SwitchMonth(ctx, c.month); err != nil {
			return fail(err)
		}
	}

	saver := services.NewAutosaver(svc, services.AutosaverConfig{Interval: cfg.AutosaveInterval})
	if err := saver.Start(ctx); err != nil {
		return fail(err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := saver.Stop(stopCtx); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}()

	fmt.Println("type 'help' for commands, 'quit' to exit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt(svc))
		if !scanner.Scan() {
			fmt.Println()
			return subcommands.ExitSuccess
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return subcommands.ExitSuccess
		}
		if err := c.dispatch(ctx, svc, line); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
}

func prompt(svc *services.FinanceService) string {
	mark := ""
	if svc.Dirty() {
		mark = "*"
	}
	return fmt.Sprintf("%s%s> ", svc.CurrentMonth(), mark)
}

func (c *shellCmd) dispatch(ctx context.Context, svc *services.FinanceService, line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Print(`  add <type> <amount> [date] <title...>   add an entry
  rm <id>                                 remove an entry
  list [type]                             list entries
  totals                                  show totals
  month <YYYY-MM>                         switch month
  months                                  list available months
  save                                    save the current month now
  quit                                    exit (flushes unsaved months)
`)
		return nil

	case "add":
		if len(args) < 3 {
			return fmt.Errorf("usage: add <type> <amount> [date] <title...>")
		}
		typ := core.EntryType(args[0])
		amount := args[1]
		rest := args[2:]
		date := ""
		if core.ValidDate(rest[0], svc.CurrentMonth()) {
			date = rest[0]
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return fmt.Errorf("usage: add <type> <amount> [date] <title...>")
		}
		e, err := svc.AddEntry(ctx, typ, strings.Join(rest, " "), amount, date)
		if err != nil {
			return err
		}
		fmt.Printf("added %s %q %.2f (id %s)\n", e.Type, e.Title, e.Amount, e.ID)
		return nil

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: rm <id>")
		}
		svc.RemoveEntry(ctx, args[0])
		fmt.Printf("removed %s\n", args[0])
		return nil

	case "list":
		typ := core.EntryType("")
		if len(args) == 1 {
			typ = core.EntryType(args[0])
		}
		printEntries(svc.EntriesFor(typ))
		return nil

	case "totals":
		printTotals(svc.CurrentMonth(), svc.Totals())
		return nil

	case "month":
		if len(args) != 1 {
			return fmt.Errorf("usage: month <YYYY-MM>")
		}
		return svc.SwitchMonth(ctx, args[0])

	case "months":
		listed, err := svc.ListAvailableMonths(ctx)
		if err != nil {
			return err
		}
		for _, lm := range listed {
			fmt.Println(lm.Label)
		}
		return nil

	case "save":
		if err := svc.SaveCurrentMonth(ctx); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", svc.CurrentMonth())
		return nil

	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
}
