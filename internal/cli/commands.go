package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"financelite/internal/core"
	"financelite/internal/services"
	"financelite/internal/store"
)

// Register registers every subcommand on the commander.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "entries")
	c.Register(&removeCmd{}, "entries")
	c.Register(&editCmd{}, "entries")
	c.Register(&listCmd{}, "entries")

	c.Register(&totalsCmd{}, "months")
	c.Register(&monthsCmd{}, "months")
	c.Register(&saveCmd{}, "months")
	c.Register(&importCmd{}, "months")

	c.Register(&shellCmd{}, "session")
}

// openFor opens the service and switches to the month flag when one
// was given.
func openFor(ctx context.Context, month string) (*services.FinanceService, error) {
	svc, _, err := OpenService(ctx)
	if err != nil {
		return nil, err
	}
	if month != "" {
		if err := svc.SwitchMonth(ctx, month); err != nil {
			svc.Close()
			return nil, err
		}
	}
	return svc, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

func printEntries(entries []core.Entry) {
	if len(entries) == 0 {
		fmt.Println("no entries")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tTITLE\tAMOUNT\tDATE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n", e.ID, e.Type, e.Title, e.Amount, e.Date)
	}
	w.Flush()
}

func printTotals(month string, t store.Totals) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Month\t%s\n", month)
	fmt.Fprintf(w, "Income\t%.2f\n", t.Income)
	fmt.Fprintf(w, "Fixed\t%.2f\n", t.Fixed)
	fmt.Fprintf(w, "Card\t%.2f\n", t.Card)
	fmt.Fprintf(w, "Variable\t%.2f\n", t.Variable)
	fmt.Fprintf(w, "Expenses\t%.2f\n", t.Expenses())
	fmt.Fprintf(w, "Net\t%.2f\n", t.NetBalance())
	w.Flush()
}
