package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/IRedDragonICY/shaum/internal/display"
	"github.com/IRedDragonICY/shaum/rules"
)

func newDaudCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daud [start]",
		Short: "Generate a Daud fasting schedule",
		Long:  "List the fasting dates of the alternate-day Daud practice starting at the\ngiven date (YYYY-MM-DD, default: today). Haram days are handled per the\nconfigured strategy (skip or postpone).",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDaud,
	}

	cmd.Flags().Int("days", 30, "Length of the schedule window in days")

	return cmd
}

func runDaud(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	start, err := parseDateArg(args)
	if err != nil {
		return err
	}

	days, _ := cmd.Flags().GetInt("days")
	if days < 1 {
		return fmt.Errorf("invalid --days %d: must be at least 1", days)
	}
	end := start.AddDate(0, 0, days-1)

	ctx, err := buildContext(cfg)
	if err != nil {
		return err
	}

	loc, err := localizerFor(cfg)
	if err != nil {
		return err
	}

	dates := rules.NewDaudSchedule(start, end, ctx).Dates()

	if FlagJSON {
		out := make([]string, 0, len(dates))
		for _, d := range dates {
			out = append(out, d.Format("2006-01-02"))
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Daud Schedule"))
	fmt.Println()
	fmt.Printf("  %s to %s, %s strategy\n",
		start.Format("02 Jan 2006"), end.Format("02 Jan 2006"), ctx.DaudStrategy)
	fmt.Println()

	table := display.NewTable([]string{"Date", "Weekday", "Hijri"})
	today := time.Now().UTC().Format("2006-01-02")
	for i, d := range dates {
		// The schedule only emits non-Haram days, so re-checking cannot fail
		// under the schedule's lenient evaluation.
		analysis, err := rules.Check(d, ctx)
		hijri := ""
		if err == nil {
			hijri = fmt.Sprintf("%d %s %d", analysis.Hijri.Day, loc.MonthName(analysis.Hijri.Month), analysis.Hijri.Year)
		}
		table.AddRow(d.Format("2006-01-02"), d.Weekday().String(), hijri)
		if d.Format("2006-01-02") == today {
			table.SetHighlightRow(i)
		}
	}
	fmt.Print(table.Render())
	fmt.Println()
	fmt.Printf("  %s\n", display.Dim(fmt.Sprintf("%d fasting days in a %d-day window", len(dates), days)))
	fmt.Println()
	return nil
}
