package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IRedDragonICY/shaum/internal/display"
	"github.com/IRedDragonICY/shaum/rules"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [date]",
		Short: "Show the fasting status of a date",
		Long:  "Evaluate the fasting status (hukum) of a Gregorian date (YYYY-MM-DD,\ndefault: today) and print the reasons behind it.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}

	cmd.Flags().Bool("explain", false, "Print the full rule trace")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	date, err := parseDateArg(args)
	if err != nil {
		return err
	}

	ctx, err := buildContext(cfg)
	if err != nil {
		return err
	}

	loc, err := localizerFor(cfg)
	if err != nil {
		return err
	}

	analysis, err := rules.Check(date, ctx)
	if err != nil {
		return err
	}
	logTraces(analysis)

	if FlagJSON {
		return printTodayJSON(analysis, nil, loc)
	}

	fmt.Println()
	fmt.Printf("  %s  (%d %s %d AH)\n",
		display.Bold(analysis.Date.Format("Monday, 02 Jan 2006")),
		analysis.Hijri.Day, loc.MonthName(analysis.Hijri.Month), analysis.Hijri.Year)
	fmt.Println()
	fmt.Printf("  %s\n", display.Status(analysis.Status, loc.StatusName(analysis.Status)))
	for _, t := range analysis.Types {
		fmt.Printf("  %s %s\n", display.Dim("-"), loc.TypeName(t))
	}

	if explain, _ := cmd.Flags().GetBool("explain"); explain {
		fmt.Println()
		fmt.Printf("  %s\n", display.Dim(analysis.Explain()))
	}

	fmt.Println()
	return nil
}
