package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IRedDragonICY/shaum/calendar"
	"github.com/IRedDragonICY/shaum/internal/display"
)

func newHijriCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hijri [date]",
		Short: "Convert a Gregorian date to the Hijri calendar",
		Long:  "Convert the given Gregorian date (YYYY-MM-DD, default: today) to its Hijri\nequivalent, applying the configured moon-sighting adjustment.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHijri,
	}
	return cmd
}

func runHijri(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	date, err := parseDateArg(args)
	if err != nil {
		return err
	}

	adjustment := calendar.ClampAdjustment(cfg.AdjustmentOrDefault(0))
	hijri, err := calendar.ToHijri(date, adjustment)
	if err != nil {
		if cfg.Strict {
			return err
		}
		hijri, err = calendar.ToHijri(calendar.ClampToRange(date), adjustment)
		if err != nil {
			return err
		}
	}

	loc, err := localizerFor(cfg)
	if err != nil {
		return err
	}

	if FlagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Gregorian  string `json:"gregorian"`
			Year       int    `json:"hijri_year"`
			Month      int    `json:"hijri_month"`
			Day        int    `json:"hijri_day"`
			MonthName  string `json:"hijri_month_name"`
			Adjustment int    `json:"adjustment"`
		}{
			Gregorian:  date.Format("2006-01-02"),
			Year:       hijri.Year,
			Month:      hijri.Month,
			Day:        hijri.Day,
			MonthName:  loc.MonthName(hijri.Month),
			Adjustment: adjustment,
		})
	}

	fmt.Println()
	fmt.Printf("  %s  %s\n",
		date.Format("Monday, 02 Jan 2006"),
		display.Bold(fmt.Sprintf("%d %s %d AH", hijri.Day, loc.MonthName(hijri.Month), hijri.Year)))
	if adjustment != 0 {
		fmt.Printf("  %s\n", display.Dim(fmt.Sprintf("moon-sighting adjustment: %+d days", adjustment)))
	}
	fmt.Println()
	return nil
}
