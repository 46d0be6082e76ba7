package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/IRedDragonICY/shaum/astro"
	"github.com/IRedDragonICY/shaum/i18n"
	"github.com/IRedDragonICY/shaum/internal/display"
	"github.com/IRedDragonICY/shaum/rules"
)

// runToday is the root command action: today's fasting status, Hijri date
// and, when a coordinate is available, the fast boundaries.
func runToday(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	ctx, err := buildContext(cfg)
	if err != nil {
		return err
	}

	loc, err := localizerFor(cfg)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	coords := resolveCoordinate(cfg)

	analysis, err := rules.Analyze(now, ctx, coords)
	if err != nil {
		return err
	}
	logTraces(analysis)

	var times *astro.PrayerTimes
	if coords != nil {
		pt, err := astro.CalculatePrayerTimes(analysis.Date, *coords, cfg.PresetValue())
		if err != nil {
			logger.Debug().Err(err).Msg("fast boundaries unavailable")
		} else {
			times = &pt
		}
	}

	if FlagJSON {
		return printTodayJSON(analysis, times, loc)
	}

	printTodayRich(analysis, times, loc, timeLayout(cfg))
	return nil
}

// printTodayRich renders the colored terminal output.
func printTodayRich(a *rules.FastingAnalysis, times *astro.PrayerTimes, loc i18n.Localizer, layout string) {
	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Fasting Status"))
	fmt.Println()

	fmt.Printf("  %s\n", a.Date.Format("Monday, 02 Jan 2006"))
	fmt.Printf("  %d %s %d AH\n", a.Hijri.Day, loc.MonthName(a.Hijri.Month), a.Hijri.Year)
	fmt.Println()

	fmt.Printf("  %s\n", display.Status(a.Status, loc.StatusName(a.Status)))
	for _, t := range a.Types {
		fmt.Printf("  %s %s\n", display.Dim("-"), loc.TypeName(t))
	}

	if times != nil {
		fmt.Println()
		fmt.Printf("  %s  %s\n", display.Gray("Imsak  "), times.Imsak.Format(layout))
		fmt.Printf("  %s  %s\n", display.Gray("Fajr   "), times.Fajr.Format(layout))
		fmt.Printf("  %s  %s\n", display.Gray("Maghrib"), times.Maghrib.Format(layout))
		fmt.Printf("  %s\n", display.Dim("times in UTC; see `shaum times` for details"))
	}

	fmt.Println()
}

// todayJSON is the JSON output structure for the root and check commands.
type todayJSON struct {
	Date        string   `json:"date"`
	Hijri       string   `json:"hijri"`
	HijriYear   int      `json:"hijri_year"`
	HijriMonth  int      `json:"hijri_month"`
	HijriDay    int      `json:"hijri_day"`
	Status      string   `json:"status"`
	Reasons     []string `json:"reasons"`
	Description string   `json:"description"`
	Imsak       string   `json:"imsak,omitempty"`
	Fajr        string   `json:"fajr,omitempty"`
	Maghrib     string   `json:"maghrib,omitempty"`
}

func printTodayJSON(a *rules.FastingAnalysis, times *astro.PrayerTimes, loc i18n.Localizer) error {
	out := todayJSON{
		Date:        a.Date.Format("2006-01-02"),
		Hijri:       a.Hijri.String(),
		HijriYear:   a.Hijri.Year,
		HijriMonth:  a.Hijri.Month,
		HijriDay:    a.Hijri.Day,
		Status:      a.Status.String(),
		Reasons:     make([]string, 0, len(a.Types)),
		Description: loc.Describe(a),
	}
	for _, t := range a.Types {
		out.Reasons = append(out.Reasons, string(t))
	}
	if times != nil {
		out.Imsak = times.Imsak.Format(time.RFC3339)
		out.Fajr = times.Fajr.Format(time.RFC3339)
		out.Maghrib = times.Maghrib.Format(time.RFC3339)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
