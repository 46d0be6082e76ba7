package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/IRedDragonICY/shaum/astro"
	"github.com/IRedDragonICY/shaum/internal/api"
	"github.com/IRedDragonICY/shaum/internal/display"
)

func newTimesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "times [date]",
		Short: "Show imsak, fajr and maghrib",
		Long:  "Compute the fast boundaries for a date (YYYY-MM-DD, default: today) at the\nconfigured or geo-detected coordinates. All times are printed in UTC.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTimes,
	}

	cmd.Flags().Bool("compare", false, "Also fetch the Al Adhan API times and show the difference")

	return cmd
}

func runTimes(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	date, err := parseDateArg(args)
	if err != nil {
		return err
	}

	coords := resolveCoordinate(cfg)
	if coords == nil {
		return fmt.Errorf("no coordinates available: set latitude/longitude via flags or `shaum config set`, or allow IP geolocation")
	}

	params := cfg.PresetValue()
	times, err := astro.CalculatePrayerTimes(date, *coords, params)
	if err != nil {
		return err
	}

	if FlagJSON {
		out := struct {
			Date    string  `json:"date"`
			Lat     float64 `json:"latitude"`
			Lng     float64 `json:"longitude"`
			Preset  string  `json:"preset"`
			Imsak   string  `json:"imsak"`
			Fajr    string  `json:"fajr"`
			Maghrib string  `json:"maghrib"`
		}{
			Date:    date.Format("2006-01-02"),
			Lat:     coords.Lat,
			Lng:     coords.Lng,
			Preset:  cfg.Preset,
			Imsak:   times.Imsak.Format(time.RFC3339),
			Fajr:    times.Fajr.Format(time.RFC3339),
			Maghrib: times.Maghrib.Format(time.RFC3339),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	layout := timeLayout(cfg)

	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Fast Boundaries (UTC)"))
	fmt.Println()
	fmt.Printf("  %.4f, %.4f  (%s preset)\n", coords.Lat, coords.Lng, cfg.Preset)
	fmt.Printf("  %s\n", date.Format("Monday, 02 Jan 2006"))
	fmt.Println()

	table := display.NewTable([]string{"Event", "Time"})
	table.AddRow("Imsak", times.Imsak.Format(layout))
	table.AddRow("Fajr", times.Fajr.Format(layout))
	table.AddRow("Maghrib", times.Maghrib.Format(layout))
	fmt.Print(table.Render())
	fmt.Println()

	if compare, _ := cmd.Flags().GetBool("compare"); compare {
		return runCompare(date, *coords, cfg.Preset, times)
	}
	return nil
}

// runCompare fetches the Al Adhan API times for the same date and
// coordinates and prints the per-event difference. Network access here is
// deliberate: this subcommand exists to validate the local calculation.
func runCompare(date time.Time, coords astro.GeoCoordinate, preset string, local astro.PrayerTimes) error {
	client := api.NewClient()
	resp, err := client.FetchByCoordinates(date, coords.Lat, coords.Lng, api.MethodForPreset(preset))
	if err != nil {
		return fmt.Errorf("comparison fetch failed: %w", err)
	}

	tz, err := time.LoadLocation(resp.Data.Meta.Timezone)
	if err != nil {
		tz = time.UTC
	}

	rows := []struct {
		name  string
		local time.Time
		raw   string
	}{
		{"Imsak", local.Imsak, resp.Data.Timings.Imsak},
		{"Fajr", local.Fajr, resp.Data.Timings.Fajr},
		{"Maghrib", local.Maghrib, resp.Data.Timings.Maghrib},
	}

	table := display.NewTable([]string{"Event", "Local", "API", "Diff"})
	for _, row := range rows {
		apiTime, err := api.ParseClock(row.raw, date, tz)
		if err != nil {
			table.AddRow(row.name, row.local.In(tz).Format("15:04"), row.raw, "?")
			continue
		}
		diff := row.local.Sub(apiTime).Round(time.Minute)
		table.AddRow(row.name,
			row.local.In(tz).Format("15:04"),
			apiTime.Format("15:04"),
			fmt.Sprintf("%+dm", int(diff.Minutes())))
	}

	fmt.Printf("  %s\n", display.Bold(fmt.Sprintf("Al Adhan comparison (%s)", resp.Data.Meta.Timezone)))
	fmt.Println()
	fmt.Print(table.Render())
	fmt.Println()
	return nil
}
