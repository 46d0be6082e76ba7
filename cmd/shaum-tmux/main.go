package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/IRedDragonICY/shaum/astro"
	"github.com/IRedDragonICY/shaum/internal/cache"
	"github.com/IRedDragonICY/shaum/internal/geo"
	"github.com/IRedDragonICY/shaum/rules"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

func main() {
	// Location flags
	latitude := flag.Float64("latitude", 0, "Latitude for calculation")
	longitude := flag.Float64("longitude", 0, "Longitude for calculation")
	altitude := flag.Float64("altitude", 0, "Observer altitude in meters")

	// Calculation flags
	adjustment := flag.Int("adjustment", 0, "Moon-sighting adjustment in days (-30..30)")
	preset := flag.String("preset", "mabims", "Calculation preset: mwl, isna, umm-al-qura, egyptian, mabims")

	// Display flags
	format := flag.String("format", "status-and-time", "Display format: status, status-and-time, time-remaining")
	timeFormat := flag.String("time-format", "24h", "Time format: 12h or 24h")

	// Cache flags
	cacheDir := flag.String("cache-dir", "", "Cache directory (default: ~/.cache/shaum/)")

	// Info flags
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("shaum-tmux %s\n", version)
		return
	}

	if err := run(*latitude, *longitude, *altitude, *adjustment, *preset, *format, *timeFormat, *cacheDir); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(lat, lon, alt float64, adjustment int, preset, format, timeFmt, cacheDir string) error {
	goTimeFmt := "15:04" // 24h
	if timeFmt == "12h" {
		goTimeFmt = "3:04 PM"
	}

	params, err := astro.PresetByName(preset)
	if err != nil {
		return err
	}

	coords, err := resolveCoordinate(lat, lon, alt, cacheDir)
	if err != nil {
		return err
	}

	now := time.Now()

	offset, err := rules.NewFixedAdjustment(adjustment).Adjustment(now, &coords)
	if err != nil {
		return err
	}
	ctx, err := rules.NewContext(rules.ContextConfig{Adjustment: offset})
	if err != nil {
		return err
	}
	analysis, err := rules.Analyze(now.UTC(), ctx, &coords)
	if err != nil {
		return err
	}

	times, err := astro.CalculatePrayerTimes(analysis.Date, coords, params)
	if err != nil {
		// High latitudes can lack a fajr crossing. Status alone still works.
		fmt.Print(statusLabel(analysis.Status))
		return nil
	}

	switch format {
	case "status":
		fmt.Print(statusLabel(analysis.Status))
	case "time-remaining":
		fmt.Print(nextBoundary(now, times, goTimeFmt, true))
	default:
		fmt.Printf("%s %s", statusLabel(analysis.Status), nextBoundary(now, times, goTimeFmt, false))
	}
	return nil
}

// statusLabel returns a compact status marker suitable for a tmux status line.
func statusLabel(s rules.FastingStatus) string {
	switch s {
	case rules.Haram:
		return "no-fast"
	case rules.Wajib:
		return "fast*"
	case rules.SunnahMuakkadah, rules.Sunnah:
		return "fast"
	case rules.Makruh:
		return "fast?"
	default:
		return "-"
	}
}

// nextBoundary formats the upcoming fasting boundary: imsak before dawn,
// maghrib during the day, or tomorrow's imsak after sunset.
func nextBoundary(now time.Time, times astro.PrayerTimes, layout string, remaining bool) string {
	var name string
	var at time.Time
	switch {
	case now.Before(times.Imsak):
		name, at = "imsak", times.Imsak
	case now.Before(times.Maghrib):
		name, at = "maghrib", times.Maghrib
	default:
		return "maghrib --:--"
	}
	if remaining {
		d := at.Sub(now).Round(time.Minute)
		return fmt.Sprintf("%s in %dh%02dm", name, int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%s %s", name, at.Local().Format(layout))
}

// resolveCoordinate uses explicit flags when given, else cached or
// freshly detected IP geolocation.
func resolveCoordinate(lat, lon, alt float64, cacheDir string) (astro.GeoCoordinate, error) {
	if lat != 0 || lon != 0 {
		return astro.NewGeoCoordinate(lat, lon, alt)
	}

	c, err := cache.New(cacheDir)
	if err != nil {
		c = nil
	}

	if c != nil {
		if cached := c.LoadGeo(); cached != nil {
			return cached.Coordinate()
		}
	}

	detected, err := geo.DetectLocation(zerolog.Nop())
	if err != nil {
		return astro.GeoCoordinate{}, fmt.Errorf("no location specified and auto-detection failed: %w", err)
	}

	if c != nil {
		_ = c.SaveGeo(detected) // best-effort
	}

	return detected.Coordinate()
}
