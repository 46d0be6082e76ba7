// Package cli implements the shaum command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/IRedDragonICY/shaum/internal/config"
)

// Global flags shared across all subcommands.
var (
	FlagLatitude   float64
	FlagLongitude  float64
	FlagAltitude   float64
	FlagAdjustment int
	FlagMadhab     string
	FlagStrategy   string
	FlagStrict     bool
	FlagPreset     string
	FlagJSON       bool
	FlagVerbose    bool
	FlagCacheDir   string
	FlagTimeFormat string
	FlagLocale     string
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// logger is the CLI-wide structured logger. Quiet by default; --verbose
// raises it to Debug, which also prints rule traces and geo lookups.
var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	Level(zerolog.WarnLevel).
	With().Timestamp().Logger()

// NewRootCmd creates the root command for the shaum CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "shaum",
		Short:   "Islamic fasting status and fast-boundary times",
		Long:    "Determine the fasting status (hukum) of any day, generate Daud schedules,\nand compute imsak, fajr and maghrib from your coordinates. All calculation\nis local; the network is used only for IP geolocation.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if FlagVerbose {
				logger = logger.Level(zerolog.DebugLevel)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's fasting status.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude (takes precedence over config)")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude")
	pf.Float64Var(&FlagAltitude, "altitude", 0, "Override observer altitude in metres")
	pf.IntVar(&FlagAdjustment, "adjustment", 0, "Moon-sighting day adjustment (-30 to 30)")
	pf.StringVar(&FlagMadhab, "madhab", "", "School of jurisprudence: shafi, hanafi, maliki, hanbali")
	pf.StringVar(&FlagStrategy, "strategy", "", "Daud strategy on Haram days: skip or postpone")
	pf.BoolVar(&FlagStrict, "strict", false, "Fail on out-of-range dates instead of clamping")
	pf.StringVar(&FlagPreset, "preset", "", "Calculation preset: mwl, isna, umm-al-qura, egyptian, mabims")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.BoolVar(&FlagVerbose, "verbose", false, "Enable debug logging and rule traces")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/shaum/)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagLocale, "locale", "", "Output language: en or id")

	// Register subcommands.
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newTimesCmd())
	rootCmd.AddCommand(newDaudCmd())
	rootCmd.AddCommand(newHijriCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPresetsCmd())

	return rootCmd
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	cfg := loadedConfig
	if cfg == nil {
		empty := config.Config{}
		cfg = &empty
	}

	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "latitude") {
		cfg.Latitude = FlagLatitude
	}
	if flagWasSet(flags, root, "longitude") {
		cfg.Longitude = FlagLongitude
	}
	if flagWasSet(flags, root, "altitude") {
		cfg.Altitude = FlagAltitude
	}
	if flagWasSet(flags, root, "adjustment") {
		cfg.Adjustment = &FlagAdjustment
	} else if cfg.Adjustment == nil {
		cfg.Adjustment = defaults.Adjustment
	}
	if flagWasSet(flags, root, "madhab") {
		cfg.Madhab = FlagMadhab
	} else if cfg.Madhab == "" {
		cfg.Madhab = defaults.Madhab
	}
	if flagWasSet(flags, root, "strategy") {
		cfg.DaudStrategy = FlagStrategy
	} else if cfg.DaudStrategy == "" {
		cfg.DaudStrategy = defaults.DaudStrategy
	}
	if flagWasSet(flags, root, "strict") {
		cfg.Strict = FlagStrict
	}
	if flagWasSet(flags, root, "preset") {
		cfg.Preset = FlagPreset
	} else if cfg.Preset == "" {
		cfg.Preset = defaults.Preset
	}
	if flagWasSet(flags, root, "cache-dir") {
		cfg.CacheDir = FlagCacheDir
	}
	if flagWasSet(flags, root, "time-format") {
		cfg.TimeFormat = FlagTimeFormat
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}
	if flagWasSet(flags, root, "locale") {
		cfg.Locale = FlagLocale
	} else if cfg.Locale == "" {
		cfg.Locale = defaults.Locale
	}

	return cfg
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
