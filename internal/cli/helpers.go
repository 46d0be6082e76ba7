package cli

import (
	"fmt"
	"time"

	"github.com/IRedDragonICY/shaum/astro"
	"github.com/IRedDragonICY/shaum/i18n"
	"github.com/IRedDragonICY/shaum/internal/cache"
	"github.com/IRedDragonICY/shaum/internal/config"
	"github.com/IRedDragonICY/shaum/internal/geo"
	"github.com/IRedDragonICY/shaum/rules"
)

// buildContext assembles a rule context from the merged configuration.
func buildContext(cfg *config.Config) (*rules.RuleContext, error) {
	ctx, err := rules.NewContext(rules.ContextConfig{
		Adjustment:   cfg.AdjustmentOrDefault(0),
		Madhab:       cfg.MadhabValue(),
		DaudStrategy: cfg.StrategyValue(),
		Strict:       cfg.Strict,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build rule context: %w", err)
	}
	return ctx, nil
}

// localizerFor builds the output localizer for the configured language.
func localizerFor(cfg *config.Config) (i18n.Localizer, error) {
	return i18n.New(cfg.Locale)
}

// parseDateArg parses an optional YYYY-MM-DD argument, defaulting to today
// (UTC) when absent.
func parseDateArg(args []string) (time.Time, error) {
	if len(args) == 0 {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", args[0])
	}
	return date, nil
}

// timeLayout returns the Go time layout for the configured clock format.
func timeLayout(cfg *config.Config) string {
	if cfg.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

// resolveCoordinate determines the observer coordinate: explicitly
// configured values win, otherwise the location is detected from the public
// IP (with a 24-hour disk cache). Returns nil when no coordinate can be
// established; callers degrade to date-only evaluation.
func resolveCoordinate(cfg *config.Config) *astro.GeoCoordinate {
	if cfg.Latitude != 0 || cfg.Longitude != 0 {
		coord, err := astro.NewGeoCoordinate(cfg.Latitude, cfg.Longitude, cfg.Altitude)
		if err != nil {
			logger.Warn().Err(err).Msg("ignoring invalid configured coordinates")
			return nil
		}
		return &coord
	}

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		logger.Warn().Err(err).Msg("cache disabled")
		c = nil
	}

	var loc *geo.Location
	if c != nil {
		loc = c.LoadGeo()
	}
	if loc == nil {
		loc, err = geo.DetectLocation(logger)
		if err != nil {
			logger.Debug().Err(err).Msg("location detection failed")
			return nil
		}
		if c != nil {
			if err := c.SaveGeo(loc); err != nil {
				logger.Debug().Err(err).Msg("failed to cache location")
			}
		}
	}

	coord, err := loc.Coordinate()
	if err != nil {
		logger.Warn().Err(err).Msg("detected location is invalid")
		return nil
	}
	return &coord
}

// logTraces prints the rule trace at debug level.
func logTraces(analysis *rules.FastingAnalysis) {
	for _, tr := range analysis.Traces {
		logger.Debug().Str("code", string(tr.Code)).Str("detail", tr.Detail).Msg("rule fired")
	}
}
