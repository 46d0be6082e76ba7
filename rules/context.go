package rules

import (
	"fmt"
	"time"

	"github.com/IRedDragonICY/shaum/astro"
	"github.com/IRedDragonICY/shaum/calendar"
)

// strictAdjustmentBound is the tighter adjustment range enforced when a
// context is built with StrictAdjustment: real-world moon-sighting
// disagreements never exceed two days.
const strictAdjustmentBound = 2

// InvalidConfigurationError reports a context configuration rejected before
// construction.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// AnalysisError wraps a failure inside a composed analysis operation.
type AnalysisError struct {
	Op  string
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed in %s: %v", e.Op, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// CustomRule is a caller-supplied fasting rule. Evaluate receives the
// effective Gregorian date and the converted Hijri triple, and reports a
// status and type when the rule applies. Custom rules fold into the result
// via max-combine, so they can raise the final status but never lower it,
// and registration order never changes the outcome.
type CustomRule interface {
	Evaluate(date time.Time, hijriYear, hijriMonth, hijriDay int) (FastingStatus, FastingType, bool)
}

// MoonProvider supplies the moon-sighting day adjustment for a date. The
// engine only consumes the final integer; implementations may be constants
// or front external lookups, as long as the lookup completes before the
// core is called.
type MoonProvider interface {
	Adjustment(date time.Time, coords *astro.GeoCoordinate) (int, error)
}

// FixedAdjustment is a MoonProvider returning the same clamped day offset
// for every date.
type FixedAdjustment int

// NewFixedAdjustment clamps the offset to the supported adjustment range.
func NewFixedAdjustment(offset int) FixedAdjustment {
	return FixedAdjustment(calendar.ClampAdjustment(offset))
}

// Adjustment implements MoonProvider.
func (f FixedAdjustment) Adjustment(time.Time, *astro.GeoCoordinate) (int, error) {
	return calendar.ClampAdjustment(int(f)), nil
}

// NoAdjustment is a MoonProvider that always reports zero, trusting the
// tabular calendar arithmetic as-is.
type NoAdjustment struct{}

// Adjustment implements MoonProvider.
func (NoAdjustment) Adjustment(time.Time, *astro.GeoCoordinate) (int, error) {
	return 0, nil
}

// RuleContext configures one or more rule-engine evaluations. Build it with
// NewContext (or take DefaultContext) and treat it as immutable afterwards;
// the engine never modifies it.
type RuleContext struct {
	// Adjustment is the moon-sighting day offset, clamped to
	// [calendar.MinAdjustment, calendar.MaxAdjustment] at construction.
	Adjustment int

	// Madhab selects the school of jurisprudence.
	Madhab Madhab

	// DaudStrategy picks how Daud scheduling treats Haram days.
	DaudStrategy DaudStrategy

	// Strict selects the range policy for out-of-range dates: return a
	// typed error instead of clamping with a diagnostic trace.
	Strict bool

	// Sunset computes Maghrib for timestamp-based evaluation. Nil selects
	// AstronomicalSunset.
	Sunset SunsetCalculator

	// CustomRules are evaluated after the built-in pipeline, in order.
	CustomRules []CustomRule
}

// ContextConfig enumerates every RuleContext field up front for validation
// by NewContext.
type ContextConfig struct {
	Adjustment   int
	Madhab       Madhab
	DaudStrategy DaudStrategy
	Strict       bool

	// StrictAdjustment rejects adjustments outside [-2, 2] instead of
	// clamping to the wide bound.
	StrictAdjustment bool

	Sunset      SunsetCalculator
	CustomRules []CustomRule
}

// NewContext validates a configuration and builds a RuleContext.
// The adjustment is clamped to the supported range; with StrictAdjustment
// set, values outside [-2, 2] are rejected with InvalidConfigurationError
// instead.
func NewContext(cfg ContextConfig) (*RuleContext, error) {
	if cfg.StrictAdjustment &&
		(cfg.Adjustment < -strictAdjustmentBound || cfg.Adjustment > strictAdjustmentBound) {
		return nil, &InvalidConfigurationError{
			Field: "adjustment",
			Reason: fmt.Sprintf("%d outside strict bounds [-%d, %d]",
				cfg.Adjustment, strictAdjustmentBound, strictAdjustmentBound),
		}
	}

	return &RuleContext{
		Adjustment:   calendar.ClampAdjustment(cfg.Adjustment),
		Madhab:       cfg.Madhab,
		DaudStrategy: cfg.DaudStrategy,
		Strict:       cfg.Strict,
		Sunset:       cfg.Sunset,
		CustomRules:  cfg.CustomRules,
	}, nil
}

// DefaultContext returns the zero-adjustment, lenient, Shafi context with
// the Skip strategy.
func DefaultContext() *RuleContext {
	ctx, _ := NewContext(ContextConfig{})
	return ctx
}

// sunset returns the configured sunset calculator or the astronomical
// default.
func (c *RuleContext) sunset() SunsetCalculator {
	if c.Sunset != nil {
		return c.Sunset
	}
	return AstronomicalSunset{}
}
