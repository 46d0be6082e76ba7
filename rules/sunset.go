package rules

import (
	"time"

	"github.com/IRedDragonICY/shaum/astro"
)

// SunsetCalculator computes the Maghrib (sunset) instant used for the
// Islamic day rollover: sunset begins the new Islamic date.
type SunsetCalculator interface {
	Sunset(date time.Time, coords astro.GeoCoordinate) (time.Time, error)
}

// AstronomicalSunset is the default SunsetCalculator, backed by the solar
// engine's evening altitude crossing at the refraction-adjusted horizon.
type AstronomicalSunset struct {
	// Params overrides the sunset angle and buffers; the zero value uses
	// the MABIMS preset with no ihtiyat or rounding, which leaves the raw
	// crossing instant untouched.
	Params *astro.PrayerParams
}

// Sunset implements SunsetCalculator. At extreme latitudes the crossing may
// not exist; the error is astro.SolarEventNotFoundError and the caller
// decides whether to skip the rollover.
func (s AstronomicalSunset) Sunset(date time.Time, coords astro.GeoCoordinate) (time.Time, error) {
	params := astro.PrayerParams{}
	if s.Params != nil {
		params = *s.Params
	}
	target := params.SunsetAngle
	if target == 0 {
		// Refraction plus solar semidiameter, the same default the prayer
		// assembly uses.
		target = -0.8333
	}
	return astro.FindAltitudeCrossing(date, coords, target, false)
}

// MeanTimeSunset approximates sunset as 18:00 local mean time, converting
// through the longitude offset from UTC. It ignores latitude and season and
// never fails; useful where a rough rollover beats carrying the full solar
// engine.
type MeanTimeSunset struct{}

// Sunset implements SunsetCalculator.
func (MeanTimeSunset) Sunset(date time.Time, coords astro.GeoCoordinate) (time.Time, error) {
	year, month, day := date.UTC().Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	offset := time.Duration((18 - coords.Lng/15) * float64(time.Hour))
	return midnight.Add(offset), nil
}
