package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetByName(t *testing.T) {
	for _, name := range PresetNames {
		p, err := PresetByName(name)
		require.NoError(t, err, "preset %q", name)
		assert.Negative(t, p.FajrAngle, "preset %q fajr angle", name)
		assert.Equal(t, 10, p.ImsakBufferMinutes, "preset %q imsak buffer", name)
	}

	_, err := PresetByName("nonsense")
	assert.Error(t, err)
}

func TestPresetAngles(t *testing.T) {
	assert.Equal(t, -18.0, MWL().FajrAngle)
	assert.Equal(t, -15.0, ISNA().FajrAngle)
	assert.Equal(t, -18.5, UmmAlQura().FajrAngle)
	assert.Equal(t, -19.5, Egyptian().FajrAngle)
	assert.Equal(t, -20.0, MABIMS().FajrAngle)
	assert.Equal(t, 2, MABIMS().IhtiyatMinutes)
	assert.Equal(t, 0, MWL().IhtiyatMinutes)
}

func TestCalculatePrayerTimes_Jakarta(t *testing.T) {
	date := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

	times, err := CalculatePrayerTimes(date, jakarta, MABIMS())
	require.NoError(t, err)

	// The imsak buffer holds exactly in the output because imsak derives
	// from the already-rounded fajr.
	assert.Equal(t, times.Fajr.Add(-10*time.Minute), times.Imsak)

	assert.True(t, times.Imsak.Before(times.Fajr))
	assert.True(t, times.Fajr.Before(times.Maghrib))

	// Rounded to whole minutes.
	assert.Zero(t, times.Fajr.Second())
	assert.Zero(t, times.Fajr.Nanosecond())
	assert.Zero(t, times.Maghrib.Second())

	// An equatorial fast runs somewhere between 12 and 15 hours.
	fastLen := times.Maghrib.Sub(times.Fajr)
	assert.Greater(t, fastLen, 12*time.Hour)
	assert.Less(t, fastLen, 15*time.Hour)
}

func TestCalculatePrayerTimes_IhtiyatNeverShortensTheFast(t *testing.T) {
	date := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

	raw := MABIMS()
	raw.IhtiyatMinutes = 0
	raw.RoundingGranularitySeconds = 0

	buffered := MABIMS()
	buffered.RoundingGranularitySeconds = 0

	rawTimes, err := CalculatePrayerTimes(date, jakarta, raw)
	require.NoError(t, err)
	bufTimes, err := CalculatePrayerTimes(date, jakarta, buffered)
	require.NoError(t, err)

	assert.Equal(t, rawTimes.Fajr.Add(-2*time.Minute), bufTimes.Fajr)
	assert.Equal(t, rawTimes.Maghrib.Add(2*time.Minute), bufTimes.Maghrib)
}

func TestCalculatePrayerTimes_RoundingDisabled(t *testing.T) {
	date := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

	p := MWL()
	p.RoundingGranularitySeconds = 0

	times, err := CalculatePrayerTimes(date, jakarta, p)
	require.NoError(t, err)

	// Raw bisection output practically never lands on a whole minute.
	offNanos := times.Fajr.Second() != 0 || times.Fajr.Nanosecond() != 0
	assert.True(t, offNanos, "unrounded fajr should carry sub-minute precision")
}

func TestCalculatePrayerTimes_ElevationDelaysSunset(t *testing.T) {
	date := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	p := MWL()
	p.RoundingGranularitySeconds = 0

	elevated := MustGeoCoordinate(jakarta.Lat, jakarta.Lng, 400)

	seaLevel, err := CalculatePrayerTimes(date, jakarta, p)
	require.NoError(t, err)
	hill, err := CalculatePrayerTimes(date, elevated, p)
	require.NoError(t, err)

	assert.True(t, hill.Maghrib.After(seaLevel.Maghrib),
		"observers above sea level see the sun set later")
}

func TestCalculatePrayerTimes_HighLatitudeFailure(t *testing.T) {
	date := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)

	_, err := CalculatePrayerTimes(date, tromso, MABIMS())
	require.Error(t, err)
	var notFound *SolarEventNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSunsetAltitude_Default(t *testing.T) {
	p := PrayerParams{FajrAngle: -18}
	assert.Equal(t, defaultSunsetAngle, sunsetAltitude(p, jakarta))

	p.SunsetAngle = -1.5
	assert.Equal(t, -1.5, sunsetAltitude(p, jakarta))

	elevated := GeoCoordinate{Lat: 0, Lng: 0, Altitude: 100}
	assert.InDelta(t, -1.5-0.347, sunsetAltitude(p, elevated), 1e-9)
}
