package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IRedDragonICY/shaum/astro"
	"github.com/IRedDragonICY/shaum/calendar"
)

func TestNewContext_ClampsAdjustment(t *testing.T) {
	ctx, err := NewContext(ContextConfig{Adjustment: 99})
	require.NoError(t, err)
	assert.Equal(t, calendar.MaxAdjustment, ctx.Adjustment)

	ctx, err = NewContext(ContextConfig{Adjustment: -99})
	require.NoError(t, err)
	assert.Equal(t, calendar.MinAdjustment, ctx.Adjustment)
}

func TestNewContext_StrictAdjustment(t *testing.T) {
	for _, adj := range []int{-2, -1, 0, 1, 2} {
		_, err := NewContext(ContextConfig{Adjustment: adj, StrictAdjustment: true})
		assert.NoError(t, err, "adjustment %d", adj)
	}

	for _, adj := range []int{-3, 3, 30} {
		_, err := NewContext(ContextConfig{Adjustment: adj, StrictAdjustment: true})
		require.Error(t, err, "adjustment %d", adj)
		var bad *InvalidConfigurationError
		require.ErrorAs(t, err, &bad)
		assert.Equal(t, "adjustment", bad.Field)
	}
}

func TestDefaultContext(t *testing.T) {
	ctx := DefaultContext()
	assert.Equal(t, 0, ctx.Adjustment)
	assert.Equal(t, Shafi, ctx.Madhab)
	assert.Equal(t, Skip, ctx.DaudStrategy)
	assert.False(t, ctx.Strict)
	assert.IsType(t, AstronomicalSunset{}, ctx.sunset())
}

func TestMoonProviders(t *testing.T) {
	now := time.Now()

	fixed := NewFixedAdjustment(2)
	got, err := fixed.Adjustment(now, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	// Construction clamps out-of-range offsets.
	wide := NewFixedAdjustment(99)
	got, err = wide.Adjustment(now, nil)
	require.NoError(t, err)
	assert.Equal(t, calendar.MaxAdjustment, got)

	got, err = NoAdjustment{}.Adjustment(now, nil)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestMeanTimeSunset(t *testing.T) {
	jakarta := astro.MustGeoCoordinate(-6.2088, 106.8456, 0)
	d := time.Date(2024, time.April, 9, 0, 0, 0, 0, time.UTC)

	sunset, err := MeanTimeSunset{}.Sunset(d, jakarta)
	require.NoError(t, err)

	// 18:00 local mean time at 106.8456 east is about 10:53 UTC.
	want := d.Add(time.Duration((18 - 106.8456/15) * float64(time.Hour)))
	assert.Equal(t, want, sunset)

	// At Greenwich it is exactly 18:00 UTC.
	greenwich := astro.MustGeoCoordinate(51.4779, 0, 0)
	sunset, err = MeanTimeSunset{}.Sunset(d, greenwich)
	require.NoError(t, err)
	assert.Equal(t, d.Add(18*time.Hour), sunset)
}

func TestAstronomicalSunset_MatchesSolarCrossing(t *testing.T) {
	jakarta := astro.MustGeoCoordinate(-6.2088, 106.8456, 0)
	d := time.Date(2024, time.April, 9, 0, 0, 0, 0, time.UTC)

	sunset, err := AstronomicalSunset{}.Sunset(d, jakarta)
	require.NoError(t, err)

	want, err := astro.FindAltitudeCrossing(d, jakarta, -0.8333, false)
	require.NoError(t, err)
	assert.Equal(t, want, sunset)
}

func TestAstronomicalSunset_ErrorAtHighLatitude(t *testing.T) {
	tromso := astro.MustGeoCoordinate(69.6496, 18.9553, 0)
	d := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)

	_, err := AstronomicalSunset{}.Sunset(d, tromso)
	require.Error(t, err)
	var notFound *astro.SolarEventNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAnalysisError_Unwrap(t *testing.T) {
	inner := &calendar.DateOutOfRangeError{Min: calendar.MinYear, Max: calendar.MaxYear}
	err := &AnalysisError{Op: "hijri conversion", Err: inner}

	var oor *calendar.DateOutOfRangeError
	assert.ErrorAs(t, err, &oor)
	assert.Contains(t, err.Error(), "hijri conversion")
}
