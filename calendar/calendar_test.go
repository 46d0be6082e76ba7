package calendar

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestToHijri_KnownDates(t *testing.T) {
	tests := []struct {
		name      string
		gregorian time.Time
		want      HijriDate
	}{
		{"eid al-fitr 1445", date(2024, time.April, 10), HijriDate{1445, 10, 1}},
		{"first of ramadhan 1445", date(2024, time.March, 11), HijriDate{1445, 9, 1}},
		{"day before eid", date(2024, time.April, 9), HijriDate{1445, 9, 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHijri(tt.gregorian, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToHijri_AdjustmentShiftsDate(t *testing.T) {
	base, err := ToHijri(date(2024, time.April, 10), 0)
	require.NoError(t, err)

	minus, err := ToHijri(date(2024, time.April, 10), -1)
	require.NoError(t, err)
	prev, err := ToHijri(date(2024, time.April, 9), 0)
	require.NoError(t, err)

	assert.Equal(t, prev, minus, "adjustment -1 should match the previous civil day")
	assert.NotEqual(t, base, minus)

	plus, err := ToHijri(date(2024, time.April, 9), 1)
	require.NoError(t, err)
	assert.Equal(t, base, plus, "adjustment +1 should match the next civil day")
}

func TestToHijri_OutOfRange(t *testing.T) {
	for _, d := range []time.Time{
		date(MinYear-1, time.December, 31),
		date(MaxYear+1, time.January, 1),
		date(1600, time.June, 1),
	} {
		_, err := ToHijri(d, 0)
		require.Error(t, err)
		var oor *DateOutOfRangeError
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, MinYear, oor.Min)
		assert.Equal(t, MaxYear, oor.Max)
	}
}

func TestToHijri_AdjustmentPushesOutOfRange(t *testing.T) {
	// 31 December of the last supported year plus a positive adjustment
	// lands in MaxYear+1.
	_, err := ToHijri(date(MaxYear, time.December, 31), 1)
	var oor *DateOutOfRangeError
	require.ErrorAs(t, err, &oor)

	// The same date with no adjustment converts fine.
	_, err = ToHijri(date(MaxYear, time.December, 31), 0)
	assert.NoError(t, err)
}

func TestToHijri_ExtremeAdjustmentClamped(t *testing.T) {
	want, err := ToHijri(date(2024, time.June, 1), MaxAdjustment)
	require.NoError(t, err)

	got, err := ToHijri(date(2024, time.June, 1), 1000)
	require.NoError(t, err)
	assert.Equal(t, want, got, "adjustment beyond +30 should clamp to +30")

	want, err = ToHijri(date(2024, time.June, 1), MinAdjustment)
	require.NoError(t, err)
	got, err = ToHijri(date(2024, time.June, 1), -1000)
	require.NoError(t, err)
	assert.Equal(t, want, got, "adjustment below -30 should clamp to -30")
}

func TestClampAdjustment(t *testing.T) {
	assert.Equal(t, 0, ClampAdjustment(0))
	assert.Equal(t, 5, ClampAdjustment(5))
	assert.Equal(t, MinAdjustment, ClampAdjustment(-99))
	assert.Equal(t, MaxAdjustment, ClampAdjustment(99))
	assert.Equal(t, MinAdjustment, ClampAdjustment(MinAdjustment))
	assert.Equal(t, MaxAdjustment, ClampAdjustment(MaxAdjustment))
}

func TestClampToRange(t *testing.T) {
	in := date(2024, time.April, 10)
	assert.Equal(t, in, ClampToRange(in), "in-range dates pass through")

	early := ClampToRange(date(1900, time.May, 5))
	assert.Equal(t, date(MinYear, time.January, 1), early)

	late := ClampToRange(date(2100, time.May, 5))
	assert.Equal(t, date(MaxYear, time.December, 31), late)
}

func TestRoundTrip(t *testing.T) {
	// Every day of a full Hijri year should survive a round trip through
	// ToGregorian and back.
	start := date(2024, time.March, 11) // 1 Ramadhan 1445
	for i := 0; i < 355; i++ {
		g := start.AddDate(0, 0, i)
		h, err := ToHijri(g, 0)
		require.NoError(t, err)

		back, err := ToGregorian(h)
		require.NoError(t, err)
		assert.Equal(t, g, back, "round trip for %s", g.Format("2006-01-02"))
	}
}

func TestToGregorian_Invalid(t *testing.T) {
	_, err := ToGregorian(HijriDate{Year: 1445, Month: 0, Day: 1})
	assert.Error(t, err)

	_, err = ToGregorian(HijriDate{Year: 1445, Month: 13, Day: 1})
	assert.Error(t, err)

	_, err = ToGregorian(HijriDate{Year: 1445, Month: 1, Day: 31})
	assert.Error(t, err)

	_, err = ToGregorian(HijriDate{Year: 5000, Month: 1, Day: 1})
	var oor *DateOutOfRangeError
	assert.True(t, errors.As(err, &oor), "far-future Hijri year should be out of range")
}

func TestHijriMonthLengths(t *testing.T) {
	// The tabular calendar alternates 30/29-day months. Walk a year and
	// verify day numbers never exceed 30 and month 1 starts after the last
	// day of month 12.
	start := date(2023, time.July, 19) // 1 Muharram 1445
	h, err := ToHijri(start, 0)
	require.NoError(t, err)
	require.Equal(t, HijriDate{1445, 1, 1}, h)

	prev := h
	for i := 1; i < 360; i++ {
		h, err = ToHijri(start.AddDate(0, 0, i), 0)
		require.NoError(t, err)
		assert.LessOrEqual(t, h.Day, 30)
		assert.GreaterOrEqual(t, h.Day, 1)
		if h.Day == 1 && prev.Month == 12 {
			assert.Equal(t, prev.Year+1, h.Year)
		}
		prev = h
	}
}

func TestConverter_MemoDoesNotChangeOutput(t *testing.T) {
	var c Converter
	d := date(2024, time.April, 10)

	first, err := c.ToHijri(d, 0)
	require.NoError(t, err)
	second, err := c.ToHijri(d, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A different adjustment is a different memo key.
	shifted, err := c.ToHijri(d, 1)
	require.NoError(t, err)
	assert.NotEqual(t, first, shifted)

	// Returning to the original key still yields the original value.
	again, err := c.ToHijri(d, 0)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestConverter_ConcurrentAccess(t *testing.T) {
	var c Converter
	var wg sync.WaitGroup
	start := date(2024, time.January, 1)

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				d := start.AddDate(0, 0, (offset+i)%365)
				got, err := c.ToHijri(d, 0)
				if err != nil {
					t.Errorf("ToHijri(%s) error: %v", d.Format("2006-01-02"), err)
					return
				}
				want, _ := ToHijri(d, 0)
				if got != want {
					t.Errorf("ToHijri(%s) = %v, want %v", d.Format("2006-01-02"), got, want)
					return
				}
			}
		}(g * 13)
	}
	wg.Wait()
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Muharram", MonthName(1))
	assert.Equal(t, "Ramadhan", MonthName(9))
	assert.Equal(t, "Shawwal", MonthName(10))
	assert.Equal(t, "Dhu al-Hijjah", MonthName(12))
	assert.Equal(t, "Unknown", MonthName(0))
	assert.Equal(t, "Unknown", MonthName(13))
}

func TestHijriDateString(t *testing.T) {
	h := HijriDate{Year: 1445, Month: 10, Day: 1}
	assert.Equal(t, "1 Shawwal 1445", h.String())
}
