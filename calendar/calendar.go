// Package calendar converts Gregorian dates to the Hijri (Islamic lunar)
// calendar and back, with a signed day adjustment modeling regional
// differences in moon sighting.
//
// Conversion uses the tabular Islamic calendar (Kuwaiti algorithm): direct
// integer arithmetic over Julian Day Numbers, no search. It is pure and
// deterministic; conversions are supported for adjusted Gregorian years
// between MinYear and MaxYear inclusive.
package calendar

import (
	"fmt"
	"sync"
	"time"
)

// MinYear and MaxYear bound the supported adjusted Gregorian year range.
const (
	MinYear = 1938
	MaxYear = 2076
)

// Adjustment bounds. Any offset outside this range is clamped before use.
const (
	MinAdjustment = -30
	MaxAdjustment = 30
)

// hijriEpoch is the Julian Day Number offset of the tabular Islamic epoch
// (1 Muharram 1 AH = 16 July 622 CE Julian).
const hijriEpoch = 1948440

// HijriDate is a (year, month, day) triple in the Hijri calendar.
// It is derived data: recomputed per query, never persisted.
type HijriDate struct {
	Year  int
	Month int
	Day   int
}

// String returns the date as "D MonthName YYYY".
func (h HijriDate) String() string {
	return fmt.Sprintf("%d %s %d", h.Day, MonthName(h.Month), h.Year)
}

// DateOutOfRangeError reports an adjusted Gregorian date outside the
// supported conversion range.
type DateOutOfRangeError struct {
	Date time.Time
	Min  int
	Max  int
}

func (e *DateOutOfRangeError) Error() string {
	return fmt.Sprintf("date %s outside supported Hijri range (%d-%d)",
		e.Date.Format("2006-01-02"), e.Min, e.Max)
}

// Converter performs Gregorian to Hijri conversion with a single-slot memo
// of the most recent successful conversion. The slot is guarded by a mutex,
// so a Converter is safe for concurrent use. The memo is an optimization
// only: it never changes observable output and is never assumed populated.
type Converter struct {
	mu      sync.Mutex
	memoKey memoKey
	memoVal HijriDate
	memoOK  bool
}

type memoKey struct {
	year, month, day int
	adjustment       int
}

// defaultConverter backs the package-level ToHijri.
var defaultConverter Converter

// ClampAdjustment clamps a moon-sighting day offset to
// [MinAdjustment, MaxAdjustment].
func ClampAdjustment(adjustment int) int {
	if adjustment < MinAdjustment {
		return MinAdjustment
	}
	if adjustment > MaxAdjustment {
		return MaxAdjustment
	}
	return adjustment
}

// ClampToRange clamps a Gregorian date to the nearest supported boundary
// (1 January MinYear or 31 December MaxYear). Dates already in range are
// returned unchanged. Callers using lenient range policy clamp with this
// and surface a diagnostic trace entry.
func ClampToRange(date time.Time) time.Time {
	switch {
	case date.Year() < MinYear:
		return time.Date(MinYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	case date.Year() > MaxYear:
		return time.Date(MaxYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		return date
	}
}

// ToHijri converts a Gregorian date to Hijri using the package-level
// converter. See Converter.ToHijri.
func ToHijri(date time.Time, adjustment int) (HijriDate, error) {
	return defaultConverter.ToHijri(date, adjustment)
}

// ToHijri converts a Gregorian date to Hijri.
//
// adjustment is a signed day offset applied to the Gregorian date before
// conversion; positive means the Hijri calendar runs ahead (moon sighted
// earlier). It is clamped to [MinAdjustment, MaxAdjustment].
//
// Returns a DateOutOfRangeError when the adjusted Gregorian year falls
// outside [MinYear, MaxYear]. This function is strict by design: lenient
// clamping is the caller's policy decision (see ClampToRange).
func (c *Converter) ToHijri(date time.Time, adjustment int) (HijriDate, error) {
	adjusted := date.AddDate(0, 0, ClampAdjustment(adjustment))

	year, month, day := adjusted.Date()
	if year < MinYear || year > MaxYear {
		return HijriDate{}, &DateOutOfRangeError{Date: adjusted, Min: MinYear, Max: MaxYear}
	}

	key := memoKey{year: year, month: int(month), day: day, adjustment: ClampAdjustment(adjustment)}

	c.mu.Lock()
	if c.memoOK && c.memoKey == key {
		h := c.memoVal
		c.mu.Unlock()
		return h, nil
	}
	c.mu.Unlock()

	h := fromJDN(gregorianJDN(year, int(month), day))

	c.mu.Lock()
	c.memoKey = key
	c.memoVal = h
	c.memoOK = true
	c.mu.Unlock()

	return h, nil
}

// ToGregorian converts a Hijri date back to the corresponding Gregorian
// date (at midnight UTC). Returns a DateOutOfRangeError when the result
// falls outside the supported range, and an error for malformed triples.
func ToGregorian(h HijriDate) (time.Time, error) {
	if h.Month < 1 || h.Month > 12 {
		return time.Time{}, fmt.Errorf("invalid Hijri month %d: must be between 1 and 12", h.Month)
	}
	if h.Day < 1 || h.Day > 30 {
		return time.Time{}, fmt.Errorf("invalid Hijri day %d: must be between 1 and 30", h.Day)
	}

	jdn := hijriJDN(h.Year, h.Month, h.Day)
	date := civilFromJDN(jdn)
	if date.Year() < MinYear || date.Year() > MaxYear {
		return time.Time{}, &DateOutOfRangeError{Date: date, Min: MinYear, Max: MaxYear}
	}
	return date, nil
}

// gregorianJDN returns the Julian Day Number at noon for a Gregorian civil
// date (Fliegel-Van Flandern; integer division truncates toward zero,
// matching the formula's design).
func gregorianJDN(year, month, day int) int {
	a := (month - 14) / 12
	jdn := (1461 * (year + 4800 + a)) / 4
	jdn += (367 * (month - 2 - 12*a)) / 12
	jdn -= (3 * ((year + 4900 + a) / 100)) / 4
	return jdn + day - 32075
}

// civilFromJDN is the inverse of gregorianJDN.
func civilFromJDN(jdn int) time.Time {
	l := jdn + 68569
	n := (4 * l) / 146097
	l -= (146097*n + 3) / 4
	i := (4000 * (l + 1)) / 1461001
	l -= (1461*i)/4 - 31
	j := (80 * l) / 2447
	day := l - (2447*j)/80
	l = j / 11
	month := j + 2 - 12*l
	year := 100*(n-49) + i + l
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// fromJDN converts a Julian Day Number to a tabular Hijri date.
func fromJDN(jdn int) HijriDate {
	l := jdn - hijriEpoch + 10632
	n := (l - 1) / 10631
	l = l - 10631*n + 354
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29
	month := (24 * l) / 709
	day := l - (709*month)/24
	year := 30*n + j - 30
	return HijriDate{Year: year, Month: month, Day: day}
}

// hijriJDN returns the Julian Day Number for a tabular Hijri date.
func hijriJDN(year, month, day int) int {
	return (11*year+3)/30 + 354*year + 30*month - (month-1)/2 + day + hijriEpoch - 385
}

// hijriMonthNames are the English Hijri month names, indexed by month-1.
var hijriMonthNames = [12]string{
	"Muharram",
	"Safar",
	"Rabi' al-Awwal",
	"Rabi' al-Thani",
	"Jumada al-Ula",
	"Jumada al-Akhirah",
	"Rajab",
	"Sha'ban",
	"Ramadhan",
	"Shawwal",
	"Dhu al-Qi'dah",
	"Dhu al-Hijjah",
}

// MonthName returns the English name of a Hijri month (1-12), or "Unknown"
// for any other value.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return "Unknown"
	}
	return hijriMonthNames[month-1]
}
