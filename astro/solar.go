// Package astro computes solar positions and the altitude-crossing times
// that bound an Islamic fasting day (imsak, fajr, maghrib).
//
// The position pipeline is the standard one: civil instant to Julian Day,
// truncated VSOP87 series for the heliocentric ecliptic longitude and
// latitude of Earth, mean obliquity with nutation, equatorial right
// ascension and declination, local sidereal time, then the spherical
// transform to horizontal altitude. Everything here is a pure function of
// its inputs; the package performs no I/O.
package astro

import (
	"fmt"
	"math"
	"time"
)

const (
	// j2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 UTC).
	j2000 = 2451545.0

	secondsPerDay = 86400.0
	degPerHour    = 15.0
)

// aberrationRad is the constant annual aberration of the Sun in radians
// (-20.4898 arcseconds).
var aberrationRad = arcsecToRad(-20.4898)

// SolarEventNotFoundError reports that the target altitude is never crossed
// within the search window, typically at high latitudes in seasonal
// extremes where the sun stays above or below the target all day.
type SolarEventNotFoundError struct {
	Date           time.Time
	TargetAltitude float64
	Morning        bool
}

func (e *SolarEventNotFoundError) Error() string {
	half := "evening"
	if e.Morning {
		half = "morning"
	}
	return fmt.Sprintf("solar altitude %.4f not reached in %s half of %s",
		e.TargetAltitude, half, e.Date.Format("2006-01-02"))
}

// JulianDay converts a civil instant to the Julian Day, the continuous day
// count used as the time axis for the astronomical formulas.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	year, month, day := t.Date()
	y, m := float64(year), float64(month)
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	frac := (float64(t.Hour())*3600 + float64(t.Minute())*60 +
		float64(t.Second()) + float64(t.Nanosecond())/1e9) / secondsPerDay

	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) +
		float64(day) + frac + b - 1524.5
}

// SolarAltitude returns the geocentric altitude of the Sun in degrees above
// the horizon for an observer at coords at the given instant.
func SolarAltitude(instant time.Time, coords GeoCoordinate) float64 {
	jd := JulianDay(instant)
	T := (jd - j2000) / 36525 // Julian centuries
	tau := T / 10             // Julian millennia

	// Heliocentric VSOP87 longitude/latitude, turned geocentric.
	lambda := normalizeRad(heliocentricLongitude(tau) + math.Pi)
	beta := -heliocentricLatitude(tau)

	dpsi, deps := nutation(T)
	eps := meanObliquity(T) + deps

	// Apparent longitude: nutation in longitude plus aberration.
	lambda += dpsi + aberrationRad

	sinLambda := math.Sin(lambda)
	alpha := math.Atan2(sinLambda*math.Cos(eps)-math.Tan(beta)*math.Sin(eps), math.Cos(lambda))
	delta := math.Asin(math.Sin(beta)*math.Cos(eps) + math.Cos(beta)*math.Sin(eps)*sinLambda)

	theta := apparentSiderealTime(jd, T, dpsi, eps) + degToRad(coords.Lng)
	hourAngle := theta - alpha

	phi := degToRad(coords.Lat)
	alt := math.Asin(math.Sin(phi)*math.Sin(delta) +
		math.Cos(phi)*math.Cos(delta)*math.Cos(hourAngle))
	return radToDeg(alt)
}

// FindAltitudeCrossing locates the UTC instant on the given civil date at
// which the solar altitude crosses targetAltitude degrees.
//
// The search windows are anchored at the date's local mean midnight
// (00:00 UTC shifted by -longitude/15 hours) so that altitude is
// monotonically increasing across the morning half [midnight, +12h] and
// monotonically decreasing across the evening half [+12h, +24h] at every
// longitude. The bisection runs exactly 20 halving iterations, bracketing
// the crossing to roughly one second.
//
// If the target altitude is not attained within the window the monotonicity
// assumption does not hold and bisection would return a plausible-looking
// wrong time; that case is detected up front by comparing the bracket
// endpoints against the target and reported as SolarEventNotFoundError.
func FindAltitudeCrossing(date time.Time, coords GeoCoordinate, targetAltitude float64, morning bool) (time.Time, error) {
	year, month, day := date.UTC().Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).
		Add(-time.Duration(coords.Lng / degPerHour * float64(time.Hour)))

	lo, hi := midnight, midnight.Add(12*time.Hour)
	if !morning {
		lo, hi = midnight.Add(12*time.Hour), midnight.Add(24*time.Hour)
	}

	dLo := SolarAltitude(lo, coords) - targetAltitude
	dHi := SolarAltitude(hi, coords) - targetAltitude
	if dLo*dHi > 0 {
		return time.Time{}, &SolarEventNotFoundError{Date: date, TargetAltitude: targetAltitude, Morning: morning}
	}

	for i := 0; i < 20; i++ {
		mid := lo.Add(hi.Sub(lo) / 2)
		alt := SolarAltitude(mid, coords)
		if morning {
			if alt < targetAltitude {
				lo = mid
			} else {
				hi = mid
			}
		} else {
			if alt > targetAltitude {
				lo = mid
			} else {
				hi = mid
			}
		}
	}

	return lo.Add(hi.Sub(lo) / 2), nil
}

// heliocentricLongitude evaluates the truncated VSOP87 L series, in radians.
func heliocentricLongitude(tau float64) float64 {
	l := sumSeries(earthL0, tau)
	l += sumSeries(earthL1, tau) * tau
	l += sumSeries(earthL2, tau) * tau * tau
	l += sumSeries(earthL3, tau) * tau * tau * tau
	l += sumSeries(earthL4, tau) * tau * tau * tau * tau
	l += sumSeries(earthL5, tau) * tau * tau * tau * tau * tau
	return normalizeRad(l * 1e-8)
}

// heliocentricLatitude evaluates the truncated VSOP87 B series, in radians.
func heliocentricLatitude(tau float64) float64 {
	b := sumSeries(earthB0, tau)
	b += sumSeries(earthB1, tau) * tau
	return b * 1e-8
}

func sumSeries(terms [][3]float64, tau float64) float64 {
	var sum float64
	for _, t := range terms {
		sum += t[0] * math.Cos(t[1]+t[2]*tau)
	}
	return sum
}

// nutation returns the nutation in longitude and in obliquity, in radians,
// from the four dominant terms of the IAU 1980 series.
func nutation(T float64) (dpsi, deps float64) {
	omega := degToRad(125.04452 - 1934.136261*T)
	lSun := degToRad(280.4665 + 36000.7698*T)
	lMoon := degToRad(218.3165 + 481267.8813*T)

	dpsi = arcsecToRad(-17.20*math.Sin(omega) - 1.32*math.Sin(2*lSun) -
		0.23*math.Sin(2*lMoon) + 0.21*math.Sin(2*omega))
	deps = arcsecToRad(9.20*math.Cos(omega) + 0.57*math.Cos(2*lSun) +
		0.10*math.Cos(2*lMoon) - 0.09*math.Cos(2*omega))
	return dpsi, deps
}

// meanObliquity returns the mean obliquity of the ecliptic in radians
// (IAU 1980 polynomial).
func meanObliquity(T float64) float64 {
	seconds := 21.448 - T*(46.8150+T*(0.00059-T*0.001813))
	return degToRad(23 + (26+seconds/60)/60)
}

// apparentSiderealTime returns the Greenwich apparent sidereal time as an
// angle in radians.
func apparentSiderealTime(jd, T, dpsi, eps float64) float64 {
	theta := 280.46061837 + 360.98564736629*(jd-j2000) +
		0.000387933*T*T - T*T*T/38710000
	return normalizeRad(degToRad(theta) + dpsi*math.Cos(eps))
}

// normalizeRad reduces an angle to [0, 2*pi).
func normalizeRad(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

func radToDeg(r float64) float64 { return r * 180 / math.Pi }

func arcsecToRad(s float64) float64 { return degToRad(s / 3600) }
