package rules

import (
	"errors"
	"fmt"
	"time"

	"github.com/IRedDragonICY/shaum/astro"
	"github.com/IRedDragonICY/shaum/calendar"
)

// Hijri calendar anchors the rule pipeline keys on.
const (
	monthMuharram  = 1
	monthRamadhan  = 9
	monthShawwal   = 10
	monthDhulHijja = 12

	dayTasua  = 9
	dayAshura = 10
	dayArafah = 9
)

// Check evaluates the fasting status of a Gregorian date with no
// timestamp or location, anchoring the query at noon UTC so no Maghrib
// rollover can apply. Under a lenient context it is a total function; under
// a strict context out-of-range dates surface calendar.DateOutOfRangeError.
func Check(date time.Time, ctx *RuleContext) (*FastingAnalysis, error) {
	year, month, day := date.UTC().Date()
	noon := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return Analyze(noon, ctx, nil)
}

// Analyze evaluates the fasting status for a query instant.
//
// When coords is non-nil the engine first computes Maghrib for the
// instant's civil date: past sunset, the effective Islamic date is the next
// calendar day. The remaining pipeline runs in fixed order over the
// converted Hijri date and the weekday; any Haram rule resolves the result
// immediately and nothing later runs.
func Analyze(instant time.Time, ctx *RuleContext, coords *astro.GeoCoordinate) (*FastingAnalysis, error) {
	if ctx == nil {
		ctx = DefaultContext()
	}

	instant = instant.UTC()
	year, month, day := instant.Date()
	effective := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	var traces []RuleTrace

	// Stage 1: Maghrib rollover.
	if coords != nil {
		sunset, err := ctx.sunset().Sunset(effective, *coords)
		switch {
		case err != nil:
			// A missing sunset (polar seasons) must never turn into a
			// silently wrong rollover; note it and evaluate the civil date
			// as-is.
			traces = append(traces, RuleTrace{Code: TraceSunsetUnavailable, Detail: err.Error()})
		case instant.After(sunset):
			effective = effective.AddDate(0, 0, 1)
			traces = append(traces, RuleTrace{Code: TraceRollover, Detail: "post-maghrib, effective date advanced one day"})
		}
	}

	// Stage 2: Hijri conversion under the context's range policy.
	hijri, err := calendar.ToHijri(effective, ctx.Adjustment)
	var oor *calendar.DateOutOfRangeError
	if errors.As(err, &oor) {
		if ctx.Strict {
			return nil, err
		}
		clamped := calendar.ClampToRange(effective.AddDate(0, 0, ctx.Adjustment))
		traces = append(traces, RuleTrace{
			Code: TraceClamp,
			Detail: fmt.Sprintf("date %s outside supported range %d-%d, clamped to %s",
				effective.Format("2006-01-02"), calendar.MinYear, calendar.MaxYear,
				clamped.Format("2006-01-02")),
		})
		if hijri, err = calendar.ToHijri(clamped, 0); err != nil {
			return nil, &AnalysisError{Op: "hijri conversion", Err: err}
		}
	} else if err != nil {
		return nil, &AnalysisError{Op: "hijri conversion", Err: err}
	}

	a := &FastingAnalysis{
		Time:   instant,
		Date:   effective,
		Status: Mubah,
		Hijri:  hijri,
		Traces: traces,
	}
	weekday := effective.Weekday()

	// Stage 3: Haram days terminate evaluation immediately.
	switch {
	case hijri.Month == monthShawwal && hijri.Day == 1:
		a.Status = Haram
		a.Types = append(a.Types, TypeEidAlFitr)
		a.Traces = append(a.Traces, RuleTrace{Code: TraceEidAlFitr})
		return a, nil
	case hijri.Month == monthDhulHijja && hijri.Day == 10:
		a.Status = Haram
		a.Types = append(a.Types, TypeEidAlAdha)
		a.Traces = append(a.Traces, RuleTrace{Code: TraceEidAlAdha})
		return a, nil
	case hijri.Month == monthDhulHijja && hijri.Day >= 11 && hijri.Day <= 13:
		a.Status = Haram
		a.Types = append(a.Types, TypeTashriq)
		a.Traces = append(a.Traces, RuleTrace{Code: TraceTashriq})
		return a, nil
	}

	// Stage 4: Wajib. Later stages keep accumulating reasons but can never
	// lower the status below Wajib.
	if hijri.Month == monthRamadhan {
		a.Status = Wajib
		a.Types = append(a.Types, TypeRamadhan)
		a.Traces = append(a.Traces, RuleTrace{Code: TraceRamadhan})
	}

	// Stage 5: Sunnah Muakkadah.
	if hijri.Month == monthDhulHijja && hijri.Day == dayArafah {
		a.Types = append(a.Types, TypeArafah)
		a.Traces = append(a.Traces, RuleTrace{Code: TraceArafah})
		a.raiseTo(SunnahMuakkadah)
	}
	if hijri.Month == monthMuharram && hijri.Day == dayAshura {
		a.Types = append(a.Types, TypeAshura)
		a.Traces = append(a.Traces, RuleTrace{Code: TraceAshura})
		a.raiseTo(SunnahMuakkadah)
	}

	// Stage 6: Sunnah.
	if hijri.Month == monthMuharram && hijri.Day == dayTasua {
		a.Types = append(a.Types, TypeTasua)
		a.Traces = append(a.Traces, RuleTrace{Code: TraceTasua})
		a.raiseTo(Sunnah)
	}
	if hijri.Day >= 13 && hijri.Day <= 15 {
		a.Types = append(a.Types, TypeAyyamulBidh)
		a.Traces = append(a.Traces, RuleTrace{Code: TraceAyyamulBidh})
		a.raiseTo(Sunnah)
	}
	switch weekday {
	case time.Monday:
		a.Types = append(a.Types, TypeMonday)
		a.Traces = append(a.Traces, RuleTrace{Code: TraceMonday})
		a.raiseTo(Sunnah)
	case time.Thursday:
		a.Types = append(a.Types, TypeThursday)
		a.Traces = append(a.Traces, RuleTrace{Code: TraceThursday})
		a.raiseTo(Sunnah)
	}
	if hijri.Month == monthShawwal && hijri.Day > 1 {
		a.Types = append(a.Types, TypeShawwal)
		a.Traces = append(a.Traces, RuleTrace{Code: TraceShawwal})
		a.raiseTo(Sunnah)
	}

	// Stage 7: Makruh, only when no earlier stage gave the day a reason.
	// A Friday that is also Arafah stays SunnahMuakkadah. The four Sunni
	// madhabs agree on this rule.
	if a.Status == Mubah {
		switch ctx.Madhab {
		case Shafi, Hanafi, Maliki, Hanbali:
			switch weekday {
			case time.Friday:
				a.Status = Makruh
				a.Types = append(a.Types, TypeFridayExclusive)
				a.Traces = append(a.Traces, RuleTrace{Code: TraceFridaySingledOut})
			case time.Saturday:
				a.Status = Makruh
				a.Types = append(a.Types, TypeSaturdayExclusive)
				a.Traces = append(a.Traces, RuleTrace{Code: TraceSaturdaySingled})
			}
		}
	}

	// Stage 8: custom rules, max-combined so they can only raise.
	for _, rule := range ctx.CustomRules {
		status, ftype, ok := rule.Evaluate(effective, hijri.Year, hijri.Month, hijri.Day)
		if !ok {
			continue
		}
		a.Types = append(a.Types, ftype)
		a.Traces = append(a.Traces, RuleTrace{Code: TraceCustom, Detail: string(ftype)})
		if status.Outranks(a.Status) {
			a.Status = status
		}
	}

	return a, nil
}

// raiseTo lifts the status to target unless the current status already
// outranks it. Used only while the engine builds the analysis.
func (a *FastingAnalysis) raiseTo(target FastingStatus) {
	if target.Outranks(a.Status) {
		a.Status = target
	}
}
