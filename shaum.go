// Package shaum determines the Islamic legal fasting status (hukum) of a
// calendar day and the astronomically derived fast-boundary times.
//
// The heavy lifting lives in the subpackages: calendar (Hijri conversion),
// astro (solar position and prayer boundaries), rules (the status engine
// and Daud scheduling) and i18n (localized rendering). This package is a
// thin convenience layer over rules for the common default-context cases.
//
//	analysis, err := shaum.AnalyzeDate(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
//	if err == nil && analysis.Status.IsWajib() {
//		fmt.Println("Ramadhan has begun")
//	}
package shaum

import (
	"time"

	"github.com/IRedDragonICY/shaum/rules"
)

// AnalyzeDate evaluates a Gregorian date with the default context: no
// adjustment, Shafi madhab, lenient range policy.
func AnalyzeDate(date time.Time) (*rules.FastingAnalysis, error) {
	return rules.Check(date, rules.DefaultContext())
}

// MustAnalyzeDate is the panicking convenience form of AnalyzeDate. The
// default context is lenient, so in practice this panics only on internal
// failure.
func MustAnalyzeDate(date time.Time) *rules.FastingAnalysis {
	analysis, err := AnalyzeDate(date)
	if err != nil {
		panic(err)
	}
	return analysis
}

// StatusOf returns only the resolved status for a date under the default
// context.
func StatusOf(date time.Time) (rules.FastingStatus, error) {
	analysis, err := AnalyzeDate(date)
	if err != nil {
		return rules.Mubah, err
	}
	return analysis.Status, nil
}

// DaudScheduleFrom builds a default-context Daud schedule starting at
// start; the horizon defaults to one year.
func DaudScheduleFrom(start time.Time) *rules.DaudSchedule {
	return rules.NewDaudSchedule(start, time.Time{}, rules.DefaultContext())
}
