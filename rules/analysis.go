package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/IRedDragonICY/shaum/calendar"
)

// TraceCode identifies a rule-evaluation event in an analysis trace.
type TraceCode string

// Trace codes, one per pipeline stage that can fire, plus diagnostics.
const (
	TraceRollover          TraceCode = "maghrib-rollover"
	TraceClamp             TraceCode = "date-clamped"
	TraceSunsetUnavailable TraceCode = "sunset-unavailable"
	TraceEidAlFitr         TraceCode = "eid-al-fitr"
	TraceEidAlAdha         TraceCode = "eid-al-adha"
	TraceTashriq           TraceCode = "tashriq"
	TraceRamadhan          TraceCode = "ramadhan"
	TraceArafah            TraceCode = "arafah"
	TraceAshura            TraceCode = "ashura"
	TraceTasua             TraceCode = "tasua"
	TraceAyyamulBidh       TraceCode = "ayyamul-bidh"
	TraceMonday            TraceCode = "monday"
	TraceThursday          TraceCode = "thursday"
	TraceShawwal           TraceCode = "shawwal"
	TraceFridaySingledOut  TraceCode = "friday-singled-out"
	TraceSaturdaySingled   TraceCode = "saturday-singled-out"
	TraceCustom            TraceCode = "custom-rule"
)

// RuleTrace is one entry of an evaluation trace: the rule that fired and an
// optional free-form detail. Trace order is evaluation order, not
// significance order.
type RuleTrace struct {
	Code   TraceCode
	Detail string
}

func (t RuleTrace) String() string {
	if t.Detail == "" {
		return string(t.Code)
	}
	return fmt.Sprintf("%s (%s)", t.Code, t.Detail)
}

// FastingAnalysis is the immutable result of one rule-engine evaluation.
// The engine builds it once per call; nothing mutates it afterwards.
type FastingAnalysis struct {
	// Time is the query instant, when the evaluation was timestamp-based;
	// for plain date checks it is noon UTC of the queried date.
	Time time.Time

	// Date is the effective Gregorian civil date that was evaluated, after
	// any Maghrib rollover.
	Date time.Time

	// Status is the resolved fasting status.
	Status FastingStatus

	// Types lists every reason that applied, in evaluation order. The list
	// accumulates monotonically during evaluation and is never removed
	// from.
	Types []FastingType

	// Hijri is the converted Hijri date the rules ran against.
	Hijri calendar.HijriDate

	// Traces records each rule that fired, in evaluation order.
	Traces []RuleTrace
}

// HasReason reports whether the analysis carries the given fasting type.
func (a *FastingAnalysis) HasReason(t FastingType) bool {
	for _, ft := range a.Types {
		if ft == t {
			return true
		}
	}
	return false
}

// Explain assembles the human-readable explanation from the trace, in
// evaluation order. Localized rendering is the i18n package's job; this is
// the plain diagnostic form.
func (a *FastingAnalysis) Explain() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is %s on %s", a.Date.Format("2006-01-02"), a.Status, a.Hijri)
	if len(a.Traces) == 0 {
		return b.String()
	}
	parts := make([]string, len(a.Traces))
	for i, tr := range a.Traces {
		parts[i] = tr.String()
	}
	fmt.Fprintf(&b, ": %s", strings.Join(parts, ", "))
	return b.String()
}
