package rules

import (
	"iter"
	"time"
)

// defaultDaudHorizonDays bounds a schedule built without an end date.
const defaultDaudHorizonDays = 365

// DaudSchedule is a lazy, forward-only generator of fasting dates for the
// alternate-day practice of Daud: fast one day, abstain the next. It is
// single-pass and not restartable; construct a fresh schedule to replay.
//
// Haram days never appear in the schedule. What happens to a turn that
// lands on one is decided by the context's DaudStrategy: Skip consumes the
// turn, Postpone carries it over.
type DaudSchedule struct {
	cursor     time.Time
	end        time.Time
	shouldFast bool
	ctx        *RuleContext
}

// NewDaudSchedule builds a schedule over [start, end]. A zero end defaults
// to one year after start. The schedule evaluates each day leniently even
// under a strict context: range violations end the sequence rather than
// failing it, matching the sequence's total, non-erroring contract.
func NewDaudSchedule(start, end time.Time, ctx *RuleContext) *DaudSchedule {
	if ctx == nil {
		ctx = DefaultContext()
	}
	if ctx.Strict {
		lenient := *ctx
		lenient.Strict = false
		ctx = &lenient
	}
	if end.IsZero() {
		end = start.AddDate(0, 0, defaultDaudHorizonDays)
	}
	return &DaudSchedule{
		cursor:     truncateToDay(start),
		end:        truncateToDay(end),
		shouldFast: true,
		ctx:        ctx,
	}
}

// Next advances the schedule and returns the next fasting date. The second
// result is false once the cursor has passed the end date.
func (s *DaudSchedule) Next() (time.Time, bool) {
	for !s.cursor.After(s.end) {
		date := s.cursor
		s.cursor = s.cursor.AddDate(0, 0, 1)

		analysis, err := Check(date, s.ctx)
		if err != nil {
			// Lenient evaluation makes this unreachable for calendar
			// reasons; treat any failure as exhaustion, not an error.
			return time.Time{}, false
		}

		if analysis.Status.IsHaram() {
			if s.ctx.DaudStrategy == Skip {
				s.shouldFast = !s.shouldFast
			}
			continue
		}

		fast := s.shouldFast
		s.shouldFast = !s.shouldFast
		if fast {
			return date, true
		}
	}
	return time.Time{}, false
}

// All returns the remaining schedule as a range-over-func sequence. Like
// Next, it consumes the schedule.
func (s *DaudSchedule) All() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for {
			date, ok := s.Next()
			if !ok || !yield(date) {
				return
			}
		}
	}
}

// Dates drains the schedule into a slice.
func (s *DaudSchedule) Dates() []time.Time {
	var dates []time.Time
	for date := range s.All() {
		dates = append(dates, date)
	}
	return dates
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
