// Package recurrence parses recurrence phrases like "weekly on mon-fri" or
// "monthly on the 18th" and computes the next occurrence of a due date.
package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/abatilo/todomd/internal/dateparse"
)

// Weekday is a day of the week, numbered Monday=1 through Sunday=7.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	Monday:    "monday",
	Tuesday:   "tuesday",
	Wednesday: "wednesday",
	Thursday:  "thursday",
	Friday:    "friday",
	Saturday:  "saturday",
	Sunday:    "sunday",
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// FromTime converts Go's Sunday-based weekday.
func FromTime(d time.Weekday) Weekday {
	if d == time.Sunday {
		return Sunday
	}
	return Weekday(d)
}

// Kind tags the recurrence variant.
type Kind string

const (
	KindDaily   Kind = "daily"
	KindWeekly  Kind = "weekly"
	KindMonthly Kind = "monthly"
	KindYearly  Kind = "yearly"
)

// Pattern is a parsed recurrence rule.
//
// Days holds the selected weekdays for a weekly pattern, de-duplicated in
// insertion order, never empty. DayOfMonth holds the target day for a
// monthly pattern; zero means "same day of month as the due date".
type Pattern struct {
	Kind       Kind
	Days       []Weekday
	DayOfMonth int
}

// Equal reports whether two patterns are the same rule. Day order matters
// only for rendering, not for semantics, but patterns parsed from the same
// phrase always carry the same order, so element-wise comparison suffices
// for change detection.
func (p Pattern) Equal(other Pattern) bool {
	if p.Kind != other.Kind || p.DayOfMonth != other.DayOfMonth {
		return false
	}
	if len(p.Days) != len(other.Days) {
		return false
	}
	for i, d := range p.Days {
		if other.Days[i] != d {
			return false
		}
	}
	return true
}

// String renders the canonical phrase: abbreviations expanded, a full
// seven-day weekly pattern collapsed to bare "weekly", and a monthly day
// written with its ordinal suffix.
func (p Pattern) String() string {
	switch p.Kind {
	case KindDaily, KindYearly:
		return string(p.Kind)
	case KindMonthly:
		if p.DayOfMonth == 0 {
			return "monthly"
		}
		return fmt.Sprintf("monthly on %d%s", p.DayOfMonth, ordinalSuffix(p.DayOfMonth))
	case KindWeekly:
		if len(p.Days) == 7 {
			return "weekly"
		}
		names := make([]string, len(p.Days))
		for i, d := range p.Days {
			names[i] = d.String()
		}
		return "weekly on " + strings.Join(names, ", ")
	default:
		return string(p.Kind)
	}
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// NextOccurrence advances dueUTC by one period of the pattern. The due
// instant is converted to the local calendar in loc, advanced, and
// converted back; a next wall time skipped by a clock shift yields false,
// and one occurring twice resolves to the earlier instant. The result is
// always strictly later than dueUTC in the local calendar.
func NextOccurrence(dueUTC time.Time, p Pattern, loc *time.Location) (time.Time, bool) {
	local := dueUTC.In(loc)
	year, month, day := local.Date()
	// Calendar arithmetic happens on the wall date in UTC, where AddDate
	// never crosses a clock shift.
	wall := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	var next time.Time
	switch p.Kind {
	case KindDaily:
		next = wall.AddDate(0, 0, 1)
	case KindWeekly:
		next = wall.AddDate(0, 0, weeklyDelta(FromTime(wall.Weekday()), p.Days))
	case KindMonthly:
		first := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
		target := p.DayOfMonth
		if target == 0 {
			target = day
		}
		next = time.Date(first.Year(), first.Month(),
			min(target, lastDayOfMonth(first.Year(), first.Month())), 0, 0, 0, 0, time.UTC)
	case KindYearly:
		next = time.Date(year+1, month,
			min(day, lastDayOfMonth(year+1, month)), 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}, false
	}

	hour, minute, sec := local.Clock()
	localized, ok := dateparse.Localize(next.Year(), next.Month(), next.Day(), hour, minute, sec, local.Nanosecond(), loc)
	if !ok {
		return time.Time{}, false
	}
	return localized.UTC(), true
}

// IsRollover reports whether the transition from prevDue to currDue is
// exactly the pattern's next occurrence, which is how a recurring task's
// completion shows up in the document.
func IsRollover(prevDue, currDue time.Time, p Pattern, loc *time.Location) bool {
	next, ok := NextOccurrence(prevDue, p, loc)
	return ok && next.Equal(currDue)
}

// weeklyDelta returns the minimum strictly-positive day delta from current
// to any selected day. A pattern whose only day equals the current one
// advances a full week.
func weeklyDelta(current Weekday, days []Weekday) int {
	next := 7
	for _, d := range days {
		delta := (int(d) + 7 - int(current)) % 7
		if delta == 0 {
			delta = 7
		}
		if delta < next {
			next = delta
		}
	}
	return next
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
