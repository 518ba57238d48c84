package recurrence

import (
	"strings"
	"time"

	"github.com/abatilo/todomd/internal/fuzzy"
)

// dayAliases maps accepted weekday spellings, full names first so the fuzzy
// tie-break prefers them. Order is part of the parse behavior.
var dayAliases = []struct {
	name string
	day  Weekday
}{
	{"monday", Monday},
	{"mon", Monday},
	{"tuesday", Tuesday},
	{"tue", Tuesday},
	{"tues", Tuesday},
	{"wednesday", Wednesday},
	{"wed", Wednesday},
	{"thursday", Thursday},
	{"thu", Thursday},
	{"thur", Thursday},
	{"thurs", Thursday},
	{"friday", Friday},
	{"fri", Friday},
	{"saturday", Saturday},
	{"sat", Saturday},
	{"sunday", Sunday},
	{"sun", Sunday},
}

var dayAliasNames = func() []string {
	names := make([]string, len(dayAliases))
	for i, alias := range dayAliases {
		names[i] = alias.name
	}
	return names
}()

// Parse interprets a recurrence phrase. Bare "weekly" anchors to the
// weekday of nowLocal; "weekly on <list>" accepts comma- or
// "and"-separated weekday names and ranges; "monthly on <ordinal>" accepts
// an optional leading "the" and an ordinal suffix. Returns false for
// anything else.
func Parse(text string, nowLocal time.Time) (Pattern, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	switch normalized {
	case "daily":
		return Pattern{Kind: KindDaily}, true
	case "monthly":
		return Pattern{Kind: KindMonthly}, true
	case "yearly":
		return Pattern{Kind: KindYearly}, true
	case "weekly":
		return Pattern{Kind: KindWeekly, Days: []Weekday{FromTime(nowLocal.Weekday())}}, true
	}

	if daysPart, ok := strings.CutPrefix(normalized, "weekly on "); ok {
		days, ok := parseWeeklyDays(daysPart)
		if !ok {
			return Pattern{}, false
		}
		return Pattern{Kind: KindWeekly, Days: days}, true
	}

	if dayPart, ok := strings.CutPrefix(normalized, "monthly on "); ok {
		day, ok := parseMonthlyDay(dayPart)
		if !ok {
			return Pattern{}, false
		}
		return Pattern{Kind: KindMonthly, DayOfMonth: day}, true
	}

	return Pattern{}, false
}

// parseWeeklyDays expands a day list like "mon, wed and fri-sun" into a
// de-duplicated slice preserving first-mention order. Any unparseable
// token fails the whole list.
func parseWeeklyDays(raw string) ([]Weekday, bool) {
	var days []Weekday
	seen := [Sunday + 1]bool{}

	normalized := strings.ReplaceAll(raw, " and ", ",")
	for _, token := range strings.Split(normalized, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		group, ok := parseDayGroup(token)
		if !ok {
			return nil, false
		}
		for _, day := range group {
			if !seen[day] {
				seen[day] = true
				days = append(days, day)
			}
		}
	}

	if len(days) == 0 {
		return nil, false
	}
	return days, true
}

// parseDayGroup parses a single weekday or an A-B range. A range walks
// forward from A to B inclusive and wraps across the week boundary, so
// "fri-mon" means friday through monday.
func parseDayGroup(token string) ([]Weekday, bool) {
	if start, end, found := strings.Cut(token, "-"); found {
		startDay, ok := parseDayOfWeek(strings.TrimSpace(start))
		if !ok {
			return nil, false
		}
		endDay, ok := parseDayOfWeek(strings.TrimSpace(end))
		if !ok {
			return nil, false
		}
		return expandDayRange(startDay, endDay), true
	}

	day, ok := parseDayOfWeek(token)
	if !ok {
		return nil, false
	}
	return []Weekday{day}, true
}

func expandDayRange(start, end Weekday) []Weekday {
	days := []Weekday{start}
	for day := start; day != end; {
		day++
		if day > Sunday {
			day = Monday
		}
		days = append(days, day)
	}
	return days
}

func parseDayOfWeek(raw string) (Weekday, bool) {
	match, ok := fuzzy.Match(raw, dayAliasNames)
	if !ok {
		return 0, false
	}
	for _, alias := range dayAliases {
		if alias.name == match {
			return alias.day, true
		}
	}
	return 0, false
}

// parseMonthlyDay parses an ordinal like "the 18th" or "1st" into 1..31.
func parseMonthlyDay(raw string) (int, bool) {
	cleaned := strings.TrimSpace(raw)
	for strings.HasPrefix(cleaned, "the ") {
		cleaned = cleaned[len("the "):]
	}

	i := 0
	for i < len(cleaned) && i < 2 && cleaned[i] >= '0' && cleaned[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	day := 0
	for _, c := range []byte(cleaned[:i]) {
		day = day*10 + int(c-'0')
	}

	switch suffix := cleaned[i:]; suffix {
	case "", "st", "nd", "rd", "th":
	default:
		return 0, false
	}

	if day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}
