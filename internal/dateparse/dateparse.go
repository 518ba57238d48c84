// Package dateparse resolves free-form date/time phrases like "tuesday 9pm"
// or "tomorow 14:30 utc" into absolute UTC instants. Resolution is pure: the
// current instant and the caller's local offset are passed in, never read
// from the system.
package dateparse

import (
	"strings"
	"time"

	"github.com/abatilo/todomd/internal/fuzzy"
)

// Due phrases with no explicit time default to end of day.
const (
	defaultHour   = 23
	defaultMinute = 59
)

var dateVocabulary = []string{
	"today", "tomorrow",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var utcVocabulary = []string{"utc", "gmt", "z"}

// Resolve parses text into a UTC instant. A strict RFC 3339 timestamp is
// accepted as-is. Anything else is treated as a human phrase: an optional
// trailing timezone token overrides home, an optional clock time defaults to
// 23:59, and the date comes from a fuzzy-matched keyword (today, tomorrow,
// or a weekday name). Returns false if the phrase is empty or denotes a
// local wall time that does not exist or is ambiguous.
func Resolve(text string, now time.Time, home *time.Location) (time.Time, bool) {
	if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(text)); err == nil {
		return parsed.UTC(), true
	}

	normalized := normalize(text)
	if normalized == "" {
		return time.Time{}, false
	}

	value, loc := splitTimezoneSuffix(normalized, home)
	nowLocal := now.In(loc)

	hour, minute, hasTime := defaultHour, defaultMinute, false
	if h, m, ok := parseClock(value); ok {
		hour, minute, hasTime = h, m, true
	}

	year, month, day := resolveDate(value, nowLocal, hasTime, hour, minute)

	local, ok := localizeStrict(year, month, day, hour, minute, loc)
	if !ok {
		return time.Time{}, false
	}
	return local.UTC(), true
}

// normalize trims, lowercases, strips periods ("9 p.m." becomes "9 pm"),
// and collapses internal whitespace.
func normalize(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	lowered = strings.ReplaceAll(lowered, ".", "")
	return strings.Join(strings.Fields(lowered), " ")
}

// splitTimezoneSuffix detects a trailing timezone token and returns the
// remaining phrase plus the location to resolve in. The token must be the
// last whitespace-separated word: a fuzzy match for utc/gmt/z, or a numeric
// offset like -05:00 or +0530. Anything else leaves home in effect.
func splitTimezoneSuffix(value string, home *time.Location) (string, *time.Location) {
	idx := strings.LastIndexByte(value, ' ')
	if idx < 0 {
		return value, home
	}
	loc, ok := parseTimezoneToken(value[idx+1:])
	if !ok {
		return value, home
	}
	return strings.TrimSpace(value[:idx]), loc
}

func parseTimezoneToken(token string) (*time.Location, bool) {
	if _, ok := fuzzy.Match(token, utcVocabulary); ok {
		return time.UTC, true
	}
	return parseOffset(token)
}

// parseOffset parses ±HH:MM or ±HHMM into a fixed zone.
func parseOffset(token string) (*time.Location, bool) {
	if len(token) == 0 {
		return nil, false
	}
	sign := 0
	switch token[0] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return nil, false
	}

	digits := token[1:]
	if len(digits) == 5 && digits[2] == ':' {
		digits = digits[:2] + digits[3:]
	}
	if len(digits) != 4 || !allDigits(digits) {
		return nil, false
	}

	hours := int(digits[0]-'0')*10 + int(digits[1]-'0')
	minutes := int(digits[2]-'0')*10 + int(digits[3]-'0')
	if hours > 23 || minutes > 59 {
		return nil, false
	}

	return time.FixedZone(token, sign*(hours*3600+minutes*60)), true
}

// resolveDate picks the calendar date for the phrase. The first word token
// that fuzzy-matches a date keyword wins; with no keyword the date is today,
// rolled to tomorrow when an explicit time has already passed.
func resolveDate(value string, nowLocal time.Time, hasTime bool, hour, minute int) (int, time.Month, int) {
	keyword := ""
	for _, token := range wordTokens(value) {
		if match, ok := fuzzy.Match(token, dateVocabulary); ok {
			keyword = match
			break
		}
	}

	// True when the requested wall time is not strictly later than now's.
	clockPassed := func() bool {
		nh, nm, _ := nowLocal.Clock()
		return hour < nh || (hour == nh && minute <= nm)
	}

	base := nowLocal
	switch keyword {
	case "today":
	case "tomorrow":
		base = base.AddDate(0, 0, 1)
	case "":
		if hasTime && clockPassed() {
			base = base.AddDate(0, 0, 1)
		}
	default:
		target := weekdayNumber(keyword)
		current := isoWeekday(nowLocal.Weekday())
		delta := (target - current + 7) % 7
		// A zero delta means the named day is today. "tuesday 11pm" said
		// on a Tuesday afternoon means tonight; every other zero-delta
		// case means next week, so the result is never already past.
		if delta == 0 && (!hasTime || clockPassed()) {
			delta = 7
		}
		base = base.AddDate(0, 0, delta)
	}

	return base.Date()
}

func weekdayNumber(name string) int {
	for i, candidate := range dateVocabulary[2:] {
		if candidate == name {
			return i + 1
		}
	}
	return 0
}

// isoWeekday maps Go's Sunday-based weekday to ISO numbering, Monday=1.
func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// wordTokens returns the maximal runs of letters in value, in order.
func wordTokens(value string) []string {
	var tokens []string
	start := -1
	for i := 0; i <= len(value); i++ {
		if i < len(value) && isLetter(value[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, value[start:i])
			start = -1
		}
	}
	return tokens
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
