package dateparse

import "strings"

// parseClock extracts a time of day from the phrase. A 12-hour form
// ("9pm", "9:30 am") is preferred; failing that, a 24-hour "h:mm" form.
// When a 12-hour form is present but invalid (hour 0, hour above 12,
// minute above 59) the whole extraction fails rather than falling back,
// so the caller applies the end-of-day default.
func parseClock(value string) (int, int, bool) {
	if hour, minute, found, valid := scanMeridiem(value); found {
		return hour, minute, valid
	}
	return scan24Hour(value)
}

// scanMeridiem finds the first occurrence of digits, an optional :mm, and
// an am/pm marker, each bounded so "9pmx" and "125pm" do not count. The
// scan mirrors a leftmost-first match: candidate start positions advance
// left to right, a two-digit hour is tried before a one-digit hour, and a
// form with minutes before one without.
func scanMeridiem(value string) (hour, minute int, found, valid bool) {
	for i := 0; i < len(value); i++ {
		if !isDigit(value[i]) || (i > 0 && isWordChar(value[i-1])) {
			continue
		}
		for hlen := 2; hlen >= 1; hlen-- {
			if i+hlen > len(value) || !allDigits(value[i:i+hlen]) {
				continue
			}
			rest := value[i+hlen:]
			for _, withMinutes := range []bool{true, false} {
				m := 0
				j := 0
				if withMinutes {
					if len(rest) < 3 || rest[0] != ':' || !allDigits(rest[1:3]) {
						continue
					}
					m = atoi(rest[1:3])
					j = 3
				}
				k := j
				for k < len(rest) && rest[k] == ' ' {
					k++
				}
				if !strings.HasPrefix(rest[k:], "am") && !strings.HasPrefix(rest[k:], "pm") {
					continue
				}
				if end := k + 2; end < len(rest) && isWordChar(rest[end]) {
					continue
				}

				h := atoi(value[i : i+hlen])
				if h == 0 || h > 12 || m > 59 {
					return 0, 0, true, false
				}
				if rest[k] == 'a' {
					if h == 12 {
						h = 0
					}
				} else if h != 12 {
					h += 12
				}
				return h, m, true, true
			}
		}
	}
	return 0, 0, false, false
}

// scan24Hour finds the first bounded "h:mm" occurrence. As above, an
// out-of-range first match fails the extraction outright.
func scan24Hour(value string) (int, int, bool) {
	for i := 0; i < len(value); i++ {
		if !isDigit(value[i]) || (i > 0 && isWordChar(value[i-1])) {
			continue
		}
		for hlen := 2; hlen >= 1; hlen-- {
			if i+hlen > len(value) || !allDigits(value[i:i+hlen]) {
				continue
			}
			rest := value[i+hlen:]
			if len(rest) < 3 || rest[0] != ':' || !allDigits(rest[1:3]) {
				continue
			}
			if len(rest) > 3 && isWordChar(rest[3]) {
				continue
			}

			hour := atoi(value[i : i+hlen])
			minute := atoi(rest[1:3])
			if hour > 23 || minute > 59 {
				return 0, 0, false
			}
			return hour, minute, true
		}
	}
	return 0, 0, false
}

func atoi(digits string) int {
	n := 0
	for i := 0; i < len(digits); i++ {
		n = n*10 + int(digits[i]-'0')
	}
	return n
}
