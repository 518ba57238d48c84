package dateparse

import "time"

// dstProbes are the clock-shift sizes checked when classifying a wall time
// as ambiguous. Hour shifts cover nearly every zone; a handful use 30
// minutes.
var dstProbes = []time.Duration{30 * time.Minute, time.Hour}

// Localize maps wall-clock fields onto loc. A wall time skipped by a
// forward clock shift yields false; a wall time that occurs twice resolves
// to the earlier instant.
func Localize(year int, month time.Month, day, hour, minute, sec, nsec int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, month, day, hour, minute, sec, nsec, loc)
	if !sameWall(t, year, month, day, hour, minute) {
		return time.Time{}, false
	}
	for _, probe := range dstProbes {
		if earlier := t.Add(-probe); sameWall(earlier, year, month, day, hour, minute) {
			return earlier, true
		}
	}
	return t, true
}

// localizeStrict is the resolver's variant: both nonexistent and ambiguous
// wall times fail, since a due phrase that could mean two instants is not
// resolved on the caller's behalf.
func localizeStrict(year int, month time.Month, day, hour, minute int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, month, day, hour, minute, 0, 0, loc)
	if !sameWall(t, year, month, day, hour, minute) {
		return time.Time{}, false
	}
	for _, probe := range dstProbes {
		if sameWall(t.Add(-probe), year, month, day, hour, minute) ||
			sameWall(t.Add(probe), year, month, day, hour, minute) {
			return time.Time{}, false
		}
	}
	return t, true
}

func sameWall(t time.Time, year int, month time.Month, day, hour, minute int) bool {
	y, m, d := t.Date()
	h, min, _ := t.Clock()
	return y == year && m == month && d == day && h == hour && min == minute
}
