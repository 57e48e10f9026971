package availability

import "fmt"

// ParseClock converts an "HH:MM" string into minutes since midnight.
// Malformed strings are rejected by callers at the HTTP boundary; the
// calculator itself just skips rows it cannot parse.
func ParseClock(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}

	h := digits2(s[0], s[1])
	m := digits2(s[3], s[4])
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}

	return h*60 + m, true
}

// Clock formats minutes since midnight back into "HH:MM".
func Clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// OnGrid reports whether the time string is a valid slot boundary.
func OnGrid(s string) bool {
	m, ok := ParseClock(s)
	return ok && m%SlotMinutes == 0
}

func digits2(a, b byte) int {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return -1
	}
	return int(a-'0')*10 + int(b-'0')
}
