package validators

import (
	"regexp"
	"strings"
)

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9 ]{6,20}$`)
)

// IsDate checks the YYYY-MM-DD shape only; calendar validity is left
// to time.ParseInLocation at the call site.
func IsDate(s string) bool {
	return dateRe.MatchString(s)
}

func IsTime(s string) bool {
	return timeRe.MatchString(s)
}

func IsEmail(s string) bool {
	return len(s) <= 100 && emailRe.MatchString(s)
}

func IsPhone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

func IsName(s string) bool {
	n := len(strings.TrimSpace(s))
	return n >= 2 && n <= 100
}
