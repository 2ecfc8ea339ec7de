package schedule

import "fmt"

// Time-of-day values are minutes since midnight, business-local.
// "HH:MM" strings exist only at the edges.

func ParseHM(hm string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hm, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", hm)
	}
	return h*60 + m, nil
}

func FormatHM(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}
