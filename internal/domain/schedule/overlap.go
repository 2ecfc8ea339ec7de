package schedule

// Overlaps reports whether [s1, s1+d1) and [s2, s2+d2) intersect.
// Half-open semantics: back-to-back intervals do not overlap, equal
// start times always do.
func Overlaps(s1, d1, s2, d2 int) bool {
	return s1 < s2+d2 && s2 < s1+d1
}

// SlotFree is the single source of truth for "is this slot free": the
// grid sweep in GenerateSlots and the booking re-check both go through
// it, so they cannot drift apart.
func SlotFree(start, durationMin int, booked []Interval, closeMin int) bool {
	if start+durationMin > closeMin {
		return false
	}
	for _, b := range booked {
		if Overlaps(start, durationMin, b.Start, b.End-b.Start) {
			return false
		}
	}
	return true
}
