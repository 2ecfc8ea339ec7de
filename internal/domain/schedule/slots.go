package schedule

import "time"

const DefaultSlotIntervalMin = 30

// Slot is one candidate start time for a given day and service.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// SlotInput carries everything GenerateSlots needs; "now" is an
// explicit input so the computation is deterministic under test.
type SlotInput struct {
	Date  time.Time
	Hours DayHours

	// Closed per the closure check (ClosedDay records); independent of
	// Hours.Closed, which is the weekday schedule.
	Closed bool

	DurationMin int
	IntervalMin int

	Booked []Interval

	Now           time.Time
	MinAdvanceMin int
}

// GenerateSlots produces the day grid, one entry per IntervalMin step,
// each flagged available or not; the last available start is
// close-duration. Pure function: callers supply the already-fetched
// booked intervals and closure verdict.
func GenerateSlots(in SlotInput) []Slot {
	if in.Hours.Closed {
		return []Slot{}
	}

	step := in.IntervalMin
	if step <= 0 {
		step = DefaultSlotIntervalMin
	}

	// Earliest bookable start for today; -1 disables the filter for
	// future days. Days already past get no available slot at all.
	minStart := -1
	dy, dm, dd := in.Date.Date()
	ny, nm, nd := in.Now.Date()
	switch {
	case dy == ny && dm == nm && dd == nd:
		minStart = in.Now.Hour()*60 + in.Now.Minute() + in.MinAdvanceMin
	case in.Date.Before(time.Date(ny, nm, nd, 0, 0, 0, 0, in.Now.Location())):
		minStart = 24 * 60
	}

	free := func(cur int) bool {
		available := !in.Closed &&
			SlotFree(cur, in.DurationMin, in.Booked, in.Hours.Close)

		if available && in.Hours.HasBreak &&
			Overlaps(cur, in.DurationMin, in.Hours.BreakStart, in.Hours.BreakEnd-in.Hours.BreakStart) {
			available = false
		}

		if available && minStart >= 0 && cur < minStart {
			available = false
		}

		return available
	}

	slots := make([]Slot, 0, (in.Hours.Close-in.Hours.Open)/step+2)

	// The grid covers every start time inside the open window; entries
	// whose interval spills past close are emitted as unavailable, so
	// the caller can show them greyed out rather than missing.
	for cur := in.Hours.Open; cur < in.Hours.Close; cur += step {
		slots = append(slots, Slot{
			Time:      FormatHM(cur),
			Available: free(cur),
		})
	}

	// The last sellable start is close-duration. When the duration is
	// not a multiple of the step it falls between grid entries and gets
	// its own slot, otherwise a day loses its final booking.
	if in.DurationMin > 0 {
		last := in.Hours.Close - in.DurationMin
		if last > in.Hours.Open && last < in.Hours.Close &&
			(last-in.Hours.Open)%step != 0 {

			idx := (last-in.Hours.Open)/step + 1
			slots = append(slots, Slot{})
			copy(slots[idx+1:], slots[idx:])
			slots[idx] = Slot{
				Time:      FormatHM(last),
				Available: free(last),
			}
		}
	}

	return slots
}
