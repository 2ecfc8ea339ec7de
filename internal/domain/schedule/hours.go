package schedule

import (
	"time"

	"github.com/officinadeltaglio/barbershop-api/internal/models"
)

// DayHours is the resolved schedule for one calendar day.
type DayHours struct {
	Closed bool

	Open  int
	Close int

	HasBreak   bool
	BreakStart int
	BreakEnd   int
}

type defaultDay struct {
	closed bool
	open   string
	close  string
}

// Fallback schedule when no OpeningHours rows exist (or a row is
// unparsable): Monday 10:00-19:00, Tuesday-Saturday 09:00-19:30,
// Sunday closed. Keep in sync with the seed in internal/db.
var defaultWeek = map[time.Weekday]defaultDay{
	time.Sunday:    {closed: true},
	time.Monday:    {open: "10:00", close: "19:00"},
	time.Tuesday:   {open: "09:00", close: "19:30"},
	time.Wednesday: {open: "09:00", close: "19:30"},
	time.Thursday:  {open: "09:00", close: "19:30"},
	time.Friday:    {open: "09:00", close: "19:30"},
	time.Saturday:  {open: "09:00", close: "19:30"},
}

func defaultDayHours(wd time.Weekday) DayHours {
	d := defaultWeek[wd]
	if d.closed {
		return DayHours{Closed: true}
	}
	open, _ := ParseHM(d.open)
	close, _ := ParseHM(d.close)
	return DayHours{Open: open, Close: close}
}

// ResolveDay picks the persisted row for date's weekday; a missing or
// unparsable row falls back to the static default table. Pure function
// of (date, rows).
func ResolveDay(date time.Time, rows []models.OpeningHours) DayHours {
	wd := date.Weekday()

	for _, row := range rows {
		if time.Weekday(row.Weekday) != wd {
			continue
		}
		if row.Closed {
			return DayHours{Closed: true}
		}

		open, err := ParseHM(row.OpenTime)
		if err != nil {
			return defaultDayHours(wd)
		}
		close, err := ParseHM(row.CloseTime)
		if err != nil || close <= open {
			return defaultDayHours(wd)
		}

		dh := DayHours{Open: open, Close: close}

		if row.BreakStart != "" && row.BreakEnd != "" {
			bs, errS := ParseHM(row.BreakStart)
			be, errE := ParseHM(row.BreakEnd)
			if errS == nil && errE == nil && bs < be {
				dh.HasBreak = true
				dh.BreakStart = bs
				dh.BreakEnd = be
			}
		}

		return dh
	}

	return defaultDayHours(wd)
}
