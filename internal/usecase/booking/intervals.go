package booking

import (
	"github.com/officinadeltaglio/barbershop-api/internal/domain/schedule"
	"github.com/officinadeltaglio/barbershop-api/internal/models"
)

// bookedIntervals maps non-cancelled day rows to half-open minute
// intervals. Rows with a malformed time are skipped rather than made
// to block the whole day.
func bookedIntervals(aps []models.Appointment) []schedule.Interval {
	out := make([]schedule.Interval, 0, len(aps))
	for _, ap := range aps {
		start, err := schedule.ParseHM(ap.Time)
		if err != nil {
			continue
		}
		out = append(out, schedule.Interval{
			Start: start,
			End:   start + ap.DurationMin,
		})
	}
	return out
}
