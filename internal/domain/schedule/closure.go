package schedule

import (
	"time"

	"github.com/officinadeltaglio/barbershop-api/internal/models"
)

// IsClosed reports whether the shop is closed on date's calendar day.
// Both sides are normalized to the business-local Y-M-D before any
// comparison: ClosedDay rows come back from the store as timestamps,
// and comparing instants shifts the match by a day near midnight.
func IsClosed(date time.Time, days []models.ClosedDay, loc *time.Location) (bool, *models.ClosedDay) {
	target := date.In(loc)
	ty, tm, td := target.Date()

	for i := range days {
		d := days[i].Date.In(loc)
		dy, dm, dd := d.Date()

		if days[i].Recurring {
			if dm == tm && dd == td {
				return true, &days[i]
			}
			continue
		}

		if dy == ty && dm == tm && dd == td {
			return true, &days[i]
		}
	}

	return false, nil
}
