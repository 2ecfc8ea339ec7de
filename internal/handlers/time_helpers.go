package handlers

import (
	"time"

	"github.com/officinadeltaglio/barbershop-api/internal/timezone"
	"github.com/officinadeltaglio/barbershop-api/internal/validators"
)

func parseLocalDate(dateStr string, loc *time.Location) (time.Time, bool) {
	if !validators.IsDate(dateStr) {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func todayIn(loc *time.Location) time.Time {
	return timezone.Midnight(time.Now(), loc)
}
