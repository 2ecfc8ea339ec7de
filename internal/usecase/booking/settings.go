package booking

import (
	"time"

	"github.com/officinadeltaglio/barbershop-api/internal/models"
)

// Settings are the scheduling knobs shared by the booking use cases,
// resolved once from config at wiring time.
type Settings struct {
	Loc *time.Location

	SlotIntervalMin   int
	MinAdvanceMinutes int
	HorizonDays       int

	// BaseURL is prepended to cancellation links handed to clients.
	BaseURL string
}

func (s Settings) CancelURL(token string) string {
	return s.BaseURL + "/cancella?token=" + token
}

// Notifier delivers best-effort confirmations. Implementations must
// never block the booking: failures are logged, not returned.
type Notifier interface {
	BookingConfirmed(ap *models.Appointment, svc *models.Service, cancelURL string)
	BookingCancelled(ap *models.Appointment)
}
