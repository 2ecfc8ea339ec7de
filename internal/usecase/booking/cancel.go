package booking

import (
	"context"
	"time"

	"github.com/officinadeltaglio/barbershop-api/internal/audit"
	domain "github.com/officinadeltaglio/barbershop-api/internal/domain/appointment"
	"github.com/officinadeltaglio/barbershop-api/internal/httperr"
	"github.com/officinadeltaglio/barbershop-api/internal/models"
	"github.com/officinadeltaglio/barbershop-api/internal/timezone"
	ucqueue "github.com/officinadeltaglio/barbershop-api/internal/usecase/queue"
)

type CancelByToken struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
	settings Settings

	now func() time.Time
}

func NewCancelByToken(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	notifier Notifier,
	settings Settings,
) *CancelByToken {
	return &CancelByToken{
		repo:     repo,
		audit:    auditor,
		notifier: notifier,
		settings: settings,
		now:      timezone.Now,
	}
}

func (uc *CancelByToken) WithNow(now func() time.Time) *CancelByToken {
	uc.now = now
	return uc
}

// Execute cancels the appointment that owns the token. Replaying a
// token against an already-cancelled appointment is a no-op, not an
// error: the client may retry a link they already used.
func (uc *CancelByToken) Execute(
	ctx context.Context,
	token string,
) (*models.Appointment, error) {

	if token == "" {
		return nil, httperr.ErrBusiness(httperr.CodeMissingFields)
	}

	ap, err := uc.repo.GetAppointmentByToken(ctx, token)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	wasQueued := domain.Status(ap.Status) == domain.StatusInQueue

	if !domain.Cancel(ap, uc.now()) {
		return ap, nil
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// A walk-in leaving the queue must not leave a hole in positions.
	if wasQueued {
		if err := ucqueue.Renumber(ctx, uc.repo, ap.Date); err != nil {
			return nil, err
		}
	}

	uc.notifier.BookingCancelled(ap)

	uc.audit.Dispatch(audit.Event{
		Action:   "booking_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
