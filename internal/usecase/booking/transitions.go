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

// Admin-side status transitions: complete, no-show, cancel by id.

type Transitions struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	now func() time.Time
}

func NewTransitions(repo domain.Repository, auditor *audit.Dispatcher) *Transitions {
	return &Transitions{
		repo:  repo,
		audit: auditor,
		now:   timezone.Now,
	}
}

func (uc *Transitions) WithNow(now func() time.Time) *Transitions {
	uc.now = now
	return uc
}

func (uc *Transitions) Complete(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if err := domain.Complete(ap, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func (uc *Transitions) MarkNoShow(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if err := domain.MarkNoShow(ap, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_noshow",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func (uc *Transitions) Cancel(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
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

	if wasQueued {
		if err := ucqueue.Renumber(ctx, uc.repo, ap.Date); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
