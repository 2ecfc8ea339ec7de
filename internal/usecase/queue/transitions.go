package queue

import (
	"context"
	"time"

	"github.com/officinadeltaglio/barbershop-api/internal/audit"
	domain "github.com/officinadeltaglio/barbershop-api/internal/domain/appointment"
	"github.com/officinadeltaglio/barbershop-api/internal/httperr"
	"github.com/officinadeltaglio/barbershop-api/internal/models"
	"github.com/officinadeltaglio/barbershop-api/internal/timezone"
)

// Transitions: finishing the client in the chair, or a waiting walk-in
// leaving the queue.

type Transitions struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location

	now func() time.Time
}

func NewTransitions(repo domain.Repository, auditor *audit.Dispatcher, loc *time.Location) *Transitions {
	return &Transitions{
		repo:  repo,
		audit: auditor,
		loc:   loc,
		now:   timezone.Now,
	}
}

func (uc *Transitions) WithNow(now func() time.Time) *Transitions {
	uc.now = now
	return uc
}

// Complete finishes the in-service walk-in; waiting positions are not
// touched, they already exclude the chair.
func (uc *Transitions) Complete(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if domain.Status(ap.Status) != domain.StatusInService {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	if err := domain.Complete(ap, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "walkin_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// Leave removes a waiting walk-in and closes the gap in positions.
// Leaving twice is a no-op.
func (uc *Transitions) Leave(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if domain.Status(ap.Status) != domain.StatusInQueue &&
		domain.Status(ap.Status) != domain.StatusCancelled {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	if !domain.Cancel(ap, uc.now()) {
		return ap, nil
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if err := Renumber(ctx, uc.repo, ap.Date); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "walkin_left",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
