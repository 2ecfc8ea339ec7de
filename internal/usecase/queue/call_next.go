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

type CallNext struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location

	now func() time.Time
}

func NewCallNext(repo domain.Repository, auditor *audit.Dispatcher, loc *time.Location) *CallNext {
	return &CallNext{
		repo:  repo,
		audit: auditor,
		loc:   loc,
		now:   timezone.Now,
	}
}

func (uc *CallNext) WithNow(now func() time.Time) *CallNext {
	uc.now = now
	return uc
}

// Execute promotes the queue head to the chair. The promotion is a
// conditional status update, so two concurrent calls resolve to one
// winner; the loser gets slot_conflict, same as a lost booking race.
func (uc *CallNext) Execute(
	ctx context.Context,
	userID uint,
) (*models.Appointment, error) {

	now := uc.now()
	today := timezone.Midnight(now, uc.loc)

	// One chair: finish the current client before calling the next.
	current, err := uc.repo.GetInService(ctx, today)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	waiting, err := uc.repo.ListQueue(ctx, today)
	if err != nil {
		return nil, err
	}
	if len(waiting) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	head := waiting[0]

	promoted, err := uc.repo.PromoteToService(ctx, head.ID, now)
	if err != nil {
		return nil, err
	}
	if !promoted {
		return nil, httperr.ErrBusiness(httperr.CodeSlotConflict)
	}

	if err := Renumber(ctx, uc.repo, today); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "walkin_called",
		Entity:   "appointment",
		EntityID: &head.ID,
	})

	return uc.repo.GetAppointmentByID(ctx, head.ID)
}
