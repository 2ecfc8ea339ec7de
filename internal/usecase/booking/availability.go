package booking

import (
	"context"
	"time"

	domain "github.com/officinadeltaglio/barbershop-api/internal/domain/appointment"
	"github.com/officinadeltaglio/barbershop-api/internal/domain/schedule"
	"github.com/officinadeltaglio/barbershop-api/internal/httperr"
	"github.com/officinadeltaglio/barbershop-api/internal/timezone"
	"github.com/officinadeltaglio/barbershop-api/internal/validators"
)

type GetAvailability struct {
	repo     domain.Repository
	settings Settings

	now func() time.Time
}

func NewGetAvailability(repo domain.Repository, settings Settings) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		settings: settings,
		now:      timezone.Now,
	}
}

func (uc *GetAvailability) WithNow(now func() time.Time) *GetAvailability {
	uc.now = now
	return uc
}

// Execute returns the full day grid for a date and service, each slot
// flagged available or not. Same reasoning as the booking check, run
// against the whole grid instead of one candidate.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	dateStr string,
	serviceID uint,
) ([]schedule.Slot, error) {

	if !validators.IsDate(dateStr) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidFormat)
	}

	day, err := time.ParseInLocation("2006-01-02", dateStr, uc.settings.Loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidFormat)
	}

	svc, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	closedDays, err := uc.repo.ListClosedDays(ctx)
	if err != nil {
		return nil, err
	}
	closed, _ := schedule.IsClosed(day, closedDays, uc.settings.Loc)

	hoursRows, err := uc.repo.ListOpeningHours(ctx)
	if err != nil {
		hoursRows = nil
	}
	hours := schedule.ResolveDay(day, hoursRows)

	conflicts, err := uc.repo.ListDayConflicts(ctx, day, 0)
	if err != nil {
		return nil, err
	}

	return schedule.GenerateSlots(schedule.SlotInput{
		Date:          day,
		Hours:         hours,
		Closed:        closed,
		DurationMin:   svc.DurationMin,
		IntervalMin:   uc.settings.SlotIntervalMin,
		Booked:        bookedIntervals(conflicts),
		Now:           uc.now(),
		MinAdvanceMin: uc.settings.MinAdvanceMinutes,
	}), nil
}
