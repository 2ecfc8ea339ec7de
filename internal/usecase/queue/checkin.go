package queue

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/officinadeltaglio/barbershop-api/internal/audit"
	domain "github.com/officinadeltaglio/barbershop-api/internal/domain/appointment"
	dqueue "github.com/officinadeltaglio/barbershop-api/internal/domain/queue"
	"github.com/officinadeltaglio/barbershop-api/internal/domain/schedule"
	"github.com/officinadeltaglio/barbershop-api/internal/httperr"
	"github.com/officinadeltaglio/barbershop-api/internal/models"
	"github.com/officinadeltaglio/barbershop-api/internal/timezone"
	"github.com/officinadeltaglio/barbershop-api/internal/validators"
)

type CheckInInput struct {
	ClientName  string
	ClientPhone string
	ClientEmail string
	ServiceID   uint
	Notes       string
}

type CheckIn struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location

	now func() time.Time
}

func NewCheckIn(repo domain.Repository, auditor *audit.Dispatcher, loc *time.Location) *CheckIn {
	return &CheckIn{
		repo:  repo,
		audit: auditor,
		loc:   loc,
		now:   timezone.Now,
	}
}

func (uc *CheckIn) WithNow(now func() time.Time) *CheckIn {
	uc.now = now
	return uc
}

// Execute adds a walk-in to today's queue: position is the live count
// of waiting walk-ins plus one, the wait estimate is the duration sum
// of everyone ahead plus the remaining time of the chair.
func (uc *CheckIn) Execute(
	ctx context.Context,
	userID uint,
	in CheckInInput,
) (*models.Appointment, error) {

	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)

	if in.ClientName == "" || in.ClientPhone == "" || in.ServiceID == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeMissingFields)
	}
	if !validators.IsName(in.ClientName) || !validators.IsPhone(in.ClientPhone) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidFormat)
	}

	now := uc.now()
	today := timezone.Midnight(now, uc.loc)

	// The queue is same-day only: no check-in while the shop is closed.
	closedDays, err := uc.repo.ListClosedDays(ctx)
	if err != nil {
		return nil, err
	}
	if closed, _ := schedule.IsClosed(today, closedDays, uc.loc); closed {
		return nil, httperr.ErrBusiness(httperr.CodeDateClosed)
	}

	hoursRows, err := uc.repo.ListOpeningHours(ctx)
	if err != nil {
		hoursRows = nil
	}
	if schedule.ResolveDay(today, hoursRows).Closed {
		return nil, httperr.ErrBusiness(httperr.CodeDateClosed)
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	waiting, err := uc.repo.ListQueue(ctx, today)
	if err != nil {
		return nil, err
	}

	inService, err := uc.repo.GetInService(ctx, today)
	if err != nil {
		return nil, err
	}

	position := len(waiting) + 1
	wait := estimateFor(waiting, inService, len(waiting), now)

	client, err := uc.repo.GetOrCreateClient(ctx, in.ClientName, in.ClientPhone, in.ClientEmail)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClientID:         client.ID,
		ClientName:       in.ClientName,
		ClientPhone:      in.ClientPhone,
		ClientEmail:      in.ClientEmail,
		ServiceID:        svc.ID,
		DurationMin:      svc.DurationMin,
		Date:             today,
		Time:             now.In(uc.loc).Format("15:04"),
		Status:           string(domain.StatusInQueue),
		Kind:             string(domain.KindWalkIn),
		Notes:            in.Notes,
		CancelToken:      uuid.NewString(),
		QueuePosition:    &position,
		EstimatedWaitMin: &wait,
		CheckedInAt:      &now,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "walkin_checked_in",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"position": position},
	})

	return ap, nil
}

// estimateFor computes the wait for the member at index idx of the
// waiting list (idx == len(waiting) for a client about to join).
func estimateFor(
	waiting []models.Appointment,
	inService *models.Appointment,
	idx int,
	now time.Time,
) int {

	ahead := make([]int, 0, idx)
	for i := 0; i < idx && i < len(waiting); i++ {
		ahead = append(ahead, waiting[i].DurationMin)
	}

	remaining := 0
	if inService != nil && inService.StartedAt != nil {
		remaining = dqueue.RemainingServiceMin(inService.DurationMin, *inService.StartedAt, now)
	}

	return dqueue.EstimateWait(ahead, remaining)
}
