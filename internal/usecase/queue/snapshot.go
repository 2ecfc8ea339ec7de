package queue

import (
	"context"
	"time"

	domain "github.com/officinadeltaglio/barbershop-api/internal/domain/appointment"
	dqueue "github.com/officinadeltaglio/barbershop-api/internal/domain/queue"
	"github.com/officinadeltaglio/barbershop-api/internal/timezone"
)

// Member is one queue entry as shown on the board.
type Member struct {
	ID               uint       `json:"id"`
	ClientName       string     `json:"client_name"`
	ServiceName      string     `json:"service_name"`
	DurationMin      int        `json:"duration_min"`
	Position         int        `json:"position,omitempty"`
	EstimatedWaitMin int        `json:"estimated_wait_min"`
	CheckedInAt      *time.Time `json:"checked_in_at,omitempty"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
}

// QueueSnapshot is the on-demand view the admin UI polls.
type QueueSnapshot struct {
	Date      string   `json:"date"`
	InService *Member  `json:"in_service,omitempty"`
	Waiting   []Member `json:"waiting"`
}

type Snapshot struct {
	repo domain.Repository
	loc  *time.Location

	now func() time.Time
}

func NewSnapshot(repo domain.Repository, loc *time.Location) *Snapshot {
	return &Snapshot{
		repo: repo,
		loc:  loc,
		now:  timezone.Now,
	}
}

func (uc *Snapshot) WithNow(now func() time.Time) *Snapshot {
	uc.now = now
	return uc
}

func (uc *Snapshot) Execute(ctx context.Context) (*QueueSnapshot, error) {
	now := uc.now()
	today := timezone.Midnight(now, uc.loc)

	waiting, err := uc.repo.ListQueue(ctx, today)
	if err != nil {
		return nil, err
	}

	inService, err := uc.repo.GetInService(ctx, today)
	if err != nil {
		return nil, err
	}

	snap := &QueueSnapshot{
		Date:    timezone.DateKey(today, uc.loc),
		Waiting: make([]Member, 0, len(waiting)),
	}

	if inService != nil {
		remaining := 0
		if inService.StartedAt != nil {
			remaining = dqueue.RemainingServiceMin(inService.DurationMin, *inService.StartedAt, now)
		}
		snap.InService = &Member{
			ID:               inService.ID,
			ClientName:       inService.ClientName,
			ServiceName:      inService.Service.Name,
			DurationMin:      inService.DurationMin,
			EstimatedWaitMin: remaining,
			StartedAt:        inService.StartedAt,
		}
	}

	for i, m := range waiting {
		snap.Waiting = append(snap.Waiting, Member{
			ID:               m.ID,
			ClientName:       m.ClientName,
			ServiceName:      m.Service.Name,
			DurationMin:      m.DurationMin,
			Position:         i + 1,
			EstimatedWaitMin: estimateFor(waiting, inService, i, now),
			CheckedInAt:      m.CheckedInAt,
		})
	}

	return snap, nil
}
