package queue

import (
	"context"
	"time"

	domain "github.com/officinadeltaglio/barbershop-api/internal/domain/appointment"
)

// Renumber rewrites the day's inqueue positions as a dense 1..N
// ranking in check-in order. Positions are always recomputed from the
// live queue, never decremented in place, so deletions can't leave
// gaps or duplicates behind.
func Renumber(ctx context.Context, repo domain.Repository, day time.Time) error {
	members, err := repo.ListQueue(ctx, day)
	if err != nil {
		return err
	}

	for i, m := range members {
		want := i + 1
		if m.QueuePosition != nil && *m.QueuePosition == want {
			continue
		}
		if err := repo.UpdateQueuePosition(ctx, m.ID, want); err != nil {
			return err
		}
	}

	return nil
}
