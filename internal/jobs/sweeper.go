// Package jobs holds the cron sweeps that keep appointment state
// honest without any admin action: stale confirmed bookings become
// no-shows (so the one-active-booking policy can't lock a client out
// forever) and the walk-in queue is emptied at end of day.
package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/officinadeltaglio/barbershop-api/internal/domain/schedule"
	"github.com/officinadeltaglio/barbershop-api/internal/models"
	"github.com/officinadeltaglio/barbershop-api/internal/timezone"
)

// NoShowGraceMin is how long after the appointment's end we wait
// before writing off a confirmed booking as a no-show.
const NoShowGraceMin = 30

type Sweeper struct {
	db  *gorm.DB
	loc *time.Location
}

func NewSweeper(db *gorm.DB, loc *time.Location) *Sweeper {
	return &Sweeper{db: db, loc: loc}
}

// MarkNoShows flips confirmed bookings whose slot ended more than the
// grace period ago to noshow.
func (s *Sweeper) MarkNoShows() {
	now := time.Now().In(s.loc)
	today := timezone.Midnight(now, s.loc)

	var candidates []models.Appointment
	if err := s.db.
		Where("kind = 'booking' AND status IN ('pending','confirmed') AND date <= ?", today).
		Find(&candidates).Error; err != nil {
		log.Printf("noshow sweep: query failed: %v", err)
		return
	}

	swept := 0
	for i := range candidates {
		ap := &candidates[i]

		end, ok := appointmentEnd(ap, s.loc)
		if !ok {
			continue
		}
		if now.Sub(end) < NoShowGraceMin*time.Minute {
			continue
		}

		completedAt := now
		ap.Status = "noshow"
		ap.CompletedAt = &completedAt
		if err := s.db.Save(ap).Error; err != nil {
			log.Printf("noshow sweep: appointment %d: %v", ap.ID, err)
			continue
		}
		swept++
	}

	if swept > 0 {
		log.Printf("noshow sweep: marked %d appointment(s)", swept)
	}
}

// CloseQueue cancels whatever is still waiting at end of day and
// closes out an in-service client left behind; the queue never
// carries over to tomorrow.
func (s *Sweeper) CloseQueue() {
	now := time.Now().In(s.loc)
	today := timezone.Midnight(now, s.loc)

	res := s.db.Model(&models.Appointment{}).
		Where("kind = 'walkin' AND status = 'inqueue' AND date <= ?", today).
		Updates(map[string]any{
			"status":             "cancelled",
			"cancelled_at":       now,
			"queue_position":     nil,
			"estimated_wait_min": nil,
		})
	if res.Error != nil {
		log.Printf("queue sweep: cancel waiting failed: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("queue sweep: cancelled %d waiting walk-in(s)", res.RowsAffected)
	}

	res = s.db.Model(&models.Appointment{}).
		Where("kind = 'walkin' AND status = 'inservice' AND date <= ?", today).
		Updates(map[string]any{
			"status":       "completed",
			"completed_at": now,
		})
	if res.Error != nil {
		log.Printf("queue sweep: close in-service failed: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("queue sweep: completed %d in-service walk-in(s)", res.RowsAffected)
	}
}

func appointmentEnd(ap *models.Appointment, loc *time.Location) (time.Time, bool) {
	startMin, err := schedule.ParseHM(ap.Time)
	if err != nil {
		return time.Time{}, false
	}

	day := timezone.Midnight(ap.Date, loc)
	return day.Add(time.Duration(startMin+ap.DurationMin) * time.Minute), true
}
