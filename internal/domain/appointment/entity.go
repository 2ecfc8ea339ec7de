package appointment

import (
	"time"

	"github.com/officinadeltaglio/barbershop-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel moves any appointment to cancelled. Replaying a cancellation
// (same token twice) is a no-op, reported via the changed flag.
func Cancel(ap *models.Appointment, now time.Time) (changed bool) {
	if Status(ap.Status) == StatusCancelled {
		return false
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.QueuePosition = nil
	ap.EstimatedWaitMin = nil
	return true
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	ap.QueuePosition = nil
	ap.EstimatedWaitMin = nil
	return nil
}

func MarkNoShow(ap *models.Appointment, now time.Time) error {
	if err := CanNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	ap.CompletedAt = &now
	return nil
}

func StartService(ap *models.Appointment, now time.Time) error {
	if err := CanStartService(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusInService)
	ap.StartedAt = &now
	ap.QueuePosition = nil
	ap.EstimatedWaitMin = nil
	return nil
}
