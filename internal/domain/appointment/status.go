package appointment

import "github.com/officinadeltaglio/barbershop-api/internal/httperr"

// ===============================
// Appointment Status / Kind
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "noshow"
	StatusInQueue   Status = "inqueue"
	StatusInService Status = "inservice"
)

type Kind string

const (
	KindBooking Kind = "booking"
	KindWalkIn  Kind = "walkin"
)

// ===============================
// Status predicates
// ===============================

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// IsActive marks the statuses that count against the
// one-active-booking-per-phone policy.
func IsActive(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

// CountsForConflict: every non-cancelled row keeps occupying its
// interval for the day, including completed and noshow ones.
func CountsForConflict(s Status) bool {
	return s != StatusCancelled
}

// ===============================
// Transition guards
// ===============================

func CanComplete(current Status) error {
	if current != StatusConfirmed && current != StatusInService {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanNoShow(current Status) error {
	if current != StatusConfirmed && current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanStartService(current Status) error {
	if current != StatusInQueue {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}
