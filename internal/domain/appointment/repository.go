package appointment

import (
	"context"
	"time"

	"github.com/officinadeltaglio/barbershop-api/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Settings --------
	ListOpeningHours(
		ctx context.Context,
	) ([]models.OpeningHours, error)

	ListClosedDays(
		ctx context.Context,
	) ([]models.ClosedDay, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// ListActiveBookings returns the client's pending/confirmed
	// bookings from day onward, ordered by date and time.
	ListActiveBookings(
		ctx context.Context,
		phone string,
		day time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (create / read / reverse) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentByToken(
		ctx context.Context,
		token string,
	) (*models.Appointment, error)

	// ListDayConflicts returns the non-cancelled appointments of day,
	// ordered by time, excluding excludeID (0 = no exclusion). Both the
	// pre-commit check and the post-commit re-validation use it.
	ListDayConflicts(
		ctx context.Context,
		day time.Time,
		excludeID uint,
	) ([]models.Appointment, error)

	ListDayAppointments(
		ctx context.Context,
		day time.Time,
	) ([]models.Appointment, error)

	// -------- Walk-in queue --------
	ListQueue(
		ctx context.Context,
		day time.Time,
	) ([]models.Appointment, error)

	GetInService(
		ctx context.Context,
		day time.Time,
	) (*models.Appointment, error)

	// PromoteToService flips inqueue -> inservice only if the row is
	// still inqueue; false means a concurrent caller won the head.
	PromoteToService(
		ctx context.Context,
		id uint,
		now time.Time,
	) (bool, error)

	UpdateQueuePosition(
		ctx context.Context,
		id uint,
		position int,
	) error
}
