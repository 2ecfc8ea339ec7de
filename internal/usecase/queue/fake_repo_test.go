package queue

import (
	"context"
	"errors"
	"sort"
	"time"

	domain "github.com/officinadeltaglio/barbershop-api/internal/domain/appointment"
	"github.com/officinadeltaglio/barbershop-api/internal/models"
	"github.com/officinadeltaglio/barbershop-api/internal/timezone"
)

// fakeRepo is the in-memory Repository for queue use-case tests.
// promoteDenied simulates a concurrent caller winning the head.
type fakeRepo struct {
	services   map[uint]*models.Service
	hours      []models.OpeningHours
	closedDays []models.ClosedDay

	appointments []*models.Appointment
	clients      map[string]*models.Client
	nextID       uint

	promoteDenied bool

	loc *time.Location
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo(loc *time.Location) *fakeRepo {
	return &fakeRepo{
		services: map[uint]*models.Service{
			1: {ID: 1, Name: "Taglio", DurationMin: 30, Active: true},
			2: {ID: 2, Name: "Taglio + Barba", DurationMin: 45, Active: true},
		},
		clients: map[string]*models.Client{},
		loc:     loc,
	}
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return svc, nil
}

func (r *fakeRepo) ListOpeningHours(_ context.Context) ([]models.OpeningHours, error) {
	return r.hours, nil
}

func (r *fakeRepo) ListClosedDays(_ context.Context) ([]models.ClosedDay, error) {
	return r.closedDays, nil
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, name, phone, email string) (*models.Client, error) {
	if c, ok := r.clients[phone]; ok {
		return c, nil
	}
	r.nextID++
	c := &models.Client{ID: r.nextID, Name: name, Phone: phone, Email: email}
	r.clients[phone] = c
	return c, nil
}

func (r *fakeRepo) ListActiveBookings(_ context.Context, phone string, day time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClientPhone == phone &&
			ap.Kind == string(domain.KindBooking) &&
			domain.IsActive(domain.Status(ap.Status)) &&
			!ap.Date.Before(day) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.nextID++
	ap.ID = r.nextID
	r.appointments = append(r.appointments, ap)
	return nil
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, id uint) error {
	for i, ap := range r.appointments {
		if ap.ID == id {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return errors.New("record not found")
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, existing := range r.appointments {
		if existing.ID == ap.ID {
			r.appointments[i] = ap
			return nil
		}
	}
	return errors.New("record not found")
}

func (r *fakeRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeRepo) GetAppointmentByToken(_ context.Context, token string) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.CancelToken == token {
			return ap, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeRepo) sameDay(a, b time.Time) bool {
	return timezone.DateKey(a, r.loc) == timezone.DateKey(b, r.loc)
}

func (r *fakeRepo) ListDayConflicts(_ context.Context, day time.Time, excludeID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ID == excludeID || !r.sameDay(ap.Date, day) {
			continue
		}
		if !domain.CountsForConflict(domain.Status(ap.Status)) {
			continue
		}
		out = append(out, *ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

func (r *fakeRepo) ListDayAppointments(_ context.Context, day time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if r.sameDay(ap.Date, day) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListQueue(_ context.Context, day time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if r.sameDay(ap.Date, day) && ap.Status == string(domain.StatusInQueue) {
			ap.Service = *r.services[ap.ServiceID]
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := 0, 0
		if out[i].QueuePosition != nil {
			pi = *out[i].QueuePosition
		}
		if out[j].QueuePosition != nil {
			pj = *out[j].QueuePosition
		}
		if pi != pj {
			return pi < pj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeRepo) GetInService(_ context.Context, day time.Time) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if r.sameDay(ap.Date, day) && ap.Status == string(domain.StatusInService) {
			ap.Service = *r.services[ap.ServiceID]
			return ap, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) PromoteToService(_ context.Context, id uint, now time.Time) (bool, error) {
	if r.promoteDenied {
		return false, nil
	}
	for _, ap := range r.appointments {
		if ap.ID == id {
			if ap.Status != string(domain.StatusInQueue) {
				return false, nil
			}
			ap.Status = string(domain.StatusInService)
			ap.StartedAt = &now
			ap.QueuePosition = nil
			return true, nil
		}
	}
	return false, errors.New("record not found")
}

func (r *fakeRepo) UpdateQueuePosition(_ context.Context, id uint, position int) error {
	for _, ap := range r.appointments {
		if ap.ID == id {
			p := position
			ap.QueuePosition = &p
			return nil
		}
	}
	return errors.New("record not found")
}
