package booking

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/officinadeltaglio/barbershop-api/internal/audit"
	domain "github.com/officinadeltaglio/barbershop-api/internal/domain/appointment"
	"github.com/officinadeltaglio/barbershop-api/internal/domain/schedule"
	"github.com/officinadeltaglio/barbershop-api/internal/httperr"
	"github.com/officinadeltaglio/barbershop-api/internal/models"
	"github.com/officinadeltaglio/barbershop-api/internal/notify"
	"github.com/officinadeltaglio/barbershop-api/internal/timezone"
	"github.com/officinadeltaglio/barbershop-api/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string

	// Staff-entered bookings bypass the one-active-booking policy and
	// the minimum advance notice.
	IsAdmin     bool
	AdminUserID *uint
}

type BookingResult struct {
	Appointment *models.Appointment `json:"appointment"`
	CancelURL   string              `json:"cancel_url"`
	WhatsAppURL string              `json:"whatsapp_url,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
	settings Settings

	now func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	notifier Notifier,
	settings Settings,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    auditor,
		notifier: notifier,
		settings: settings,
		now:      timezone.Now,
	}
}

// WithNow overrides the clock; tests only.
func (uc *CreateBooking) WithNow(now func() time.Time) *CreateBooking {
	uc.now = now
	return uc
}

// Execute runs the three-phase booking transaction:
// validate -> commit -> re-validate. The post-commit re-check closes
// most of the race window two concurrent requests leave open; on a
// detected conflict the freshly created row is deleted before the
// caller sees slot_conflict. This is a mitigation, not a serializable
// guarantee: the schema deliberately has no unique (date,time) key.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*BookingResult, error) {

	// --------------------------------------------------
	// Phase 1 — validate
	// --------------------------------------------------

	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.ClientEmail = strings.TrimSpace(in.ClientEmail)

	if in.ClientName == "" || in.ClientPhone == "" ||
		in.ServiceID == 0 || in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness(httperr.CodeMissingFields)
	}

	if !validators.IsName(in.ClientName) ||
		!validators.IsPhone(in.ClientPhone) ||
		!validators.IsDate(in.Date) ||
		!validators.IsTime(in.Time) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidFormat)
	}
	if in.ClientEmail != "" && !validators.IsEmail(in.ClientEmail) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidFormat)
	}
	if len(in.Notes) > 255 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidFormat)
	}

	day, err := time.ParseInLocation("2006-01-02", in.Date, uc.settings.Loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidFormat)
	}
	startMin, err := schedule.ParseHM(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidFormat)
	}

	now := uc.now()
	today := timezone.Midnight(now, uc.settings.Loc)
	if uc.settings.HorizonDays > 0 &&
		day.After(today.AddDate(0, 0, uc.settings.HorizonDays)) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidFormat)
	}

	closedDays, err := uc.repo.ListClosedDays(ctx)
	if err != nil {
		return nil, err
	}
	if closed, cd := schedule.IsClosed(day, closedDays, uc.settings.Loc); closed {
		return nil, httperr.ErrBusinessMeta(httperr.CodeDateClosed, map[string]string{
			"reason": cd.Reason,
		})
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	hoursRows, err := uc.repo.ListOpeningHours(ctx)
	if err != nil {
		// Lookup failure falls back to the static default schedule.
		hoursRows = nil
	}
	hours := schedule.ResolveDay(day, hoursRows)
	if hours.Closed {
		return nil, httperr.ErrBusiness(httperr.CodeDateClosed)
	}

	// One-active-booking-per-phone policy, staff bookings exempt.
	if !in.IsAdmin {
		actives, err := uc.repo.ListActiveBookings(ctx, in.ClientPhone, today)
		if err != nil {
			return nil, err
		}
		if existing := firstCurrent(actives, now, uc.settings.Loc); existing != nil {
			return nil, httperr.ErrBusinessMeta(httperr.CodeAlreadyBooked, map[string]string{
				"cancel_url": uc.settings.CancelURL(existing.CancelToken),
				"date":       timezone.DateKey(existing.Date, uc.settings.Loc),
				"time":       existing.Time,
			})
		}
	}

	conflicts, err := uc.repo.ListDayConflicts(ctx, day, 0)
	if err != nil {
		return nil, err
	}

	if !uc.candidateAvailable(day, hours, svc.DurationMin, bookedIntervals(conflicts), startMin, now, in.IsAdmin) {
		return nil, httperr.ErrBusiness(httperr.CodeSlotConflict)
	}

	// --------------------------------------------------
	// Phase 2 — commit
	// --------------------------------------------------

	client, err := uc.repo.GetOrCreateClient(ctx, in.ClientName, in.ClientPhone, in.ClientEmail)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClientID:    client.ID,
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		ClientEmail: in.ClientEmail,
		ServiceID:   svc.ID,
		DurationMin: svc.DurationMin,
		Date:        day,
		Time:        in.Time,
		Status:      string(domain.StatusConfirmed),
		Kind:        string(domain.KindBooking),
		Notes:       in.Notes,
		CancelToken: uuid.NewString(),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Phase 3 — re-validate
	// --------------------------------------------------

	fresh, err := uc.repo.ListDayConflicts(ctx, day, ap.ID)
	if err != nil {
		// The row is committed; without the verifying read we keep it
		// and leave a trace instead of failing an honest booking.
		log.Printf("booking %d: post-commit re-check failed: %v", ap.ID, err)
	} else if !schedule.SlotFree(startMin, ap.DurationMin, bookedIntervals(fresh), hours.Close) {
		if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
			log.Printf("booking %d: conflict rollback failed: %v", ap.ID, err)
		}

		uc.audit.Dispatch(audit.Event{
			UserID:   in.AdminUserID,
			Action:   "booking_conflict_reversed",
			Entity:   "appointment",
			EntityID: &ap.ID,
			Metadata: map[string]any{"date": in.Date, "time": in.Time},
		})

		return nil, httperr.ErrBusiness(httperr.CodeSlotConflict)
	}

	// --------------------------------------------------
	// Side effects (best effort, never fail the booking)
	// --------------------------------------------------

	cancelURL := uc.settings.CancelURL(ap.CancelToken)
	uc.notifier.BookingConfirmed(ap, svc, cancelURL)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.AdminUserID,
		Action:   "booking_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &BookingResult{
		Appointment: ap,
		CancelURL:   cancelURL,
		WhatsAppURL: notify.WhatsAppLink(in.ClientPhone, notify.BookingMessage(ap, svc, cancelURL)),
	}, nil
}

// firstCurrent picks the booking that actually blocks a new one: a
// same-day row whose slot already ended is skipped, so a client who
// missed this morning's cut can rebook tonight without waiting for the
// no-show sweep.
func firstCurrent(actives []models.Appointment, now time.Time, loc *time.Location) *models.Appointment {
	for i := range actives {
		ap := &actives[i]

		if timezone.DateKey(ap.Date, loc) == timezone.DateKey(now, loc) {
			startMin, err := schedule.ParseHM(ap.Time)
			if err == nil {
				end := timezone.Midnight(ap.Date, loc).
					Add(time.Duration(startMin+ap.DurationMin) * time.Minute)
				if !end.After(now) {
					continue
				}
			}
		}

		return ap
	}
	return nil
}

// candidateAvailable evaluates the requested start against the exact
// grid GenerateSlots would produce, so the availability endpoint and
// the booking check can never disagree.
func (uc *CreateBooking) candidateAvailable(
	day time.Time,
	hours schedule.DayHours,
	durationMin int,
	booked []schedule.Interval,
	startMin int,
	now time.Time,
	isAdmin bool,
) bool {

	minAdvance := uc.settings.MinAdvanceMinutes
	if isAdmin {
		minAdvance = 0
	}

	slots := schedule.GenerateSlots(schedule.SlotInput{
		Date:          day,
		Hours:         hours,
		DurationMin:   durationMin,
		IntervalMin:   uc.settings.SlotIntervalMin,
		Booked:        booked,
		Now:           now,
		MinAdvanceMin: minAdvance,
	})

	want := schedule.FormatHM(startMin)
	for _, s := range slots {
		if s.Time == want {
			return s.Available
		}
	}
	// Off-grid start times are never offered, so never bookable.
	return false
}
