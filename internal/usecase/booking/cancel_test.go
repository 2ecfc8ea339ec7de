package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officinadeltaglio/barbershop-api/internal/audit"
	domain "github.com/officinadeltaglio/barbershop-api/internal/domain/appointment"
	"github.com/officinadeltaglio/barbershop-api/internal/httperr"
	"github.com/officinadeltaglio/barbershop-api/internal/models"
)

func newCancelFixture() (*fakeRepo, *fakeNotifier, *CancelByToken) {
	repo := newFakeRepo(rome)
	notifier := &fakeNotifier{}
	auditor := audit.NewDispatcher(audit.New(nil))

	uc := NewCancelByToken(repo, auditor, notifier, testSettings()).
		WithNow(func() time.Time { return fixedNow })

	return repo, notifier, uc
}

func seedBooking(repo *fakeRepo, token string) *models.Appointment {
	day, _ := time.ParseInLocation("2006-01-02", bookDate, rome)
	repo.nextID++
	ap := &models.Appointment{
		ID:          repo.nextID,
		ClientName:  "Mario Rossi",
		ClientPhone: "+39 333 1234567",
		ServiceID:   1,
		DurationMin: 30,
		Date:        day,
		Time:        "10:00",
		Status:      string(domain.StatusConfirmed),
		Kind:        string(domain.KindBooking),
		CancelToken: token,
	}
	repo.appointments = append(repo.appointments, ap)
	return ap
}

func TestCancelByToken(t *testing.T) {
	repo, notifier, uc := newCancelFixture()
	seedBooking(repo, "tok-1")

	ap, err := uc.Execute(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.Len(t, notifier.cancelled, 1)
}

func TestCancelByTokenReplay(t *testing.T) {
	repo, notifier, uc := newCancelFixture()
	seedBooking(repo, "tok-1")

	_, err := uc.Execute(context.Background(), "tok-1")
	require.NoError(t, err)

	// Clicking the link again is fine and does not re-notify.
	ap, err := uc.Execute(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), ap.Status)
	assert.Len(t, notifier.cancelled, 1)
}

func TestCancelByTokenUnknown(t *testing.T) {
	_, _, uc := newCancelFixture()

	_, err := uc.Execute(context.Background(), "no-such-token")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	_, err = uc.Execute(context.Background(), "")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeMissingFields))
}

func TestCancelFreesTheSlot(t *testing.T) {
	repo, _, cancelUC := newCancelFixture()
	seedBooking(repo, "tok-1")

	auditor := audit.NewDispatcher(audit.New(nil))
	createUC := NewCreateBooking(repo, auditor, &fakeNotifier{}, testSettings()).
		WithNow(func() time.Time { return fixedNow })

	// Slot is taken until the cancellation goes through.
	in := validInput()
	in.ClientName = "Luigi Verdi"
	in.ClientPhone = "+39 333 7654321"

	_, err := createUC.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))

	_, err = cancelUC.Execute(context.Background(), "tok-1")
	require.NoError(t, err)

	_, err = createUC.Execute(context.Background(), in)
	require.NoError(t, err)
}

func TestCancelQueuedWalkInRenumbers(t *testing.T) {
	repo, _, uc := newCancelFixture()

	today := time.Date(2026, time.September, 1, 0, 0, 0, 0, rome)
	for i, token := range []string{"q-1", "q-2", "q-3"} {
		repo.nextID++
		pos := i + 1
		repo.appointments = append(repo.appointments, &models.Appointment{
			ID:            repo.nextID,
			ClientName:    "Walk-in",
			ClientPhone:   "+39 333 000000" + token[2:],
			DurationMin:   30,
			Date:          today,
			Status:        string(domain.StatusInQueue),
			Kind:          string(domain.KindWalkIn),
			CancelToken:   token,
			QueuePosition: &pos,
		})
	}

	_, err := uc.Execute(context.Background(), "q-2")
	require.NoError(t, err)

	queue, err := repo.ListQueue(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, 1, *queue[0].QueuePosition)
	assert.Equal(t, 2, *queue[1].QueuePosition)
	assert.Equal(t, "q-1", queue[0].CancelToken)
	assert.Equal(t, "q-3", queue[1].CancelToken)
}
