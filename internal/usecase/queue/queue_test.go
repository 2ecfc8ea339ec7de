package queue

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

var rome = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		panic(err)
	}
	return loc
}()

// Thursday late morning, shop open.
var fixedNow = time.Date(2026, time.September, 10, 11, 0, 0, 0, rome)

type fixture struct {
	repo        *fakeRepo
	checkIn     *CheckIn
	callNext    *CallNext
	transitions *Transitions
	snapshot    *Snapshot
}

func newFixture() *fixture {
	repo := newFakeRepo(rome)
	auditor := audit.NewDispatcher(audit.New(nil))
	clock := func() time.Time { return fixedNow }

	return &fixture{
		repo:        repo,
		checkIn:     NewCheckIn(repo, auditor, rome).WithNow(clock),
		callNext:    NewCallNext(repo, auditor, rome).WithNow(clock),
		transitions: NewTransitions(repo, auditor, rome).WithNow(clock),
		snapshot:    NewSnapshot(repo, rome).WithNow(clock),
	}
}

func checkInInput(name, phone string, serviceID uint) CheckInInput {
	return CheckInInput{
		ClientName:  name,
		ClientPhone: phone,
		ServiceID:   serviceID,
	}
}

func TestCheckInPositionsAndWaits(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.checkIn.Execute(ctx, 1, checkInInput("Mario", "+39 333 1111111", 1))
	require.NoError(t, err)
	assert.Equal(t, 1, *first.QueuePosition)
	assert.Equal(t, 0, *first.EstimatedWaitMin)
	assert.Equal(t, string(domain.StatusInQueue), first.Status)
	assert.Equal(t, string(domain.KindWalkIn), first.Kind)
	require.NotNil(t, first.CheckedInAt)

	// Second in line waits for the first client's full 30 minutes.
	second, err := f.checkIn.Execute(ctx, 1, checkInInput("Luigi", "+39 333 2222222", 2))
	require.NoError(t, err)
	assert.Equal(t, 2, *second.QueuePosition)
	assert.Equal(t, 30, *second.EstimatedWaitMin)
}

func TestCheckInCountsTheChair(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// 45 min client in the chair, started 10 minutes ago.
	started := fixedNow.Add(-10 * time.Minute)
	f.repo.nextID++
	f.repo.appointments = append(f.repo.appointments, &models.Appointment{
		ID:          f.repo.nextID,
		ClientName:  "In Poltrona",
		ClientPhone: "+39 333 9999999",
		ServiceID:   2,
		DurationMin: 45,
		Date:        fixedNow,
		Status:      string(domain.StatusInService),
		Kind:        string(domain.KindWalkIn),
		StartedAt:   &started,
	})

	ap, err := f.checkIn.Execute(ctx, 1, checkInInput("Mario", "+39 333 1111111", 1))
	require.NoError(t, err)
	assert.Equal(t, 1, *ap.QueuePosition)
	assert.Equal(t, 35, *ap.EstimatedWaitMin)
}

func TestCheckInValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.checkIn.Execute(ctx, 1, checkInInput("", "+39 333 1111111", 1))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeMissingFields))

	_, err = f.checkIn.Execute(ctx, 1, checkInInput("Mario", "abc", 1))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidFormat))

	_, err = f.checkIn.Execute(ctx, 1, checkInInput("Mario", "+39 333 1111111", 99))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestCheckInClosedDay(t *testing.T) {
	f := newFixture()
	f.repo.closedDays = []models.ClosedDay{
		{Date: time.Date(2026, time.September, 10, 0, 0, 0, 0, rome), Reason: "Ferie"},
	}

	_, err := f.checkIn.Execute(context.Background(), 1, checkInInput("Mario", "+39 333 1111111", 1))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeDateClosed))
}

func TestCallNext(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Empty queue first.
	_, err := f.callNext.Execute(ctx, 1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	first, err := f.checkIn.Execute(ctx, 1, checkInInput("Mario", "+39 333 1111111", 1))
	require.NoError(t, err)
	_, err = f.checkIn.Execute(ctx, 1, checkInInput("Luigi", "+39 333 2222222", 1))
	require.NoError(t, err)

	called, err := f.callNext.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, called.ID)
	assert.Equal(t, string(domain.StatusInService), called.Status)
	require.NotNil(t, called.StartedAt)

	// The remaining queue is renumbered from one.
	queue, err := f.repo.ListQueue(ctx, fixedNow)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, 1, *queue[0].QueuePosition)

	// One chair: a second call while Mario is being served fails.
	_, err = f.callNext.Execute(ctx, 1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestCallNextLostRace(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.checkIn.Execute(ctx, 1, checkInInput("Mario", "+39 333 1111111", 1))
	require.NoError(t, err)

	f.repo.promoteDenied = true
	_, err = f.callNext.Execute(ctx, 1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
}

func TestQueueComplete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ap, err := f.checkIn.Execute(ctx, 1, checkInInput("Mario", "+39 333 1111111", 1))
	require.NoError(t, err)

	// Still waiting: completing is out of order.
	_, err = f.transitions.Complete(ctx, 1, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))

	_, err = f.callNext.Execute(ctx, 1)
	require.NoError(t, err)

	done, err := f.transitions.Complete(ctx, 1, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), done.Status)
	require.NotNil(t, done.CompletedAt)
}

func TestQueueLeaveRenumbers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.checkIn.Execute(ctx, 1, checkInInput("Mario", "+39 333 1111111", 1))
	require.NoError(t, err)
	second, err := f.checkIn.Execute(ctx, 1, checkInInput("Luigi", "+39 333 2222222", 1))
	require.NoError(t, err)
	third, err := f.checkIn.Execute(ctx, 1, checkInInput("Anna", "+39 333 3333333", 1))
	require.NoError(t, err)

	left, err := f.transitions.Leave(ctx, 1, second.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), left.Status)

	queue, err := f.repo.ListQueue(ctx, fixedNow)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, 1, *queue[0].QueuePosition)
	assert.Equal(t, 2, *queue[1].QueuePosition)
	assert.Equal(t, third.ID, queue[1].ID)

	// Leaving twice is a no-op.
	again, err := f.transitions.Leave(ctx, 1, second.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), again.Status)
}

func TestSnapshot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.checkIn.Execute(ctx, 1, checkInInput("Mario", "+39 333 1111111", 1))
	require.NoError(t, err)
	_, err = f.checkIn.Execute(ctx, 1, checkInInput("Luigi", "+39 333 2222222", 2))
	require.NoError(t, err)

	_, err = f.callNext.Execute(ctx, 1)
	require.NoError(t, err)

	snap, err := f.snapshot.Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, "2026-09-10", snap.Date)
	require.NotNil(t, snap.InService)
	assert.Equal(t, first.ID, snap.InService.ID)
	assert.Equal(t, "Taglio", snap.InService.ServiceName)
	assert.Equal(t, 30, snap.InService.EstimatedWaitMin)

	require.Len(t, snap.Waiting, 1)
	assert.Equal(t, "Luigi", snap.Waiting[0].ClientName)
	assert.Equal(t, 1, snap.Waiting[0].Position)
	assert.Equal(t, 30, snap.Waiting[0].EstimatedWaitMin)
}
