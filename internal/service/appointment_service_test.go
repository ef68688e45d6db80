package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wardflow/wardflow/internal/domain"
	"github.com/wardflow/wardflow/internal/domain/appointment"
	"github.com/wardflow/wardflow/internal/repository"
	"github.com/wardflow/wardflow/pkg/metrics"
)

var (
	collectorOnce sync.Once
	collector     *metrics.Collector
)

// sharedCollector registers prometheus metrics once per test binary.
func sharedCollector() *metrics.Collector {
	collectorOnce.Do(func() {
		collector = metrics.NewCollector("wardflow_test")
	})
	return collector
}

func newTestService(t *testing.T) *AppointmentService {
	t.Helper()
	repos := repository.NewMemoryRepositories()
	audit := NewAuditTrail(repos.Audit, sharedCollector(), zap.NewNop())
	t.Cleanup(audit.Shutdown)
	return NewAppointmentService(repos.Appointments, audit, sharedCollector(), zap.NewNop())
}

func futureDate() time.Time {
	return time.Date(2099, time.January, 1, 0, 0, 0, 0, time.Local)
}

func request(doctor, clock string, duration int) *appointment.Appointment {
	return &appointment.Appointment{
		PatientID:       "p-1",
		PatientName:     "Jane Roe",
		DoctorName:      doctor,
		AppointmentDate: futureDate(),
		AppointmentTime: clock,
		Duration:        duration,
		Reason:          "checkup",
	}
}

func TestSchedule_ConflictSequence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Schedule(ctx, request("Dr. Lee", "09:00", 30))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = svc.Schedule(ctx, request("Dr. Lee", "09:15", 30))
	assert.ErrorIs(t, err, appointment.ErrConflict)

	// back-to-back is allowed: 09:00-09:30 then 09:30-10:00
	_, err = svc.Schedule(ctx, request("Dr. Lee", "09:30", 30))
	assert.NoError(t, err)
}

func TestSchedule_OtherDoctorUnaffected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Schedule(ctx, request("Dr. Lee", "09:00", 30))
	require.NoError(t, err)

	_, err = svc.Schedule(ctx, request("Dr. Patel", "09:00", 30))
	assert.NoError(t, err)
}

func TestSchedule_CancelledSlotReusable(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Schedule(ctx, request("Dr. Lee", "09:00", 30))
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, first.ID)
	require.NoError(t, err)

	_, err = svc.Schedule(ctx, request("Dr. Lee", "09:00", 30))
	assert.NoError(t, err, "cancelling frees the slot")
}

func TestSchedule_RejectsPastStart(t *testing.T) {
	svc := newTestService(t)

	past := request("Dr. Lee", "09:00", 30)
	past.AppointmentDate = time.Date(2001, time.June, 1, 0, 0, 0, 0, time.Local)

	_, err := svc.Schedule(context.Background(), past)
	assert.ErrorIs(t, err, appointment.ErrScheduledInPast)
}

func TestSchedule_CompletedBackfillAllowed(t *testing.T) {
	svc := newTestService(t)

	historical := request("Dr. Lee", "09:00", 30)
	historical.AppointmentDate = time.Date(2020, time.June, 1, 0, 0, 0, 0, time.Local)
	historical.Status = appointment.StatusCompleted

	_, err := svc.Schedule(context.Background(), historical)
	assert.NoError(t, err, "terminal statuses record history and skip the future check")
}

func TestSchedule_MissingFieldsReportValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Schedule(context.Background(), &appointment.Appointment{})
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "patient ID is required")
	assert.Contains(t, vErr.Fields, "appointment time is required")
}

func TestUpdate_ConflictExcludesSelf(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Schedule(ctx, request("Dr. Lee", "09:00", 30))
	require.NoError(t, err)

	// extending the appointment in place only overlaps itself
	duration := 45
	updated, err := svc.Update(ctx, a.ID, &appointment.UpdateCommand{Duration: &duration})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.Duration)
}

func TestUpdate_RescheduleIntoConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Schedule(ctx, request("Dr. Lee", "09:00", 30))
	require.NoError(t, err)

	second, err := svc.Schedule(ctx, request("Dr. Lee", "10:00", 30))
	require.NoError(t, err)

	clock := "09:15"
	_, err = svc.Update(ctx, second.ID, &appointment.UpdateCommand{AppointmentTime: &clock})
	assert.ErrorIs(t, err, appointment.ErrConflict)

	// unchanged after the rejected patch
	got, err := svc.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", got.AppointmentTime)
}

func TestUpdate_StatusTransitions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Schedule(ctx, request("Dr. Lee", "09:00", 30))
	require.NoError(t, err)

	confirmed := appointment.StatusConfirmed
	updated, err := svc.Update(ctx, a.ID, &appointment.UpdateCommand{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusConfirmed, updated.Status)

	// scheduled is not reachable from confirmed
	scheduled := appointment.StatusScheduled
	_, err = svc.Update(ctx, a.ID, &appointment.UpdateCommand{Status: &scheduled})
	assert.ErrorIs(t, err, appointment.ErrInvalidStatusTransition)

	// patching with the current status is a no-op, not a transition
	updated, err = svc.Update(ctx, a.ID, &appointment.UpdateCommand{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusConfirmed, updated.Status)
}

func TestCancel_Idempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Schedule(ctx, request("Dr. Lee", "09:00", 30))
	require.NoError(t, err)

	first, err := svc.Cancel(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusCancelled, first.Status)

	second, err := svc.Cancel(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusCancelled, second.Status)
}

func TestCancel_CompletedRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Schedule(ctx, request("Dr. Lee", "09:00", 30))
	require.NoError(t, err)

	confirmed := appointment.StatusConfirmed
	_, err = svc.Update(ctx, a.ID, &appointment.UpdateCommand{Status: &confirmed})
	require.NoError(t, err)

	completed := appointment.StatusCompleted
	_, err = svc.Update(ctx, a.ID, &appointment.UpdateCommand{Status: &completed})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, a.ID)
	assert.ErrorIs(t, err, appointment.ErrInvalidStatusTransition)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Cancel(context.Background(), "33333333-3333-3333-3333-333333333333")
	assert.ErrorIs(t, err, appointment.ErrNotFound)
}

func TestList_DateRangeFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	march := request("Dr. Lee", "09:00", 30)
	march.AppointmentDate = time.Date(2099, time.March, 31, 0, 0, 0, 0, time.Local)
	_, err := svc.Schedule(ctx, march)
	require.NoError(t, err)

	april := request("Dr. Lee", "09:00", 30)
	april.AppointmentDate = time.Date(2099, time.April, 1, 0, 0, 0, 0, time.Local)
	_, err = svc.Schedule(ctx, april)
	require.NoError(t, err)

	got, err := svc.List(ctx, ListQuery{StartDate: "2099-03-01", EndDate: "2099-03-31"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, march.AppointmentDate, got[0].AppointmentDate)

	_, err = svc.List(ctx, ListQuery{StartDate: "31-03-2099"})
	assert.ErrorIs(t, err, appointment.ErrInvalidDateFormat)
}

func TestSchedule_ConcurrentSameSlot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Schedule(ctx, request("Dr. Lee", "09:00", 30))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, appointment.ErrConflict)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "exactly one concurrent booking may win the slot")
}
