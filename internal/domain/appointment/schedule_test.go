package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func booked(id, doctor string, date time.Time, clock string, duration int, status Status) *Appointment {
	return &Appointment{
		ID:              id,
		DoctorName:      doctor,
		AppointmentDate: date,
		AppointmentTime: clock,
		Duration:        duration,
		Status:          status,
	}
}

func TestValidClock(t *testing.T) {
	valid := []string{"00:00", "09:30", "13:05", "23:59"}
	for _, s := range valid {
		assert.True(t, ValidClock(s), s)
	}

	invalid := []string{"", "24:00", "12:60", "9:30", "09:3", "09:300", "0930", "ab:cd", "12:30pm"}
	for _, s := range invalid {
		assert.False(t, ValidClock(s), s)
	}
}

func TestStartAt(t *testing.T) {
	start, err := StartAt(day(2099, time.March, 15), "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2099, time.March, 15, 9, 30, 0, 0, time.Local), start)

	_, err = StartAt(day(2099, time.March, 15), "25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestIntervalDefaultsDuration(t *testing.T) {
	start, end, err := Interval(day(2099, time.March, 15), "10:00", 0)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, end.Sub(start))

	start, end, err = Interval(day(2099, time.March, 15), "10:00", 45)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, end.Sub(start))
}

func TestHasConflict_Overlap(t *testing.T) {
	date := day(2099, time.January, 10)
	existing := []*Appointment{
		booked("a1", "Dr. Lee", date, "09:00", 30, StatusScheduled),
	}

	tests := []struct {
		name     string
		clock    string
		duration int
		want     bool
	}{
		{"overlapping start", "09:15", 30, true},
		{"contained", "09:10", 10, true},
		{"covering", "08:30", 120, true},
		{"identical", "09:00", 30, true},
		{"before, touching", "08:30", 30, false},
		{"after, touching", "09:30", 30, false},
		{"well clear", "14:00", 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HasConflict(existing, Slot{
				DoctorName: "Dr. Lee",
				Date:       date,
				Clock:      tt.clock,
				Duration:   tt.duration,
			}, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasConflict_DifferentDoctor(t *testing.T) {
	date := day(2099, time.January, 10)
	existing := []*Appointment{
		booked("a1", "Dr. Lee", date, "09:00", 30, StatusScheduled),
	}

	got, err := HasConflict(existing, Slot{
		DoctorName: "Dr. Patel",
		Date:       date,
		Clock:      "09:00",
		Duration:   30,
	}, "")
	require.NoError(t, err)
	assert.False(t, got, "identical slot under another doctor must not conflict")
}

func TestHasConflict_CancelledInvisible(t *testing.T) {
	date := day(2099, time.January, 10)
	existing := []*Appointment{
		booked("a1", "Dr. Lee", date, "09:00", 30, StatusCancelled),
	}

	got, err := HasConflict(existing, Slot{
		DoctorName: "Dr. Lee",
		Date:       date,
		Clock:      "09:00",
		Duration:   30,
	}, "")
	require.NoError(t, err)
	assert.False(t, got, "cancelled appointments free their slot")
}

func TestHasConflict_SelfExclusion(t *testing.T) {
	date := day(2099, time.January, 10)
	existing := []*Appointment{
		booked("a1", "Dr. Lee", date, "09:00", 30, StatusScheduled),
	}

	got, err := HasConflict(existing, Slot{
		DoctorName: "Dr. Lee",
		Date:       date,
		Clock:      "09:00",
		Duration:   30,
	}, "a1")
	require.NoError(t, err)
	assert.False(t, got, "an appointment never conflicts with itself")

	got, err = HasConflict(existing, Slot{
		DoctorName: "Dr. Lee",
		Date:       date,
		Clock:      "09:00",
		Duration:   30,
	}, "other-id")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestHasConflict_DefaultDurationOnExisting(t *testing.T) {
	date := day(2099, time.January, 10)
	existing := []*Appointment{
		booked("a1", "Dr. Lee", date, "09:00", 0, StatusScheduled),
	}

	// zero duration reads as 30 minutes, so a 09:15 start overlaps
	got, err := HasConflict(existing, Slot{
		DoctorName: "Dr. Lee",
		Date:       date,
		Clock:      "09:15",
		Duration:   30,
	}, "")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestHasConflict_BadCandidateClock(t *testing.T) {
	_, err := HasConflict(nil, Slot{
		DoctorName: "Dr. Lee",
		Date:       day(2099, time.January, 10),
		Clock:      "9am",
		Duration:   30,
	}, "")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestStartsInFuture(t *testing.T) {
	future, err := StartsInFuture(day(2099, time.June, 1), "10:00", StatusScheduled)
	require.NoError(t, err)
	assert.True(t, future)

	future, err = StartsInFuture(day(2001, time.June, 1), "10:00", StatusScheduled)
	require.NoError(t, err)
	assert.False(t, future)

	// terminal statuses record history and skip the check entirely
	for _, status := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		future, err = StartsInFuture(day(2001, time.June, 1), "10:00", status)
		require.NoError(t, err)
		assert.True(t, future, string(status))
	}

	_, err = StartsInFuture(day(2099, time.June, 1), "bad", StatusScheduled)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestBuildDateRange(t *testing.T) {
	r, err := BuildDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = BuildDateRange("2099-03-01", "2099-03-31")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, day(2099, time.March, 1), *r.From)
	assert.Equal(t, time.Date(2099, time.March, 31, 23, 59, 59, 999*int(time.Millisecond), time.Local), *r.To)

	// a record dated anywhere on the end date is inside the range
	assert.True(t, r.Contains(day(2099, time.March, 31)))
	assert.True(t, r.Contains(time.Date(2099, time.March, 31, 23, 59, 59, 0, time.Local)))
	assert.False(t, r.Contains(day(2099, time.April, 1)))
	assert.False(t, r.Contains(day(2099, time.February, 28)))

	_, err = BuildDateRange("03/01/2099", "")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = BuildDateRange("", "not-a-date")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestBuildDateRange_OpenEnded(t *testing.T) {
	r, err := BuildDateRange("2099-03-01", "")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Nil(t, r.To)
	assert.True(t, r.Contains(day(2200, time.January, 1)))
	assert.False(t, r.Contains(day(2099, time.February, 28)))

	r, err = BuildDateRange("", "2099-03-31")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Nil(t, r.From)
	assert.True(t, r.Contains(day(1990, time.January, 1)))
	assert.False(t, r.Contains(day(2099, time.April, 1)))
}
