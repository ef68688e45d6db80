package appointment

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DefaultDurationMins is assumed whenever an appointment carries no explicit
// duration.
const DefaultDurationMins = 30

const dateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ValidClock reports whether s is a 24-hour HH:MM wall-clock time.
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// StartAt combines a calendar date with an HH:MM wall-clock time into a
// single local-time instant with seconds and sub-seconds zeroed.
func StartAt(date time.Time, clock string) (time.Time, error) {
	m := clockPattern.FindStringSubmatch(clock)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	hour, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, time.Local), nil
}

// Interval converts (date, clock, duration) into the half-open window
// [start, start+duration). A non-positive duration falls back to
// DefaultDurationMins.
func Interval(date time.Time, clock string, durationMins int) (start, end time.Time, err error) {
	start, err = StartAt(date, clock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if durationMins <= 0 {
		durationMins = DefaultDurationMins
	}
	end = start.Add(time.Duration(durationMins) * time.Minute)
	return start, end, nil
}

// Slot is the subset of an appointment that conflict detection needs.
type Slot struct {
	DoctorName string
	Date       time.Time
	Clock      string
	Duration   int
}

// HasConflict reports whether the candidate slot overlaps any existing
// non-cancelled appointment for the same doctor. excludeID skips one
// appointment so that re-validating an update does not conflict with itself.
//
// Overlap is strict on both ends (newStart < end && newEnd > start), so
// back-to-back appointments never conflict. The check is existential: it
// stops at the first overlap found. Callers usually narrow existing to the
// candidate's doctor beforehand, but the detector is correct without it.
func HasConflict(existing []*Appointment, candidate Slot, excludeID string) (bool, error) {
	newStart, newEnd, err := Interval(candidate.Date, candidate.Clock, candidate.Duration)
	if err != nil {
		return false, err
	}

	for _, appt := range existing {
		if excludeID != "" && appt.ID == excludeID {
			continue
		}
		if appt.DoctorName != candidate.DoctorName || appt.Status == StatusCancelled {
			continue
		}

		start, end, err := appt.Interval()
		if err != nil {
			return false, fmt.Errorf("appointment %s: %w", appt.ID, err)
		}
		if newStart.Before(end) && newEnd.After(start) {
			return true, nil
		}
	}
	return false, nil
}

// StartsInFuture enforces that mutable appointments begin strictly after
// now. Terminal statuses describe historical visits and always pass.
func StartsInFuture(date time.Time, clock string, status Status) (bool, error) {
	if status.IsTerminal() {
		return true, nil
	}
	start, err := StartAt(date, clock)
	if err != nil {
		return false, err
	}
	return start.After(time.Now()), nil
}

// DateRange is an inclusive calendar-date filter on the appointment date.
// Either bound may be nil for an open-ended range.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the range.
func (r *DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// BuildDateRange turns optional YYYY-MM-DD bounds into a DateRange. The
// lower bound is taken at start of day and the upper bound at 23:59:59.999
// so the entire end date is included. Returns nil when neither bound is
// given.
func BuildDateRange(startDate, endDate string) (*DateRange, error) {
	if startDate == "" && endDate == "" {
		return nil, nil
	}

	r := &DateRange{}
	if startDate != "" {
		from, err := time.ParseInLocation(dateLayout, startDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDateFormat, startDate)
		}
		r.From = &from
	}
	if endDate != "" {
		d, err := time.ParseInLocation(dateLayout, endDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDateFormat, endDate)
		}
		to := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999*int(time.Millisecond), time.Local)
		r.To = &to
	}
	return r, nil
}
