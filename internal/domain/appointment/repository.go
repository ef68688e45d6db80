package appointment

import (
	"context"
	"time"
)

// Filter narrows Find results. Zero values mean "no constraint".
// Status and ExcludeStatus are mutually exclusive; when both are set,
// Status wins.
type Filter struct {
	PatientID     string
	DoctorName    string
	Status        Status
	ExcludeStatus Status
	Dates         *DateRange
}

// UpdateCommand is a partial patch; nil fields are left untouched.
// ID and CreatedAt can never be patched.
type UpdateCommand struct {
	PatientID       *string
	PatientName     *string
	DoctorName      *string
	AppointmentDate *time.Time
	AppointmentTime *string
	Duration        *int
	Reason          *string
	Status          *Status
	Notes           *string
}

// ApplyTo merges the patch into a. Shared by both repository backends so
// merge semantics cannot drift between stores.
func (c *UpdateCommand) ApplyTo(a *Appointment) {
	if c.PatientID != nil {
		a.PatientID = *c.PatientID
	}
	if c.PatientName != nil {
		a.PatientName = *c.PatientName
	}
	if c.DoctorName != nil {
		a.DoctorName = *c.DoctorName
	}
	if c.AppointmentDate != nil {
		a.AppointmentDate = *c.AppointmentDate
	}
	if c.AppointmentTime != nil {
		a.AppointmentTime = *c.AppointmentTime
	}
	if c.Duration != nil {
		a.Duration = *c.Duration
	}
	if c.Reason != nil {
		a.Reason = *c.Reason
	}
	if c.Status != nil {
		a.Status = *c.Status
	}
	if c.Notes != nil {
		a.Notes = *c.Notes
	}
}

// Repository is the storage contract both the Postgres and the in-memory
// backends satisfy, so calling code stays storage-agnostic.
type Repository interface {
	// Create validates and stores a new appointment, assigning its ID and
	// applying the default duration and status.
	Create(ctx context.Context, a *Appointment) error

	// Find returns appointments matching the filter, sorted by
	// (appointment date, appointment time) ascending.
	Find(ctx context.Context, f Filter) ([]*Appointment, error)

	// FindByID returns ErrNotFound when no appointment has the given ID.
	FindByID(ctx context.Context, id string) (*Appointment, error)

	// Update merges the patch into the stored record, re-validates the
	// result and returns the post-update state. Returns ErrNotFound when
	// the ID is absent.
	Update(ctx context.Context, id string, cmd *UpdateCommand) (*Appointment, error)
}
