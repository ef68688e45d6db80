package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/wardflow/wardflow/internal/domain"
)

// State transitions:
//
//	scheduled → confirmed | cancelled | no-show
//	confirmed → completed | cancelled | no-show
//
// completed, cancelled and no-show are terminal.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether s marks a historical appointment. Terminal
// appointments are exempt from the future-start requirement, and cancelled
// ones are additionally invisible to conflict detection.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

type Appointment struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	PatientID   string `gorm:"column:patient_id;type:varchar(64);not null;index" json:"patient_id"`
	PatientName string `gorm:"column:patient_name;type:varchar(200);not null" json:"patient_name"`

	// DoctorName partitions conflict detection: overlaps are only checked
	// between appointments for the same doctor.
	DoctorName string `gorm:"column:doctor_name;type:varchar(200);not null;index" json:"doctor_name"`

	AppointmentDate time.Time `gorm:"column:appointment_date;not null;index" json:"appointment_date"`
	AppointmentTime string    `gorm:"column:appointment_time;type:varchar(5);not null" json:"appointment_time"`
	Duration        int       `gorm:"column:duration_mins;not null;default:30" json:"duration"`

	Reason string `gorm:"column:reason;type:text;not null" json:"reason"`
	Status Status `gorm:"column:status;type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes  string `gorm:"column:notes;type:text" json:"notes"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Interval returns the half-open time window this appointment occupies.
func (a *Appointment) Interval() (start, end time.Time, err error) {
	return Interval(a.AppointmentDate, a.AppointmentTime, a.Duration)
}

// Slot extracts the fields conflict detection cares about.
func (a *Appointment) Slot() Slot {
	return Slot{
		DoctorName: a.DoctorName,
		Date:       a.AppointmentDate,
		Clock:      a.AppointmentTime,
		Duration:   a.Duration,
	}
}

func (a *Appointment) CanTransitionTo(next Status) bool {
	allowed := map[Status][]Status{
		StatusScheduled: {StatusConfirmed, StatusCancelled, StatusNoShow},
		StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	}
	for _, s := range allowed[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// Validate checks required fields, time format, duration bounds and the
// status enum. Both repository backends call it so the store in use never
// changes which records are accepted.
func (a *Appointment) Validate() error {
	var fields []string

	if strings.TrimSpace(a.PatientID) == "" {
		fields = append(fields, "patient ID is required")
	}
	if strings.TrimSpace(a.PatientName) == "" {
		fields = append(fields, "patient name is required")
	}
	if strings.TrimSpace(a.DoctorName) == "" {
		fields = append(fields, "doctor name is required")
	}
	if a.AppointmentDate.IsZero() {
		fields = append(fields, "appointment date is required")
	}
	if a.AppointmentTime == "" {
		fields = append(fields, "appointment time is required")
	} else if !ValidClock(a.AppointmentTime) {
		fields = append(fields, fmt.Sprintf("%s is not a valid time format, use HH:MM (24-hour)", a.AppointmentTime))
	}
	if strings.TrimSpace(a.Reason) == "" {
		fields = append(fields, "reason for visit is required")
	}
	if a.Duration != 0 {
		if a.Duration < 5 {
			fields = append(fields, "duration must be at least 5 minutes")
		}
		if a.Duration > 480 {
			fields = append(fields, "duration cannot exceed 8 hours")
		}
	}
	if a.Status != "" && !a.Status.IsValid() {
		fields = append(fields, fmt.Sprintf("%s is not a valid status", a.Status))
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
