package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wardflow/wardflow/internal/domain/appointment"
)

// AppointmentMemory is the in-process fallback store used when Postgres is
// unavailable. It honors the same contract as AppointmentGorm, down to the
// validation messages. Safe for concurrent use.
type AppointmentMemory struct {
	mu           sync.RWMutex
	appointments map[string]*appointment.Appointment
}

func NewAppointmentMemory() *AppointmentMemory {
	return &AppointmentMemory{
		appointments: make(map[string]*appointment.Appointment),
	}
}

func (r *AppointmentMemory) Create(_ context.Context, a *appointment.Appointment) error {
	applyAppointmentDefaults(a)
	if err := a.Validate(); err != nil {
		return err
	}

	now := time.Now()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[a.ID] = cloneAppointment(a)
	return nil
}

func (r *AppointmentMemory) Find(_ context.Context, f appointment.Filter) ([]*appointment.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*appointment.Appointment
	for _, a := range r.appointments {
		if f.PatientID != "" && a.PatientID != f.PatientID {
			continue
		}
		if f.DoctorName != "" && a.DoctorName != f.DoctorName {
			continue
		}
		if f.Status != "" {
			if a.Status != f.Status {
				continue
			}
		} else if f.ExcludeStatus != "" && a.Status == f.ExcludeStatus {
			continue
		}
		if f.Dates != nil && !f.Dates.Contains(a.AppointmentDate) {
			continue
		}
		results = append(results, cloneAppointment(a))
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].AppointmentDate.Equal(results[j].AppointmentDate) {
			return results[i].AppointmentDate.Before(results[j].AppointmentDate)
		}
		return results[i].AppointmentTime < results[j].AppointmentTime
	})
	return results, nil
}

func (r *AppointmentMemory) FindByID(_ context.Context, id string) (*appointment.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.appointments[id]
	if !ok {
		return nil, appointment.ErrNotFound
	}
	return cloneAppointment(a), nil
}

func (r *AppointmentMemory) Update(_ context.Context, id string, cmd *appointment.UpdateCommand) (*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.appointments[id]
	if !ok {
		return nil, appointment.ErrNotFound
	}

	updated := cloneAppointment(existing)
	cmd.ApplyTo(updated)
	applyAppointmentDefaults(updated)
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	// ID and CreatedAt are immutable.
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	r.appointments[id] = updated
	return cloneAppointment(updated), nil
}

// Clear empties the store. Test isolation only.
func (r *AppointmentMemory) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments = make(map[string]*appointment.Appointment)
}

func cloneAppointment(a *appointment.Appointment) *appointment.Appointment {
	cp := *a
	return &cp
}
