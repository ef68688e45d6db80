package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wardflow/wardflow/internal/domain/appointment"
)

type AppointmentGorm struct {
	db *gorm.DB
}

func NewAppointmentGorm(db *gorm.DB) *AppointmentGorm {
	return &AppointmentGorm{db: db}
}

func (r *AppointmentGorm) Create(ctx context.Context, a *appointment.Appointment) error {
	applyAppointmentDefaults(a)
	if err := a.Validate(); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("inserting appointment: %w", err)
	}
	return nil
}

func (r *AppointmentGorm) Find(ctx context.Context, f appointment.Filter) ([]*appointment.Appointment, error) {
	q := r.db.WithContext(ctx).Model(&appointment.Appointment{})

	if f.PatientID != "" {
		q = q.Where("patient_id = ?", f.PatientID)
	}
	if f.DoctorName != "" {
		q = q.Where("doctor_name = ?", f.DoctorName)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	} else if f.ExcludeStatus != "" {
		q = q.Where("status <> ?", f.ExcludeStatus)
	}
	if f.Dates != nil {
		if f.Dates.From != nil {
			q = q.Where("appointment_date >= ?", *f.Dates.From)
		}
		if f.Dates.To != nil {
			q = q.Where("appointment_date <= ?", *f.Dates.To)
		}
	}

	var list []*appointment.Appointment
	if err := q.Order("appointment_date ASC, appointment_time ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return list, nil
}

func (r *AppointmentGorm) FindByID(ctx context.Context, id string) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading appointment: %w", err)
	}
	return &a, nil
}

func (r *AppointmentGorm) Update(ctx context.Context, id string, cmd *appointment.UpdateCommand) (*appointment.Appointment, error) {
	var updated *appointment.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a appointment.Appointment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appointment.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("loading appointment: %w", err)
		}

		cmd.ApplyTo(&a)
		applyAppointmentDefaults(&a)
		if err := a.Validate(); err != nil {
			return err
		}

		if err := tx.Save(&a).Error; err != nil {
			return fmt.Errorf("saving appointment: %w", err)
		}
		updated = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyAppointmentDefaults(a *appointment.Appointment) {
	if a.Duration == 0 {
		a.Duration = appointment.DefaultDurationMins
	}
	if a.Status == "" {
		a.Status = appointment.StatusScheduled
	}
}
