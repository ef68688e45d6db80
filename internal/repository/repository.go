package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wardflow/wardflow/internal/domain"
	"github.com/wardflow/wardflow/internal/domain/appointment"
	"github.com/wardflow/wardflow/internal/domain/patient"
	"github.com/wardflow/wardflow/internal/domain/staff"
)

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// Repositories bundles one backend's implementation of every storage
// contract. The two constructors are interchangeable: calling code never
// knows which store it is talking to.
type Repositories struct {
	Appointments appointment.Repository
	Patients     patient.Repository
	Staff        staff.Repository
	Audit        AuditRepository
}

func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Appointments: NewAppointmentGorm(db),
		Patients:     NewPatientGorm(db),
		Staff:        NewStaffGorm(db),
		Audit:        NewAuditGorm(db),
	}
}

func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Appointments: NewAppointmentMemory(),
		Patients:     NewPatientMemory(),
		Staff:        NewStaffMemory(),
		Audit:        NewAuditMemory(),
	}
}
