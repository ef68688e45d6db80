// Package service implements the application layer: scheduling rules,
// audit logging and the glue between HTTP handlers and repositories.
package service

import (
	"go.uber.org/zap"

	"github.com/wardflow/wardflow/internal/repository"
	"github.com/wardflow/wardflow/pkg/metrics"
)

// Services bundles every application service for injection into the
// HTTP layer.
type Services struct {
	Appointments *AppointmentService
	Patients     *PatientService
	Staff        *StaffService
	Audit        *AuditTrail
}

type Deps struct {
	Repos   *repository.Repositories
	Metrics *metrics.Collector
	Logger  *zap.Logger
}

func NewServices(deps Deps) *Services {
	audit := NewAuditTrail(deps.Repos.Audit, deps.Metrics, deps.Logger)
	return &Services{
		Appointments: NewAppointmentService(deps.Repos.Appointments, audit, deps.Metrics, deps.Logger),
		Patients:     NewPatientService(deps.Repos.Patients, audit, deps.Metrics, deps.Logger),
		Staff:        NewStaffService(deps.Repos.Staff, audit, deps.Logger),
		Audit:        audit,
	}
}
