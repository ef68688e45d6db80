package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wardflow/wardflow/internal/domain"
	"github.com/wardflow/wardflow/internal/domain/appointment"
	"github.com/wardflow/wardflow/pkg/metrics"
)

type AppointmentService struct {
	repo        appointment.Repository
	audit       *AuditTrail
	metrics     *metrics.Collector
	log         *zap.Logger
	doctorLocks *keyedMutex
}

func NewAppointmentService(
	repo appointment.Repository,
	audit *AuditTrail,
	collector *metrics.Collector,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:        repo,
		audit:       audit,
		metrics:     collector,
		log:         log,
		doctorLocks: newKeyedMutex(),
	}
}

// ListQuery carries the raw filter parameters from the HTTP layer; date
// bounds are YYYY-MM-DD strings.
type ListQuery struct {
	PatientID  string
	DoctorName string
	Status     appointment.Status
	StartDate  string
	EndDate    string
}

// Schedule books a new appointment after the future-start check and the
// per-doctor conflict check both pass. The doctor's lock is held across the
// read-check-write sequence, so two concurrent requests for the same doctor
// cannot both book overlapping slots.
func (s *AppointmentService) Schedule(ctx context.Context, a *appointment.Appointment) (*appointment.Appointment, error) {
	// Incomplete date/time input skips the scheduling checks: the
	// repository's validation reports every missing field at once.
	if checkable(a) {
		status := a.Status
		if status == "" {
			status = appointment.StatusScheduled
		}
		future, err := appointment.StartsInFuture(a.AppointmentDate, a.AppointmentTime, status)
		if err != nil {
			return nil, err
		}
		if !future {
			return nil, appointment.ErrScheduledInPast
		}

		unlock := s.doctorLocks.lock(a.DoctorName)
		defer unlock()

		conflict, err := s.hasConflict(ctx, a.Slot(), "")
		if err != nil {
			return nil, err
		}
		if conflict {
			s.metrics.ConflictsTotal.Inc()
			return nil, appointment.ErrConflict
		}
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.metrics.AppointmentsTotal.WithLabelValues(string(a.Status)).Inc()
	s.audit.LogAsync(AuditEntry{
		Action:       domain.ActionCreate,
		ResourceType: "appointment",
		ResourceID:   a.ID,
	})
	s.log.Info("appointment scheduled",
		zap.String("id", a.ID),
		zap.String("doctor", a.DoctorName),
		zap.Time("date", a.AppointmentDate),
		zap.String("time", a.AppointmentTime),
	)
	return a, nil
}

func (s *AppointmentService) Get(ctx context.Context, id string) (*appointment.Appointment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AppointmentService) List(ctx context.Context, q ListQuery) ([]*appointment.Appointment, error) {
	dates, err := appointment.BuildDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, appointment.Filter{
		PatientID:  q.PatientID,
		DoctorName: q.DoctorName,
		Status:     q.Status,
		Dates:      dates,
	})
}

// Update patches an appointment. The scheduling checks are repeated only
// when the patch moves the appointment: a change of doctor, date, time or
// duration. The updated appointment is excluded from its own conflict
// check.
func (s *AppointmentService) Update(ctx context.Context, id string, cmd *appointment.UpdateCommand) (*appointment.Appointment, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Status != nil && *cmd.Status != existing.Status && cmd.Status.IsValid() {
		if !existing.CanTransitionTo(*cmd.Status) {
			return nil, fmt.Errorf("%w: %s to %s", appointment.ErrInvalidStatusTransition, existing.Status, *cmd.Status)
		}
	}

	candidate := *existing
	cmd.ApplyTo(&candidate)

	if rescheduled(existing, &candidate) && checkable(&candidate) {
		future, err := appointment.StartsInFuture(candidate.AppointmentDate, candidate.AppointmentTime, candidate.Status)
		if err != nil {
			return nil, err
		}
		if !future {
			return nil, appointment.ErrScheduledInPast
		}

		unlock := s.doctorLocks.lock(candidate.DoctorName)
		defer unlock()

		conflict, err := s.hasConflict(ctx, candidate.Slot(), id)
		if err != nil {
			return nil, err
		}
		if conflict {
			s.metrics.ConflictsTotal.Inc()
			return nil, appointment.ErrConflict
		}
	}

	updated, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.audit.LogAsync(AuditEntry{
		Action:       domain.ActionUpdate,
		ResourceType: "appointment",
		ResourceID:   id,
	})
	return updated, nil
}

// Cancel is the delete operation: appointments are never removed, their
// status transitions to cancelled. Cancelling an already-cancelled
// appointment is a no-op.
func (s *AppointmentService) Cancel(ctx context.Context, id string) (*appointment.Appointment, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == appointment.StatusCancelled {
		return existing, nil
	}
	if !existing.CanTransitionTo(appointment.StatusCancelled) {
		return nil, fmt.Errorf("%w: %s to %s", appointment.ErrInvalidStatusTransition, existing.Status, appointment.StatusCancelled)
	}

	status := appointment.StatusCancelled
	updated, err := s.repo.Update(ctx, id, &appointment.UpdateCommand{Status: &status})
	if err != nil {
		return nil, err
	}

	s.metrics.AppointmentsTotal.WithLabelValues(string(appointment.StatusCancelled)).Inc()
	s.audit.LogAsync(AuditEntry{
		Action:       domain.ActionCancel,
		ResourceType: "appointment",
		ResourceID:   id,
	})
	return updated, nil
}

// hasConflict loads the doctor's active appointments and runs the overlap
// check against them. Callers must hold the doctor's lock.
func (s *AppointmentService) hasConflict(ctx context.Context, slot appointment.Slot, excludeID string) (bool, error) {
	existing, err := s.repo.Find(ctx, appointment.Filter{
		DoctorName:    slot.DoctorName,
		ExcludeStatus: appointment.StatusCancelled,
	})
	if err != nil {
		return false, fmt.Errorf("loading existing appointments: %w", err)
	}
	return appointment.HasConflict(existing, slot, excludeID)
}

// checkable reports whether the record carries enough well-formed schedule
// data for the future and conflict checks to be meaningful.
func checkable(a *appointment.Appointment) bool {
	return !a.AppointmentDate.IsZero() && appointment.ValidClock(a.AppointmentTime)
}

func rescheduled(before, after *appointment.Appointment) bool {
	return before.DoctorName != after.DoctorName ||
		!before.AppointmentDate.Equal(after.AppointmentDate) ||
		before.AppointmentTime != after.AppointmentTime ||
		before.Duration != after.Duration
}
