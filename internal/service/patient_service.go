package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/wardflow/wardflow/internal/domain"
	"github.com/wardflow/wardflow/internal/domain/patient"
	"github.com/wardflow/wardflow/pkg/metrics"
)

type PatientService struct {
	repo    patient.Repository
	audit   *AuditTrail
	metrics *metrics.Collector
	log     *zap.Logger
}

func NewPatientService(
	repo patient.Repository,
	audit *AuditTrail,
	collector *metrics.Collector,
	log *zap.Logger,
) *PatientService {
	return &PatientService{repo: repo, audit: audit, metrics: collector, log: log}
}

func (s *PatientService) Register(ctx context.Context, p *patient.Patient) (*patient.Patient, error) {
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.metrics.PatientsCreatedTotal.Inc()
	s.audit.LogAsync(AuditEntry{
		Action:       domain.ActionCreate,
		ResourceType: "patient",
		ResourceID:   p.ID,
	})
	s.log.Info("patient registered", zap.String("id", p.ID), zap.String("name", p.FullName()))
	return p, nil
}

func (s *PatientService) Get(ctx context.Context, id string) (*patient.Patient, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PatientService) List(ctx context.Context, search string) ([]*patient.Patient, error) {
	return s.repo.Find(ctx, search)
}

func (s *PatientService) Update(ctx context.Context, id string, cmd *patient.UpdateCommand) (*patient.Patient, error) {
	updated, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}
	s.audit.LogAsync(AuditEntry{
		Action:       domain.ActionUpdate,
		ResourceType: "patient",
		ResourceID:   id,
	})
	return updated, nil
}

// Delete soft-deletes the patient record; it stays in storage for the
// audit trail but drops out of every listing.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.LogAsync(AuditEntry{
		Action:       domain.ActionDelete,
		ResourceType: "patient",
		ResourceID:   id,
	})
	return nil
}
