package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/wardflow/wardflow/internal/domain"
	"github.com/wardflow/wardflow/internal/domain/staff"
)

type StaffService struct {
	repo  staff.Repository
	audit *AuditTrail
	log   *zap.Logger
}

func NewStaffService(repo staff.Repository, audit *AuditTrail, log *zap.Logger) *StaffService {
	return &StaffService{repo: repo, audit: audit, log: log}
}

func (s *StaffService) Register(ctx context.Context, m *staff.Staff) (*staff.Staff, error) {
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.audit.LogAsync(AuditEntry{
		Action:       domain.ActionCreate,
		ResourceType: "staff",
		ResourceID:   m.ID,
	})
	s.log.Info("staff member registered",
		zap.String("id", m.ID),
		zap.String("role", string(m.Role)),
		zap.String("department", string(m.Department)),
	)
	return m, nil
}

func (s *StaffService) Get(ctx context.Context, id string) (*staff.Staff, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *StaffService) List(ctx context.Context, f staff.Filter) ([]*staff.Staff, error) {
	return s.repo.Find(ctx, f)
}

func (s *StaffService) Update(ctx context.Context, id string, cmd *staff.UpdateCommand) (*staff.Staff, error) {
	updated, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}
	s.audit.LogAsync(AuditEntry{
		Action:       domain.ActionUpdate,
		ResourceType: "staff",
		ResourceID:   id,
	})
	return updated, nil
}

func (s *StaffService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.LogAsync(AuditEntry{
		Action:       domain.ActionDelete,
		ResourceType: "staff",
		ResourceID:   id,
	})
	return nil
}
