package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wardflow/wardflow/internal/domain"
)

type AuditGorm struct {
	db *gorm.DB
}

func NewAuditGorm(db *gorm.DB) *AuditGorm {
	return &AuditGorm{db: db}
}

func (r *AuditGorm) Create(ctx context.Context, entry *domain.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("inserting audit log: %w", err)
	}
	return nil
}
