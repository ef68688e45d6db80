package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wardflow/wardflow/internal/domain/patient"
)

type PatientGorm struct {
	db *gorm.DB
}

func NewPatientGorm(db *gorm.DB) *PatientGorm {
	return &PatientGorm{db: db}
}

func (r *PatientGorm) Create(ctx context.Context, p *patient.Patient) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.AdmissionDate.IsZero() {
		p.AdmissionDate = time.Now()
	}

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("inserting patient: %w", err)
	}
	return nil
}

func (r *PatientGorm) Find(ctx context.Context, search string) ([]*patient.Patient, error) {
	q := r.db.WithContext(ctx).Model(&patient.Patient{}).Where("is_deleted = ?", false)

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR contact_number LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var list []*patient.Patient
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return list, nil
}

func (r *PatientGorm) FindByID(ctx context.Context, id string) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ? AND is_deleted = ?", id, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading patient: %w", err)
	}
	return &p, nil
}

func (r *PatientGorm) Update(ctx context.Context, id string, cmd *patient.UpdateCommand) (*patient.Patient, error) {
	var updated *patient.Patient

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p patient.Patient
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "id = ? AND is_deleted = ?", id, false).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return patient.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("loading patient: %w", err)
		}

		cmd.ApplyTo(&p)
		if err := p.Validate(); err != nil {
			return err
		}
		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("saving patient: %w", err)
		}
		updated = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *PatientGorm) Delete(ctx context.Context, id string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&patient.Patient{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "deleted_at": now})
	if res.Error != nil {
		return fmt.Errorf("deleting patient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return patient.ErrNotFound
	}
	return nil
}
