package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wardflow/wardflow/internal/domain/staff"
)

type StaffGorm struct {
	db *gorm.DB
}

func NewStaffGorm(db *gorm.DB) *StaffGorm {
	return &StaffGorm{db: db}
}

func (r *StaffGorm) Create(ctx context.Context, s *staff.Staff) error {
	applyStaffDefaults(s)
	if err := s.Validate(); err != nil {
		return err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&staff.Staff{}).Where("email = ?", strings.ToLower(s.Email)).Count(&count).Error; err != nil {
			return fmt.Errorf("checking email uniqueness: %w", err)
		}
		if count > 0 {
			return staff.ErrDuplicateEmail
		}
		s.Email = strings.ToLower(s.Email)
		if err := tx.Create(s).Error; err != nil {
			return fmt.Errorf("inserting staff member: %w", err)
		}
		return nil
	})
}

func (r *StaffGorm) Find(ctx context.Context, f staff.Filter) ([]*staff.Staff, error) {
	q := r.db.WithContext(ctx).Model(&staff.Staff{})

	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Department != "" {
		q = q.Where("department = ?", f.Department)
	}
	if f.Status != "" {
		q = q.Where("employment_status = ?", f.Status)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern)
	}

	var list []*staff.Staff
	if err := q.Order("last_name ASC, first_name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing staff: %w", err)
	}

	// Weekday availability lives in a JSON column, so this filter is applied
	// after the query, the same way the in-memory backend does it.
	if f.AvailableNow {
		now := time.Now()
		filtered := list[:0]
		for _, s := range list {
			if s.IsAvailableOn(now) {
				filtered = append(filtered, s)
			}
		}
		list = filtered
	}
	return list, nil
}

func (r *StaffGorm) FindByID(ctx context.Context, id string) (*staff.Staff, error) {
	var s staff.Staff
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, staff.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading staff member: %w", err)
	}
	return &s, nil
}

func (r *StaffGorm) Update(ctx context.Context, id string, cmd *staff.UpdateCommand) (*staff.Staff, error) {
	var updated *staff.Staff

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s staff.Staff
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return staff.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("loading staff member: %w", err)
		}

		cmd.ApplyTo(&s)
		applyStaffDefaults(&s)
		if err := s.Validate(); err != nil {
			return err
		}

		if cmd.Email != nil {
			s.Email = strings.ToLower(s.Email)
			var count int64
			if err := tx.Model(&staff.Staff{}).
				Where("email = ? AND id <> ?", s.Email, id).Count(&count).Error; err != nil {
				return fmt.Errorf("checking email uniqueness: %w", err)
			}
			if count > 0 {
				return staff.ErrDuplicateEmail
			}
		}

		if err := tx.Save(&s).Error; err != nil {
			return fmt.Errorf("saving staff member: %w", err)
		}
		updated = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *StaffGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&staff.Staff{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting staff member: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return staff.ErrNotFound
	}
	return nil
}

func applyStaffDefaults(s *staff.Staff) {
	if s.EmploymentStatus == "" {
		s.EmploymentStatus = staff.EmploymentActive
	}
	if s.EmploymentDate.IsZero() {
		s.EmploymentDate = time.Now()
	}
}
