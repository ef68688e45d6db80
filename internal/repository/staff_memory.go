package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wardflow/wardflow/internal/domain/staff"
)

type StaffMemory struct {
	mu      sync.RWMutex
	members map[string]*staff.Staff
}

func NewStaffMemory() *StaffMemory {
	return &StaffMemory{members: make(map[string]*staff.Staff)}
}

func (r *StaffMemory) Create(_ context.Context, s *staff.Staff) error {
	applyStaffDefaults(s)
	if err := s.Validate(); err != nil {
		return err
	}
	s.Email = strings.ToLower(s.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.members {
		if m.Email == s.Email {
			return staff.ErrDuplicateEmail
		}
	}

	now := time.Now()
	s.ID = uuid.NewString()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.members[s.ID] = cloneStaff(s)
	return nil
}

func (r *StaffMemory) Find(_ context.Context, f staff.Filter) ([]*staff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(f.Search)
	now := time.Now()
	var results []*staff.Staff
	for _, s := range r.members {
		if f.Role != "" && s.Role != f.Role {
			continue
		}
		if f.Department != "" && s.Department != f.Department {
			continue
		}
		if f.Status != "" && s.EmploymentStatus != f.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(s.FirstName), needle) &&
			!strings.Contains(strings.ToLower(s.LastName), needle) {
			continue
		}
		if f.AvailableNow && !s.IsAvailableOn(now) {
			continue
		}
		results = append(results, cloneStaff(s))
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].LastName != results[j].LastName {
			return results[i].LastName < results[j].LastName
		}
		return results[i].FirstName < results[j].FirstName
	})
	return results, nil
}

func (r *StaffMemory) FindByID(_ context.Context, id string) (*staff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.members[id]
	if !ok {
		return nil, staff.ErrNotFound
	}
	return cloneStaff(s), nil
}

func (r *StaffMemory) Update(_ context.Context, id string, cmd *staff.UpdateCommand) (*staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.members[id]
	if !ok {
		return nil, staff.ErrNotFound
	}

	updated := cloneStaff(existing)
	cmd.ApplyTo(updated)
	applyStaffDefaults(updated)
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.Email = strings.ToLower(updated.Email)

	if cmd.Email != nil {
		for mid, m := range r.members {
			if mid != id && m.Email == updated.Email {
				return nil, staff.ErrDuplicateEmail
			}
		}
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	r.members[id] = updated
	return cloneStaff(updated), nil
}

func (r *StaffMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return staff.ErrNotFound
	}
	delete(r.members, id)
	return nil
}

// Clear empties the store. Test isolation only.
func (r *StaffMemory) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members = make(map[string]*staff.Staff)
}

func cloneStaff(s *staff.Staff) *staff.Staff {
	cp := *s
	if s.Qualifications != nil {
		cp.Qualifications = append([]string(nil), s.Qualifications...)
	}
	if s.Availability != nil {
		cp.Availability = make(staff.Availability, len(s.Availability))
		for k, v := range s.Availability {
			cp.Availability[k] = v
		}
	}
	return &cp
}
