package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wardflow/wardflow/internal/domain/patient"
)

type PatientMemory struct {
	mu       sync.RWMutex
	patients map[string]*patient.Patient
}

func NewPatientMemory() *PatientMemory {
	return &PatientMemory{patients: make(map[string]*patient.Patient)}
}

func (r *PatientMemory) Create(_ context.Context, p *patient.Patient) error {
	if err := p.Validate(); err != nil {
		return err
	}

	now := time.Now()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.AdmissionDate.IsZero() {
		p.AdmissionDate = now
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[p.ID] = clonePatient(p)
	return nil
}

func (r *PatientMemory) Find(_ context.Context, search string) ([]*patient.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(search)
	var results []*patient.Patient
	for _, p := range r.patients {
		if p.IsDeleted {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.FirstName), needle) &&
			!strings.Contains(strings.ToLower(p.LastName), needle) &&
			!strings.Contains(p.ContactNumber, search) {
			continue
		}
		results = append(results, clonePatient(p))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

func (r *PatientMemory) FindByID(_ context.Context, id string) (*patient.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	if !ok || p.IsDeleted {
		return nil, patient.ErrNotFound
	}
	return clonePatient(p), nil
}

func (r *PatientMemory) Update(_ context.Context, id string, cmd *patient.UpdateCommand) (*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.patients[id]
	if !ok || existing.IsDeleted {
		return nil, patient.ErrNotFound
	}

	updated := clonePatient(existing)
	cmd.ApplyTo(updated)
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	r.patients[id] = updated
	return clonePatient(updated), nil
}

func (r *PatientMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok || p.IsDeleted {
		return patient.ErrNotFound
	}
	now := time.Now()
	p.IsDeleted = true
	p.DeletedAt = &now
	p.UpdatedAt = now
	return nil
}

// Clear empties the store. Test isolation only.
func (r *PatientMemory) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients = make(map[string]*patient.Patient)
}

func clonePatient(p *patient.Patient) *patient.Patient {
	cp := *p
	if p.Allergies != nil {
		cp.Allergies = append([]string(nil), p.Allergies...)
	}
	if p.EmergencyContact != nil {
		ec := *p.EmergencyContact
		cp.EmergencyContact = &ec
	}
	return &cp
}
