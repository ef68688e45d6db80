package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardflow/wardflow/internal/domain/patient"
)

func newPatient(first, last, contact string) *patient.Patient {
	return &patient.Patient{
		FirstName:     first,
		LastName:      last,
		DateOfBirth:   time.Date(1990, time.February, 2, 0, 0, 0, 0, time.Local),
		ContactNumber: contact,
	}
}

func TestPatientMemory_CreateAndSearch(t *testing.T) {
	repo := NewPatientMemory()
	ctx := context.Background()

	jane := newPatient("Jane", "Roe", "555-0100")
	john := newPatient("John", "Doe", "555-0200")
	require.NoError(t, repo.Create(ctx, jane))
	require.NoError(t, repo.Create(ctx, john))
	assert.NotEmpty(t, jane.ID)
	assert.False(t, jane.AdmissionDate.IsZero())

	all, err := repo.Find(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := repo.Find(ctx, "roe")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, jane.ID, byName[0].ID)

	byContact, err := repo.Find(ctx, "555-0200")
	require.NoError(t, err)
	require.Len(t, byContact, 1)
	assert.Equal(t, john.ID, byContact[0].ID)
}

func TestPatientMemory_SoftDelete(t *testing.T) {
	repo := NewPatientMemory()
	ctx := context.Background()

	p := newPatient("Jane", "Roe", "555-0100")
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, patient.ErrNotFound)

	all, err := repo.Find(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)

	// second delete reports not found
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), patient.ErrNotFound)
}

func TestPatientMemory_Update(t *testing.T) {
	repo := NewPatientMemory()
	ctx := context.Background()

	p := newPatient("Jane", "Roe", "555-0100")
	require.NoError(t, repo.Create(ctx, p))

	doctor := "Dr. Lee"
	updated, err := repo.Update(ctx, p.ID, &patient.UpdateCommand{AssignedDoctor: &doctor})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Lee", updated.AssignedDoctor)
	assert.Equal(t, "Jane", updated.FirstName)

	bad := "not-an-email"
	_, err = repo.Update(ctx, p.ID, &patient.UpdateCommand{Email: &bad})
	assert.Error(t, err)
}
