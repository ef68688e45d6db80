package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardflow/wardflow/internal/domain/staff"
)

func newStaff(first, last, email string, role staff.Role) *staff.Staff {
	return &staff.Staff{
		FirstName:   first,
		LastName:    last,
		Role:        role,
		Department:  staff.DepartmentCardiology,
		Email:       email,
		PhoneNumber: "555-0300",
	}
}

func TestStaffMemory_CreateRejectsDuplicateEmail(t *testing.T) {
	repo := NewStaffMemory()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newStaff("Asha", "Nair", "asha@example.org", staff.RoleDoctor)))

	// email comparison is case-insensitive
	err := repo.Create(ctx, newStaff("Other", "Person", "ASHA@example.org", staff.RoleNurse))
	assert.ErrorIs(t, err, staff.ErrDuplicateEmail)
}

func TestStaffMemory_CreateDefaults(t *testing.T) {
	repo := NewStaffMemory()
	ctx := context.Background()

	m := newStaff("Asha", "Nair", "asha@example.org", staff.RoleDoctor)
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, staff.EmploymentActive, got.EmploymentStatus)
	assert.False(t, got.EmploymentDate.IsZero())
}

func TestStaffMemory_FindFiltersAndSort(t *testing.T) {
	repo := NewStaffMemory()
	ctx := context.Background()

	doctor := newStaff("Asha", "Nair", "asha@example.org", staff.RoleDoctor)
	nurse := newStaff("Ben", "Adams", "ben@example.org", staff.RoleNurse)
	require.NoError(t, repo.Create(ctx, doctor))
	require.NoError(t, repo.Create(ctx, nurse))

	all, err := repo.Find(ctx, staff.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Adams", all[0].LastName, "sorted by last name")

	doctors, err := repo.Find(ctx, staff.Filter{Role: staff.RoleDoctor})
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, doctor.ID, doctors[0].ID)

	byName, err := repo.Find(ctx, staff.Filter{Search: "nai"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, doctor.ID, byName[0].ID)
}

func TestStaffMemory_UpdateEmailUniqueness(t *testing.T) {
	repo := NewStaffMemory()
	ctx := context.Background()

	a := newStaff("Asha", "Nair", "asha@example.org", staff.RoleDoctor)
	b := newStaff("Ben", "Adams", "ben@example.org", staff.RoleNurse)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	taken := "asha@example.org"
	_, err := repo.Update(ctx, b.ID, &staff.UpdateCommand{Email: &taken})
	assert.ErrorIs(t, err, staff.ErrDuplicateEmail)

	fresh := "ben.adams@example.org"
	updated, err := repo.Update(ctx, b.ID, &staff.UpdateCommand{Email: &fresh})
	require.NoError(t, err)
	assert.Equal(t, fresh, updated.Email)
}

func TestStaffMemory_Delete(t *testing.T) {
	repo := NewStaffMemory()
	ctx := context.Background()

	m := newStaff("Asha", "Nair", "asha@example.org", staff.RoleDoctor)
	require.NoError(t, repo.Create(ctx, m))

	require.NoError(t, repo.Delete(ctx, m.ID))
	_, err := repo.FindByID(ctx, m.ID)
	assert.ErrorIs(t, err, staff.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, m.ID), staff.ErrNotFound)
}
