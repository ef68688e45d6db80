package staff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardflow/wardflow/internal/domain"
)

func validStaff() *Staff {
	return &Staff{
		FirstName:   "Asha",
		LastName:    "Nair",
		Role:        RoleDoctor,
		Department:  DepartmentCardiology,
		Email:       "asha.nair@example.org",
		PhoneNumber: "555-0101",
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validStaff().Validate())
}

func TestValidate_Required(t *testing.T) {
	err := (&Staff{}).Validate()
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "first name is required")
	assert.Contains(t, vErr.Fields, "last name is required")
}

func TestValidate_Enums(t *testing.T) {
	m := validStaff()
	m.Role = "janitor"
	err := m.Validate()
	require.Error(t, err)

	m = validStaff()
	m.Department = "garage"
	err = m.Validate()
	require.Error(t, err)

	m = validStaff()
	m.Email = "not-an-email"
	err = m.Validate()
	require.Error(t, err)
}

func TestIsAvailableOn(t *testing.T) {
	m := validStaff()
	m.Availability = Availability{
		"monday": {Available: true, Hours: "09:00-17:00"},
		"friday": {Available: false},
	}

	monday := time.Date(2099, time.January, 5, 10, 0, 0, 0, time.Local)
	require.Equal(t, time.Monday, monday.Weekday())
	assert.True(t, m.IsAvailableOn(monday))

	friday := time.Date(2099, time.January, 9, 10, 0, 0, 0, time.Local)
	require.Equal(t, time.Friday, friday.Weekday())
	assert.False(t, m.IsAvailableOn(friday))

	// days with no entry read as unavailable
	sunday := time.Date(2099, time.January, 4, 10, 0, 0, 0, time.Local)
	require.Equal(t, time.Sunday, sunday.Weekday())
	assert.False(t, m.IsAvailableOn(sunday))

	m.Availability = nil
	assert.False(t, m.IsAvailableOn(monday))
}
