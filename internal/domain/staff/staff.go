package staff

import (
	"context"
	"strings"
	"time"

	"github.com/wardflow/wardflow/internal/domain"
	"github.com/wardflow/wardflow/internal/domain/patient"
)

type Role string

const (
	RoleDoctor        Role = "Doctor"
	RoleNurse         Role = "Nurse"
	RoleAdministrator Role = "Administrator"
	RoleTechnician    Role = "Technician"
	RoleReceptionist  Role = "Receptionist"
	RoleOther         Role = "Other"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleDoctor, RoleNurse, RoleAdministrator, RoleTechnician, RoleReceptionist, RoleOther:
		return true
	}
	return false
}

type Department string

const (
	DepartmentEmergency      Department = "Emergency"
	DepartmentCardiology     Department = "Cardiology"
	DepartmentPediatrics     Department = "Pediatrics"
	DepartmentSurgery        Department = "Surgery"
	DepartmentRadiology      Department = "Radiology"
	DepartmentAdministration Department = "Administration"
	DepartmentOther          Department = "Other"
)

func (d Department) IsValid() bool {
	switch d {
	case DepartmentEmergency, DepartmentCardiology, DepartmentPediatrics,
		DepartmentSurgery, DepartmentRadiology, DepartmentAdministration, DepartmentOther:
		return true
	}
	return false
}

type EmploymentStatus string

const (
	EmploymentActive   EmploymentStatus = "active"
	EmploymentInactive EmploymentStatus = "inactive"
	EmploymentOnLeave  EmploymentStatus = "on-leave"
)

func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentActive, EmploymentInactive, EmploymentOnLeave:
		return true
	}
	return false
}

// DayAvailability marks whether a staff member works a given weekday, with
// free-form hours ("09:00-17:00") for display.
type DayAvailability struct {
	Available bool   `json:"available"`
	Hours     string `json:"hours"`
}

// Availability maps lowercase weekday names ("monday" .. "sunday") to that
// day's schedule. Missing days count as unavailable.
type Availability map[string]DayAvailability

type Staff struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	FirstName  string     `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName   string     `gorm:"column:last_name;type:varchar(100);not null;index" json:"last_name"`
	Role       Role       `gorm:"column:role;type:varchar(30);not null;index" json:"role"`
	Department Department `gorm:"column:department;type:varchar(30);not null;index" json:"department"`

	Specialization string   `gorm:"column:specialization;type:varchar(200)" json:"specialization"`
	Qualifications []string `gorm:"column:qualifications;serializer:json" json:"qualifications"`

	Email       string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber string `gorm:"column:phone_number;type:varchar(30);not null" json:"phone_number"`
	Address     string `gorm:"column:address;type:text" json:"address"`

	EmploymentDate   time.Time        `gorm:"column:employment_date" json:"employment_date"`
	EmploymentStatus EmploymentStatus `gorm:"column:employment_status;type:varchar(20);default:'active';index" json:"employment_status"`

	Availability Availability `gorm:"column:availability;serializer:json" json:"availability"`
}

func (Staff) TableName() string {
	return "staff"
}

func (s *Staff) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// IsAvailableOn reports whether the staff member works on the weekday of t.
func (s *Staff) IsAvailableOn(t time.Time) bool {
	if s.Availability == nil {
		return false
	}
	day := strings.ToLower(t.Weekday().String())
	return s.Availability[day].Available
}

func (s *Staff) Validate() error {
	var fields []string

	if strings.TrimSpace(s.FirstName) == "" {
		fields = append(fields, "first name is required")
	}
	if strings.TrimSpace(s.LastName) == "" {
		fields = append(fields, "last name is required")
	}
	if s.Role == "" {
		fields = append(fields, "role is required")
	} else if !s.Role.IsValid() {
		fields = append(fields, string(s.Role)+" is not a valid role")
	}
	if s.Department == "" {
		fields = append(fields, "department is required")
	} else if !s.Department.IsValid() {
		fields = append(fields, string(s.Department)+" is not a valid department")
	}
	if strings.TrimSpace(s.Email) == "" {
		fields = append(fields, "email is required")
	} else if !patient.ValidEmail(s.Email) {
		fields = append(fields, "invalid email format")
	}
	if strings.TrimSpace(s.PhoneNumber) == "" {
		fields = append(fields, "phone number is required")
	}
	if s.EmploymentStatus != "" && !s.EmploymentStatus.IsValid() {
		fields = append(fields, string(s.EmploymentStatus)+" is not a valid employment status")
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Filter narrows staff listings. Zero values mean "no constraint".
type Filter struct {
	Role       Role
	Department Department
	Status     EmploymentStatus
	// Search matches first or last name, case-insensitive substring.
	Search string
	// AvailableNow keeps only staff available on today's weekday.
	AvailableNow bool
}

type UpdateCommand struct {
	FirstName        *string
	LastName         *string
	Role             *Role
	Department       *Department
	Specialization   *string
	Qualifications   *[]string
	Email            *string
	PhoneNumber      *string
	Address          *string
	EmploymentStatus *EmploymentStatus
	Availability     *Availability
}

func (c *UpdateCommand) ApplyTo(s *Staff) {
	if c.FirstName != nil {
		s.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		s.LastName = *c.LastName
	}
	if c.Role != nil {
		s.Role = *c.Role
	}
	if c.Department != nil {
		s.Department = *c.Department
	}
	if c.Specialization != nil {
		s.Specialization = *c.Specialization
	}
	if c.Qualifications != nil {
		s.Qualifications = *c.Qualifications
	}
	if c.Email != nil {
		s.Email = *c.Email
	}
	if c.PhoneNumber != nil {
		s.PhoneNumber = *c.PhoneNumber
	}
	if c.Address != nil {
		s.Address = *c.Address
	}
	if c.EmploymentStatus != nil {
		s.EmploymentStatus = *c.EmploymentStatus
	}
	if c.Availability != nil {
		s.Availability = *c.Availability
	}
}

type Repository interface {
	// Create validates and stores a staff member; a duplicate email returns
	// ErrDuplicateEmail.
	Create(ctx context.Context, s *Staff) error
	// Find lists staff matching the filter, sorted by (last name, first
	// name) ascending.
	Find(ctx context.Context, f Filter) ([]*Staff, error)
	FindByID(ctx context.Context, id string) (*Staff, error)
	Update(ctx context.Context, id string, cmd *UpdateCommand) (*Staff, error)
	Delete(ctx context.Context, id string) error
}
