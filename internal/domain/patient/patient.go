package patient

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/wardflow/wardflow/internal/domain"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, "":
		return true
	}
	return false
}

type BloodType string

const (
	BloodTypeAPos  BloodType = "A+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeABPos BloodType = "AB+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeONeg  BloodType = "O-"
)

func (b BloodType) IsValid() bool {
	switch b {
	case BloodTypeAPos, BloodTypeANeg, BloodTypeBPos, BloodTypeBNeg,
		BloodTypeABPos, BloodTypeABNeg, BloodTypeOPos, BloodTypeONeg, "":
		return true
	}
	return false
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	PhoneNumber  string `json:"phone_number"`
}

type Patient struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	FirstName   string    `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName    string    `gorm:"column:last_name;type:varchar(100);not null" json:"last_name"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	Gender      Gender    `gorm:"column:gender;type:varchar(10)" json:"gender"`

	ContactNumber string `gorm:"column:contact_number;type:varchar(30);not null;index" json:"contact_number"`
	Email         string `gorm:"column:email;type:varchar(255)" json:"email"`
	Address       string `gorm:"column:address;type:text" json:"address"`

	BloodType      BloodType `gorm:"column:blood_type;type:varchar(5)" json:"blood_type"`
	Allergies      []string  `gorm:"column:allergies;serializer:json" json:"allergies"`
	MedicalHistory string    `gorm:"column:medical_history;type:text" json:"medical_history"`

	AdmissionDate  time.Time `gorm:"column:admission_date" json:"admission_date"`
	AssignedDoctor string    `gorm:"column:assigned_doctor;type:varchar(200)" json:"assigned_doctor"`

	EmergencyContact *EmergencyContact `gorm:"column:emergency_contact;serializer:json" json:"emergency_contact,omitempty"`

	// Soft delete: removed patients stay in the store but drop out of every
	// query.
	IsDeleted bool       `gorm:"column:is_deleted;default:false;index" json:"is_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p *Patient) Age() int {
	now := time.Now()
	years := now.Year() - p.DateOfBirth.Year()
	if now.Month() < p.DateOfBirth.Month() ||
		(now.Month() == p.DateOfBirth.Month() && now.Day() < p.DateOfBirth.Day()) {
		years--
	}
	return years
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail accepts empty strings: email is optional.
func ValidEmail(email string) bool {
	return email == "" || emailPattern.MatchString(email)
}

func (p *Patient) Validate() error {
	var fields []string

	if strings.TrimSpace(p.FirstName) == "" {
		fields = append(fields, "first name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		fields = append(fields, "last name is required")
	}
	if p.DateOfBirth.IsZero() {
		fields = append(fields, "date of birth is required")
	} else if !p.DateOfBirth.Before(time.Now()) {
		fields = append(fields, "date of birth must be in the past")
	}
	if strings.TrimSpace(p.ContactNumber) == "" {
		fields = append(fields, "contact number is required")
	}
	if !ValidEmail(p.Email) {
		fields = append(fields, "invalid email format")
	}
	if !p.Gender.IsValid() {
		fields = append(fields, string(p.Gender)+" is not a valid gender")
	}
	if !p.BloodType.IsValid() {
		fields = append(fields, string(p.BloodType)+" is not a valid blood type")
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateCommand is a partial patch; nil fields are left untouched.
type UpdateCommand struct {
	FirstName        *string
	LastName         *string
	DateOfBirth      *time.Time
	Gender           *Gender
	ContactNumber    *string
	Email            *string
	Address          *string
	BloodType        *BloodType
	Allergies        *[]string
	MedicalHistory   *string
	AssignedDoctor   *string
	EmergencyContact *EmergencyContact
}

func (c *UpdateCommand) ApplyTo(p *Patient) {
	if c.FirstName != nil {
		p.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		p.LastName = *c.LastName
	}
	if c.DateOfBirth != nil {
		p.DateOfBirth = *c.DateOfBirth
	}
	if c.Gender != nil {
		p.Gender = *c.Gender
	}
	if c.ContactNumber != nil {
		p.ContactNumber = *c.ContactNumber
	}
	if c.Email != nil {
		p.Email = *c.Email
	}
	if c.Address != nil {
		p.Address = *c.Address
	}
	if c.BloodType != nil {
		p.BloodType = *c.BloodType
	}
	if c.Allergies != nil {
		p.Allergies = *c.Allergies
	}
	if c.MedicalHistory != nil {
		p.MedicalHistory = *c.MedicalHistory
	}
	if c.AssignedDoctor != nil {
		p.AssignedDoctor = *c.AssignedDoctor
	}
	if c.EmergencyContact != nil {
		p.EmergencyContact = c.EmergencyContact
	}
}

// Repository abstracts patient storage; soft-deleted records are excluded
// from every method except Delete itself.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	// Find lists patients newest-first, optionally filtered by a
	// case-insensitive substring match on first name, last name or contact
	// number.
	Find(ctx context.Context, search string) ([]*Patient, error)
	FindByID(ctx context.Context, id string) (*Patient, error)
	Update(ctx context.Context, id string, cmd *UpdateCommand) (*Patient, error)
	// Delete soft-deletes the record.
	Delete(ctx context.Context, id string) error
}
