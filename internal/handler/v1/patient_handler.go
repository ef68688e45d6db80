package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wardflow/wardflow/internal/domain/patient"
	"github.com/wardflow/wardflow/internal/service"
)

type PatientHandler struct {
	svc *service.PatientService
}

func NewPatientHandler(svc *service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

type emergencyContactRequest struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	PhoneNumber  string `json:"phoneNumber"`
}

type createPatientRequest struct {
	FirstName        string                   `json:"firstName"`
	LastName         string                   `json:"lastName"`
	DateOfBirth      string                   `json:"dateOfBirth"`
	Gender           string                   `json:"gender"`
	ContactNumber    string                   `json:"contactNumber"`
	Email            string                   `json:"email"`
	Address          string                   `json:"address"`
	BloodType        string                   `json:"bloodType"`
	Allergies        []string                 `json:"allergies"`
	MedicalHistory   string                   `json:"medicalHistory"`
	AssignedDoctor   string                   `json:"assignedDoctor"`
	EmergencyContact *emergencyContactRequest `json:"emergencyContact"`
}

type updatePatientRequest struct {
	FirstName        *string                  `json:"firstName"`
	LastName         *string                  `json:"lastName"`
	DateOfBirth      *string                  `json:"dateOfBirth"`
	Gender           *string                  `json:"gender"`
	ContactNumber    *string                  `json:"contactNumber"`
	Email            *string                  `json:"email"`
	Address          *string                  `json:"address"`
	BloodType        *string                  `json:"bloodType"`
	Allergies        *[]string                `json:"allergies"`
	MedicalHistory   *string                  `json:"medicalHistory"`
	AssignedDoctor   *string                  `json:"assignedDoctor"`
	EmergencyContact *emergencyContactRequest `json:"emergencyContact"`
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p := &patient.Patient{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Gender:         patient.Gender(req.Gender),
		ContactNumber:  req.ContactNumber,
		Email:          req.Email,
		Address:        req.Address,
		BloodType:      patient.BloodType(req.BloodType),
		Allergies:      req.Allergies,
		MedicalHistory: req.MedicalHistory,
		AssignedDoctor: req.AssignedDoctor,
	}
	if req.DateOfBirth != "" {
		dob, err := time.ParseInLocation("2006-01-02", req.DateOfBirth, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "dateOfBirth must be in YYYY-MM-DD format"})
			return
		}
		p.DateOfBirth = dob
	}
	if req.EmergencyContact != nil {
		p.EmergencyContact = &patient.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Relationship: req.EmergencyContact.Relationship,
			PhoneNumber:  req.EmergencyContact.PhoneNumber,
		}
	}

	created, err := h.svc.Register(c.Request.Context(), p)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, created)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, items)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &patient.UpdateCommand{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		ContactNumber:  req.ContactNumber,
		Email:          req.Email,
		Address:        req.Address,
		Allergies:      req.Allergies,
		MedicalHistory: req.MedicalHistory,
		AssignedDoctor: req.AssignedDoctor,
	}
	if req.DateOfBirth != nil {
		dob, err := time.ParseInLocation("2006-01-02", *req.DateOfBirth, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "dateOfBirth must be in YYYY-MM-DD format"})
			return
		}
		cmd.DateOfBirth = &dob
	}
	if req.Gender != nil {
		g := patient.Gender(*req.Gender)
		cmd.Gender = &g
	}
	if req.BloodType != nil {
		bt := patient.BloodType(*req.BloodType)
		cmd.BloodType = &bt
	}
	if req.EmergencyContact != nil {
		cmd.EmergencyContact = &patient.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Relationship: req.EmergencyContact.Relationship,
			PhoneNumber:  req.EmergencyContact.PhoneNumber,
		}
	}

	updated, err := h.svc.Update(c.Request.Context(), id, cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, updated)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, gin.H{"id": id}, "patient deleted")
}
