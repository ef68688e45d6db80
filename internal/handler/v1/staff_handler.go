package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/wardflow/wardflow/internal/domain/staff"
	"github.com/wardflow/wardflow/internal/service"
)

type StaffHandler struct {
	svc *service.StaffService
}

func NewStaffHandler(svc *service.StaffService) *StaffHandler {
	return &StaffHandler{svc: svc}
}

type createStaffRequest struct {
	FirstName        string             `json:"firstName"`
	LastName         string             `json:"lastName"`
	Role             string             `json:"role"`
	Department       string             `json:"department"`
	Specialization   string             `json:"specialization"`
	Qualifications   []string           `json:"qualifications"`
	Email            string             `json:"email"`
	PhoneNumber      string             `json:"phoneNumber"`
	Address          string             `json:"address"`
	EmploymentStatus string             `json:"employmentStatus"`
	Availability     staff.Availability `json:"availability"`
}

type updateStaffRequest struct {
	FirstName        *string             `json:"firstName"`
	LastName         *string             `json:"lastName"`
	Role             *string             `json:"role"`
	Department       *string             `json:"department"`
	Specialization   *string             `json:"specialization"`
	Qualifications   *[]string           `json:"qualifications"`
	Email            *string             `json:"email"`
	PhoneNumber      *string             `json:"phoneNumber"`
	Address          *string             `json:"address"`
	EmploymentStatus *string             `json:"employmentStatus"`
	Availability     *staff.Availability `json:"availability"`
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req createStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	m := &staff.Staff{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Role:             staff.Role(req.Role),
		Department:       staff.Department(req.Department),
		Specialization:   req.Specialization,
		Qualifications:   req.Qualifications,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		EmploymentStatus: staff.EmploymentStatus(req.EmploymentStatus),
		Availability:     req.Availability,
	}

	created, err := h.svc.Register(c.Request.Context(), m)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, created)
}

func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, m)
}

func (h *StaffHandler) List(c *gin.Context) {
	f := staff.Filter{
		Role:         staff.Role(c.Query("role")),
		Department:   staff.Department(c.Query("department")),
		Status:       staff.EmploymentStatus(c.Query("status")),
		Search:       c.Query("search"),
		AvailableNow: c.Query("availableNow") == "true",
	}

	items, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, items)
}

func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &staff.UpdateCommand{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Specialization: req.Specialization,
		Qualifications: req.Qualifications,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Address:        req.Address,
		Availability:   req.Availability,
	}
	if req.Role != nil {
		role := staff.Role(*req.Role)
		cmd.Role = &role
	}
	if req.Department != nil {
		dept := staff.Department(*req.Department)
		cmd.Department = &dept
	}
	if req.EmploymentStatus != nil {
		status := staff.EmploymentStatus(*req.EmploymentStatus)
		cmd.EmploymentStatus = &status
	}

	updated, err := h.svc.Update(c.Request.Context(), id, cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, updated)
}

func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, gin.H{"id": id}, "staff member removed")
}
