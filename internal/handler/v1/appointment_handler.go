package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wardflow/wardflow/internal/domain/appointment"
	"github.com/wardflow/wardflow/internal/service"
)

type AppointmentHandler struct {
	svc *service.AppointmentService
}

func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

type createAppointmentRequest struct {
	PatientID       string `json:"patientId"`
	PatientName     string `json:"patientName"`
	DoctorName      string `json:"doctorName"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Duration        int    `json:"duration"`
	Reason          string `json:"reason"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

type updateAppointmentRequest struct {
	PatientID       *string `json:"patientId"`
	PatientName     *string `json:"patientName"`
	DoctorName      *string `json:"doctorName"`
	AppointmentDate *string `json:"appointmentDate"`
	AppointmentTime *string `json:"appointmentTime"`
	Duration        *int    `json:"duration"`
	Reason          *string `json:"reason"`
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a := &appointment.Appointment{
		PatientID:       req.PatientID,
		PatientName:     req.PatientName,
		DoctorName:      req.DoctorName,
		AppointmentTime: req.AppointmentTime,
		Duration:        req.Duration,
		Reason:          req.Reason,
		Status:          appointment.Status(req.Status),
		Notes:           req.Notes,
	}
	if req.AppointmentDate != "" {
		date, err := time.ParseInLocation("2006-01-02", req.AppointmentDate, time.Local)
		if err != nil {
			respondServiceError(c, appointment.ErrInvalidDateFormat)
			return
		}
		a.AppointmentDate = date
	}

	created, err := h.svc.Schedule(c.Request.Context(), a)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, created)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	q := service.ListQuery{
		PatientID:  c.Query("patientId"),
		DoctorName: c.Query("doctorName"),
		Status:     appointment.Status(c.Query("status")),
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
	}

	items, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, items)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &appointment.UpdateCommand{
		PatientID:       req.PatientID,
		PatientName:     req.PatientName,
		DoctorName:      req.DoctorName,
		AppointmentTime: req.AppointmentTime,
		Duration:        req.Duration,
		Reason:          req.Reason,
		Notes:           req.Notes,
	}
	if req.AppointmentDate != nil {
		date, err := time.ParseInLocation("2006-01-02", *req.AppointmentDate, time.Local)
		if err != nil {
			respondServiceError(c, appointment.ErrInvalidDateFormat)
			return
		}
		cmd.AppointmentDate = &date
	}
	if req.Status != nil {
		status := appointment.Status(*req.Status)
		cmd.Status = &status
	}

	updated, err := h.svc.Update(c.Request.Context(), id, cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, updated)
}

// Cancel handles DELETE: the appointment is kept and marked cancelled.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	cancelled, err := h.svc.Cancel(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, cancelled, "appointment cancelled")
}
