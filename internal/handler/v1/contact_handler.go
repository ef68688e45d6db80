package v1

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wardflow/wardflow/internal/domain/patient"
)

// ContactHandler accepts messages from the public contact form. Messages
// are logged, not persisted.
type ContactHandler struct {
	log *zap.Logger
}

func NewContactHandler(log *zap.Logger) *ContactHandler {
	return &ContactHandler{log: log}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if !bindJSON(c, &req) {
		return
	}

	var fields []string
	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		fields = append(fields, "name must be between 2 and 100 characters")
	}
	if !patient.ValidEmail(req.Email) || req.Email == "" {
		fields = append(fields, "a valid email address is required")
	}
	message := strings.TrimSpace(req.Message)
	if n := utf8.RuneCountInString(message); n < 10 || n > 1000 {
		fields = append(fields, "message must be between 10 and 1000 characters")
	}
	if len(fields) > 0 {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
		return
	}

	h.log.Info("contact form submission",
		zap.String("name", name),
		zap.String("email", req.Email),
		zap.Int("message_length", len(message)),
	)
	respondMessage(c, gin.H{"received": true}, "thank you for contacting us")
}
