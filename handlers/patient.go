package handlers

import (
	"net/http"

	"careflow/services/patient"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PatientHandler serves contact pre-population from existing profiles.
type PatientHandler struct {
	Svc    patient.Service
	Logger *zap.Logger
}

// NewPatientHandler returns a handler for patient endpoints.
func NewPatientHandler(svc patient.Service, logger *zap.Logger) *PatientHandler {
	return &PatientHandler{Svc: svc, Logger: logger}
}

// PrefillContact returns the existing profile for an email so the contact
// step can be pre-populated. A missing profile is an empty 200, not an error.
func (h *PatientHandler) PrefillContact(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	record, err := h.Svc.FindByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"patient": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": record})
}
