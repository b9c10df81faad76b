package handlers

import (
	"errors"
	"net/http"

	appointmentRepo "careflow/database/repository/appointment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves the booked appointment record to patients
// holding the access token minted at checkout completion.
type AppointmentHandler struct {
	Repo   appointmentRepo.AppointmentRepository
	Logger *zap.Logger
}

// NewAppointmentHandler returns a handler for appointment endpoints.
func NewAppointmentHandler(repo appointmentRepo.AppointmentRepository, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Repo: repo, Logger: logger}
}

// GetAppointment returns the appointment record. The auth middleware has
// already verified the token subject matches the path parameter.
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	appt, err := h.Repo.GetByID(c.Request.Context(), c.Param("appointmentID"))
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		h.Logger.Error("Failed to load appointment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}
