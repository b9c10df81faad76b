package handlers

import (
	"net/http"

	"careflow/services/medication"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MedicationHandler serves the known-medication list for refill selection.
type MedicationHandler struct {
	Svc    medication.Service
	Logger *zap.Logger
}

// NewMedicationHandler returns a handler for medication endpoints.
func NewMedicationHandler(svc medication.Service, logger *zap.Logger) *MedicationHandler {
	return &MedicationHandler{Svc: svc, Logger: logger}
}

// ListKnown returns the patient's known medications, falling through the
// lookup tiers inside the service.
func (h *MedicationHandler) ListKnown(c *gin.Context) {
	patientID := c.Query("patientId")
	email := c.Query("email")

	meds, err := h.Svc.ListKnown(c.Request.Context(), patientID, email)
	if err != nil {
		h.Logger.Error("Medication lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load medications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medications": meds})
}
