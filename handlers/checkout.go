package handlers

import (
	"errors"
	"net/http"

	"careflow/models"
	"careflow/services/checkout"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler exposes the guided checkout wizard over HTTP.
type CheckoutHandler struct {
	Svc    checkout.CheckoutService
	Logger *zap.Logger
}

// NewCheckoutHandler returns a handler for the checkout endpoints.
func NewCheckoutHandler(svc checkout.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{Svc: svc, Logger: logger}
}

// respondCheckoutError maps service errors onto HTTP statuses.
func (h *CheckoutHandler) respondCheckoutError(c *gin.Context, err error) {
	var cerr *checkout.CheckoutError
	if errors.As(err, &cerr) {
		switch cerr.Code {
		case "sessionNotFound":
			c.JSON(http.StatusNotFound, gin.H{"error": cerr.Message})
		case "validationError":
			c.JSON(http.StatusBadRequest, gin.H{"error": cerr.Message})
		case "stateError":
			c.JSON(http.StatusConflict, gin.H{"error": cerr.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": cerr.Message})
		}
		return
	}
	h.Logger.Error("Checkout request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
}

// StartSession creates a new checkout session or resumes an existing one.
func (h *CheckoutHandler) StartSession(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId"`
	}
	// An empty body starts a fresh session.
	_ = c.ShouldBindJSON(&req)

	state, err := h.Svc.StartSession(c.Request.Context(), req.SessionID)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetSession returns the session with its resolved step.
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	state, err := h.Svc.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetReason records the visit reason.
func (h *CheckoutHandler) SetReason(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	state, err := h.Svc.SetReason(c.Request.Context(), c.Param("sessionID"), req.Reason)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetSymptoms records and optionally confirms the symptom description.
func (h *CheckoutHandler) SetSymptoms(c *gin.Context) {
	var req struct {
		Text    string `json:"text"`
		Confirm bool   `json:"confirm"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	state, err := h.Svc.SetSymptoms(c.Request.Context(), c.Param("sessionID"), req.Text, req.Confirm)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetPharmacy records the dispensing pharmacy.
func (h *CheckoutHandler) SetPharmacy(c *gin.Context) {
	var req models.Pharmacy
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	state, err := h.Svc.SetPharmacy(c.Request.Context(), c.Param("sessionID"), req)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ChooseVisitType selects the visit type.
func (h *CheckoutHandler) ChooseVisitType(c *gin.Context) {
	var req struct {
		VisitType string `json:"visitType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	state, err := h.Svc.ChooseVisitType(c.Request.Context(), c.Param("sessionID"), req.VisitType)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetSchedule records the requested visit date and time.
func (h *CheckoutHandler) SetSchedule(c *gin.Context) {
	var req models.Schedule
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	state, err := h.Svc.SetSchedule(c.Request.Context(), c.Param("sessionID"), req)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetMedications records the refill medication selection.
func (h *CheckoutHandler) SetMedications(c *gin.Context) {
	var req struct {
		Medications []string `json:"medications"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	state, err := h.Svc.SetMedications(c.Request.Context(), c.Param("sessionID"), req.Medications)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Acknowledge records the async or controlled acknowledgment.
func (h *CheckoutHandler) Acknowledge(c *gin.Context) {
	var req struct {
		Kind string `json:"kind"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var (
		state *models.CheckoutState
		err   error
	)
	switch req.Kind {
	case "async":
		state, err = h.Svc.AcknowledgeAsync(c.Request.Context(), c.Param("sessionID"))
	case "controlled":
		state, err = h.Svc.AcknowledgeControlled(c.Request.Context(), c.Param("sessionID"))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "acknowledgment kind must be async or controlled"})
		return
	}
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ConfirmVisitType locks in the summary step.
func (h *CheckoutHandler) ConfirmVisitType(c *gin.Context) {
	state, err := h.Svc.ConfirmVisitType(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetContact records the patient's contact details.
func (h *CheckoutHandler) SetContact(c *gin.Context) {
	var req models.Contact
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	state, err := h.Svc.SetContact(c.Request.Context(), c.Param("sessionID"), req)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ConfirmPhone locks in the contact step.
func (h *CheckoutHandler) ConfirmPhone(c *gin.Context) {
	state, err := h.Svc.ConfirmPhone(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// GoBack retreats the wizard one step.
func (h *CheckoutHandler) GoBack(c *gin.Context) {
	state, err := h.Svc.GoBack(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// PaymentIntent returns the authorization snapshot, force-fetching at the
// payment step when nothing is held.
func (h *CheckoutHandler) PaymentIntent(c *gin.Context) {
	view, err := h.Svc.PaymentIntent(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RetryPaymentIntent clears an authorization error and fetches again.
func (h *CheckoutHandler) RetryPaymentIntent(c *gin.Context) {
	view, err := h.Svc.RetryPaymentIntent(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Complete runs the post-payment completion path.
func (h *CheckoutHandler) Complete(c *gin.Context) {
	result, err := h.Svc.CompleteCheckout(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ScheduleLiveVisit runs the post-payment compliance scheduling sub-flow.
func (h *CheckoutHandler) ScheduleLiveVisit(c *gin.Context) {
	var req struct {
		VisitType string `json:"visitType"`
		Date      string `json:"date"`
		Time      string `json:"time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	appt, err := h.Svc.ScheduleLiveVisit(c.Request.Context(), c.Param("appointmentID"),
		req.VisitType, models.Schedule{Date: req.Date, Time: req.Time})
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
