package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Checkout session endpoints.
	StartSession    gin.HandlerFunc
	GetSession      gin.HandlerFunc
	SetReason       gin.HandlerFunc
	SetSymptoms     gin.HandlerFunc
	SetPharmacy     gin.HandlerFunc
	ChooseVisitType gin.HandlerFunc
	SetSchedule     gin.HandlerFunc
	SetMedications  gin.HandlerFunc
	Acknowledge     gin.HandlerFunc
	ConfirmVisit    gin.HandlerFunc
	SetContact      gin.HandlerFunc
	ConfirmPhone    gin.HandlerFunc
	GoBack          gin.HandlerFunc

	// Payment endpoints.
	PaymentIntent      gin.HandlerFunc
	RetryPaymentIntent gin.HandlerFunc
	Complete           gin.HandlerFunc

	// Post-payment appointment endpoints.
	GetAppointment    gin.HandlerFunc
	ScheduleLiveVisit gin.HandlerFunc

	// Supporting lookups.
	ListMedications gin.HandlerFunc
	PrefillContact  gin.HandlerFunc
}
