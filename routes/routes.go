package routes

import (
	"net/http"
	"time"

	"careflow/handlers"
	"careflow/middleware"
	"careflow/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCheckoutRoutes sets up the endpoints for the checkout wizard.
func RegisterCheckoutRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	checkoutGroup := r.Group("/api/checkout")
	{
		checkoutGroup.POST("/session", hb.StartSession)
		checkoutGroup.GET("/session/:sessionID", hb.GetSession)

		checkoutGroup.PUT("/session/:sessionID/reason", hb.SetReason)
		checkoutGroup.PUT("/session/:sessionID/symptoms", hb.SetSymptoms)
		checkoutGroup.PUT("/session/:sessionID/pharmacy", hb.SetPharmacy)
		checkoutGroup.PUT("/session/:sessionID/visit-type", hb.ChooseVisitType)
		checkoutGroup.PUT("/session/:sessionID/schedule", hb.SetSchedule)
		checkoutGroup.PUT("/session/:sessionID/medications", hb.SetMedications)
		checkoutGroup.POST("/session/:sessionID/acknowledge", hb.Acknowledge)
		checkoutGroup.POST("/session/:sessionID/confirm", hb.ConfirmVisit)
		checkoutGroup.PUT("/session/:sessionID/contact", hb.SetContact)
		checkoutGroup.POST("/session/:sessionID/contact/confirm", hb.ConfirmPhone)
		checkoutGroup.POST("/session/:sessionID/back", hb.GoBack)

		checkoutGroup.GET("/session/:sessionID/payment-intent", hb.PaymentIntent)
		checkoutGroup.POST("/session/:sessionID/payment-intent/retry", hb.RetryPaymentIntent)
		checkoutGroup.POST("/session/:sessionID/complete", hb.Complete)
	}
}

// RegisterAppointmentRoutes sets up the post-payment endpoints, guarded by
// the appointment access token minted at checkout completion.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	apptGroup := r.Group("/api/appointments", middleware.AppointmentAuthMiddleware())
	{
		apptGroup.GET("/:appointmentID", hb.GetAppointment)
		apptGroup.POST("/:appointmentID/live-visit", hb.ScheduleLiveVisit)
	}
}

// RegisterLookupRoutes sets up the supporting lookup endpoints.
func RegisterLookupRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/medications", hb.ListMedications)
		api.GET("/contact/prefill", hb.PrefillContact)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCheckoutRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterLookupRoutes(r, hb)
}
