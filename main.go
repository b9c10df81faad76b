package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careflow/config"
	"careflow/cron"
	"careflow/database"
	appointmentRepoPkg "careflow/database/repository/appointment"
	medexportRepoPkg "careflow/database/repository/medexport"
	patientRepoPkg "careflow/database/repository/patient"
	"careflow/handlers"
	"careflow/middleware"
	"careflow/routes"
	"careflow/services/checkout"
	"careflow/services/medication"
	"careflow/services/patient"
	"careflow/services/payment"
	"careflow/services/tasks"
	"careflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	medexportRepo := medexportRepoPkg.NewMongoMedicationExportRepo()

	// Reminder queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	cron.InitReminderWorker(logger)

	// Services.
	patientService := &patient.DefaultPatientService{
		Repo:   patientRepo,
		Logger: logger,
	}

	medicationService := &medication.DefaultMedicationService{
		Records: medication.NewHTTPRecordsClient(
			config.AppConfig.PharmacyAPIBaseURL,
			config.AppConfig.PharmacyAPIKey,
		),
		Exports: medexportRepo,
		Logger:  logger,
	}

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute

	intentClient := payment.NewStripeIntentClient(logger)
	orchestrator := checkout.NewIntentOrchestrator(intentClient, logger, sessionTTL)
	gate := checkout.NewComplianceGate(config.AppConfig.RegulatedMedications)

	sessionStore := checkout.NewRedisSessionStore(utils.GetCheckoutCacheClient(), sessionTTL)

	checkoutService := &checkout.DefaultCheckoutService{
		Store:        sessionStore,
		Intents:      orchestrator,
		Gate:         gate,
		PatientSvc:   patientService,
		Appointments: appointmentRepo,
		Reminders:    &tasks.AsynqScheduler{Client: asynqClient},
		Logger:       logger,
	}

	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, logger)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentRepo, logger)
	medicationHandler := handlers.NewMedicationHandler(medicationService, logger)
	patientHandler := handlers.NewPatientHandler(patientService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		StartSession:    checkoutHandler.StartSession,
		GetSession:      checkoutHandler.GetSession,
		SetReason:       checkoutHandler.SetReason,
		SetSymptoms:     checkoutHandler.SetSymptoms,
		SetPharmacy:     checkoutHandler.SetPharmacy,
		ChooseVisitType: checkoutHandler.ChooseVisitType,
		SetSchedule:     checkoutHandler.SetSchedule,
		SetMedications:  checkoutHandler.SetMedications,
		Acknowledge:     checkoutHandler.Acknowledge,
		ConfirmVisit:    checkoutHandler.ConfirmVisitType,
		SetContact:      checkoutHandler.SetContact,
		ConfirmPhone:    checkoutHandler.ConfirmPhone,
		GoBack:          checkoutHandler.GoBack,

		PaymentIntent:      checkoutHandler.PaymentIntent,
		RetryPaymentIntent: checkoutHandler.RetryPaymentIntent,
		Complete:           checkoutHandler.Complete,

		GetAppointment:    appointmentHandler.GetAppointment,
		ScheduleLiveVisit: checkoutHandler.ScheduleLiveVisit,

		ListMedications: medicationHandler.ListKnown,
		PrefillContact:  patientHandler.PrefillContact,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetCheckoutCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
