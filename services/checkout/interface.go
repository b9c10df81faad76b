package checkout

import (
	"context"

	appointmentRepo "careflow/database/repository/appointment"
	"careflow/models"
	"careflow/services/patient"
	"careflow/services/tasks"

	"go.uber.org/zap"
)

// CheckoutService drives the guided checkout wizard: every answer mutation,
// backward navigation, payment intent access, and the post-payment
// completion and compliance paths.
type CheckoutService interface {
	StartSession(ctx context.Context, sessionID string) (*models.CheckoutState, error)
	GetSession(ctx context.Context, sessionID string) (*models.CheckoutState, error)

	SetReason(ctx context.Context, sessionID, reason string) (*models.CheckoutState, error)
	SetSymptoms(ctx context.Context, sessionID, text string, confirm bool) (*models.CheckoutState, error)
	SetPharmacy(ctx context.Context, sessionID string, pharmacy models.Pharmacy) (*models.CheckoutState, error)
	ChooseVisitType(ctx context.Context, sessionID, visitType string) (*models.CheckoutState, error)
	SetSchedule(ctx context.Context, sessionID string, schedule models.Schedule) (*models.CheckoutState, error)
	SetMedications(ctx context.Context, sessionID string, medications []string) (*models.CheckoutState, error)
	AcknowledgeAsync(ctx context.Context, sessionID string) (*models.CheckoutState, error)
	AcknowledgeControlled(ctx context.Context, sessionID string) (*models.CheckoutState, error)
	ConfirmVisitType(ctx context.Context, sessionID string) (*models.CheckoutState, error)
	SetContact(ctx context.Context, sessionID string, contact models.Contact) (*models.CheckoutState, error)
	ConfirmPhone(ctx context.Context, sessionID string) (*models.CheckoutState, error)

	GoBack(ctx context.Context, sessionID string) (*models.CheckoutState, error)

	PaymentIntent(ctx context.Context, sessionID string) (*IntentView, error)
	RetryPaymentIntent(ctx context.Context, sessionID string) (*IntentView, error)

	CompleteCheckout(ctx context.Context, sessionID string) (*models.CheckoutResult, error)
	ScheduleLiveVisit(ctx context.Context, appointmentID string, visitType string, schedule models.Schedule) (*models.Appointment, error)
}

// DefaultCheckoutService implements CheckoutService.
type DefaultCheckoutService struct {
	Store        SessionStore
	Intents      *IntentOrchestrator
	Gate         *ComplianceGate
	PatientSvc   patient.Service
	Appointments appointmentRepo.AppointmentRepository
	Reminders    tasks.Scheduler
	Logger       *zap.Logger
}
