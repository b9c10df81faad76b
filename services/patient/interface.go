package patient

import (
	"context"

	patientRepo "careflow/database/repository/patient"
	"careflow/models"

	"go.uber.org/zap"
)

// Service resolves bookings to patient records: find the existing profile
// for an email, or create a fresh one from contact details.
type Service interface {
	ResolveOrCreate(ctx context.Context, contact models.Contact) (*models.Patient, error)
	FindByEmail(ctx context.Context, email string) (*models.Patient, error)
}

// DefaultPatientService implements Service on the patient repository.
type DefaultPatientService struct {
	Repo   patientRepo.PatientRepository
	Logger *zap.Logger
}
