package medication

import (
	"context"

	medexportRepo "careflow/database/repository/medexport"
	"careflow/models"

	"go.uber.org/zap"
)

// Service lists a patient's known medications to populate the refill
// selection. Lookup runs through three tiers: the live pharmacy records API,
// the bulk export store, and finally the static catalog, which cannot fail.
type Service interface {
	ListKnown(ctx context.Context, patientID, email string) ([]models.Medication, error)
}

// RecordsClient is the live pharmacy-records lookup.
type RecordsClient interface {
	ActiveMedications(ctx context.Context, patientID string) ([]models.Medication, error)
}

// DefaultMedicationService implements Service.
type DefaultMedicationService struct {
	Records RecordsClient
	Exports medexportRepo.MedicationExportRepository
	Logger  *zap.Logger
}
