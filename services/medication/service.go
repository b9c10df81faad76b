package medication

import (
	"context"

	"careflow/models"

	"go.uber.org/zap"
)

// ListKnown returns the patient's active medications. Each tier's failure is
// logged and falls through to the next; the static catalog is the floor, so
// the refill selection always has something to show.
func (s *DefaultMedicationService) ListKnown(ctx context.Context, patientID, email string) ([]models.Medication, error) {
	if patientID != "" && s.Records != nil {
		meds, err := s.Records.ActiveMedications(ctx, patientID)
		if err == nil && len(meds) > 0 {
			return activeOnly(meds), nil
		}
		if err != nil {
			s.Logger.Warn("Live medication lookup failed, trying export fallback",
				zap.String("patient", patientID), zap.Error(err))
		}
	}

	if email != "" && s.Exports != nil {
		export, err := s.Exports.GetByEmail(ctx, email)
		if err == nil && len(export.Medications) > 0 {
			return activeOnly(export.Medications), nil
		}
		if err != nil {
			s.Logger.Warn("Medication export lookup failed, using static catalog",
				zap.String("email", email), zap.Error(err))
		}
	}

	return StaticCatalog(), nil
}

func activeOnly(meds []models.Medication) []models.Medication {
	out := make([]models.Medication, 0, len(meds))
	for _, m := range meds {
		if m.Active {
			out = append(out, m)
		}
	}
	return out
}
