package checkout

import (
	"context"

	"careflow/models"
)

// GoBack retreats one step by clearing the answers that admitted the patient
// into the currently active step, plus everything only later steps populate.
// The Step Resolver then lands on the earlier step by itself, and the reset is
// persisted so a reload resumes there rather than snapping forward again.
func (s *DefaultCheckoutService) GoBack(ctx context.Context, sessionID string) (*models.CheckoutState, error) {
	return s.mutate(ctx, sessionID, func(session *models.CheckoutSession) error {
		switch ResolveStep(session, s.Gate) {
		case StepReason:
			// Already at the first step.

		case StepSymptoms:
			session.Reason = ""

		case StepPharmacy:
			session.SymptomsConfirmed = false

		case StepVisitType:
			session.Pharmacy = nil
			session.VisitTypeChosen = false
			session.VisitTypeConfirmed = false
			session.Schedule = nil
			session.SelectedMedications = nil
			session.AsyncAcknowledged = false
			session.ControlledAcknowledged = false
			session.PhoneConfirmed = false
			s.Intents.Invalidate(session.SessionID)

		case StepConfirmSummary:
			session.VisitTypeChosen = false
			session.VisitTypeConfirmed = false
			session.Schedule = nil
			session.AsyncAcknowledged = false
			session.ControlledAcknowledged = false
			session.PhoneConfirmed = false
			s.Intents.Invalidate(session.SessionID)

		case StepContact:
			session.VisitTypeConfirmed = false
			session.PhoneConfirmed = false

		case StepPayment:
			// Deliberately keep the held authorization: one step of
			// back-and-forth should not cost a second processor round-trip.
			session.PhoneConfirmed = false
		}
		return nil
	})
}
