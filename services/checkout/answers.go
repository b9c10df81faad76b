package checkout

import (
	"context"
	"fmt"
	"strings"

	"careflow/models"
)

var validVisitTypes = map[string]bool{
	models.VisitTypeInstant: true,
	models.VisitTypeRefill:  true,
	models.VisitTypeVideo:   true,
	models.VisitTypePhone:   true,
}

// SetReason records the visit reason.
func (s *DefaultCheckoutService) SetReason(ctx context.Context, sessionID, reason string) (*models.CheckoutState, error) {
	return s.mutate(ctx, sessionID, func(session *models.CheckoutSession) error {
		if strings.TrimSpace(reason) == "" {
			return NewValidationError("a visit reason is required")
		}
		session.Reason = strings.TrimSpace(reason)
		return nil
	})
}

// SetSymptoms records the symptom description and, when confirm is set,
// locks it in. Confirmation requires the minimum description length.
func (s *DefaultCheckoutService) SetSymptoms(ctx context.Context, sessionID, text string, confirm bool) (*models.CheckoutState, error) {
	return s.mutate(ctx, sessionID, func(session *models.CheckoutSession) error {
		session.SymptomsText = text
		if confirm {
			if len(strings.TrimSpace(text)) < MinSymptomsLength {
				return NewValidationError(fmt.Sprintf("please describe your symptoms in at least %d characters", MinSymptomsLength))
			}
			session.SymptomsConfirmed = true
		}
		return nil
	})
}

// SetPharmacy records the dispensing pharmacy.
func (s *DefaultCheckoutService) SetPharmacy(ctx context.Context, sessionID string, pharmacy models.Pharmacy) (*models.CheckoutState, error) {
	return s.mutate(ctx, sessionID, func(session *models.CheckoutSession) error {
		if pharmacy.Name == "" || pharmacy.Address == "" {
			return NewValidationError("pharmacy name and address are required")
		}
		session.Pharmacy = &pharmacy
		return nil
	})
}

// ChooseVisitType selects a visit type. Switching types changes the fee, so
// any in-flight or held payment authorization is invalidated, and every
// commitment downstream of the selection is reset.
func (s *DefaultCheckoutService) ChooseVisitType(ctx context.Context, sessionID, visitType string) (*models.CheckoutState, error) {
	return s.mutate(ctx, sessionID, func(session *models.CheckoutSession) error {
		if !validVisitTypes[visitType] {
			return NewValidationError(fmt.Sprintf("unknown visit type %q", visitType))
		}
		if session.VisitType != visitType {
			s.Intents.Invalidate(session.SessionID)
		}
		session.VisitType = visitType
		session.VisitTypeChosen = true
		session.VisitTypeConfirmed = false
		if !session.RequiresSchedule() {
			session.Schedule = nil
		}
		if visitType != models.VisitTypeRefill {
			session.SelectedMedications = nil
			session.ControlledAcknowledged = false
		}
		return nil
	})
}

// SetSchedule records the requested visit date and time.
func (s *DefaultCheckoutService) SetSchedule(ctx context.Context, sessionID string, schedule models.Schedule) (*models.CheckoutState, error) {
	return s.mutate(ctx, sessionID, func(session *models.CheckoutSession) error {
		if !session.VisitTypeChosen {
			return NewStateError("choose a visit type before scheduling")
		}
		if schedule.Date == "" || schedule.Time == "" {
			return NewValidationError("schedule date and time are required")
		}
		session.Schedule = &schedule
		s.maybePrefetch(session)
		return nil
	})
}

// SetMedications records the refill selection. Selection changes alter the
// fee, so the payment authorization is invalidated; dropping every regulated
// medication also clears the controlled acknowledgment.
func (s *DefaultCheckoutService) SetMedications(ctx context.Context, sessionID string, medications []string) (*models.CheckoutState, error) {
	return s.mutate(ctx, sessionID, func(session *models.CheckoutSession) error {
		if session.VisitType != models.VisitTypeRefill {
			return NewStateError("medication selection only applies to refill visits")
		}
		s.Intents.Invalidate(session.SessionID)
		session.SelectedMedications = medications
		if !s.Gate.HasRegulated(medications) {
			session.ControlledAcknowledged = false
		}
		return nil
	})
}

// AcknowledgeAsync records the asynchronous-care acknowledgment.
func (s *DefaultCheckoutService) AcknowledgeAsync(ctx context.Context, sessionID string) (*models.CheckoutState, error) {
	return s.mutate(ctx, sessionID, func(session *models.CheckoutSession) error {
		if !session.IsAsyncVisit() {
			return NewStateError("async acknowledgment only applies to instant and refill visits")
		}
		session.AsyncAcknowledged = true
		s.maybePrefetch(session)
		return nil
	})
}

// AcknowledgeControlled records the regulated-medication acknowledgment. It
// can only be set while a regulated medication is actually selected.
func (s *DefaultCheckoutService) AcknowledgeControlled(ctx context.Context, sessionID string) (*models.CheckoutState, error) {
	return s.mutate(ctx, sessionID, func(session *models.CheckoutSession) error {
		if !s.Gate.HasRegulated(session.SelectedMedications) {
			return NewStateError("no regulated medication is selected")
		}
		session.ControlledAcknowledged = true
		s.maybePrefetch(session)
		return nil
	})
}

// ConfirmVisitType locks in the summary. A visit type that mandates a
// calendar cannot be confirmed without a schedule.
func (s *DefaultCheckoutService) ConfirmVisitType(ctx context.Context, sessionID string) (*models.CheckoutState, error) {
	return s.mutate(ctx, sessionID, func(session *models.CheckoutSession) error {
		if !session.VisitTypeChosen {
			return NewStateError("no visit type has been chosen")
		}
		if session.RequiresSchedule() && session.Schedule == nil {
			return NewValidationError("this visit type requires a scheduled date and time")
		}
		session.VisitTypeConfirmed = true
		s.maybePrefetch(session)
		return nil
	})
}

// SetContact records the patient's contact details.
func (s *DefaultCheckoutService) SetContact(ctx context.Context, sessionID string, contact models.Contact) (*models.CheckoutState, error) {
	return s.mutate(ctx, sessionID, func(session *models.CheckoutSession) error {
		if contact.FirstName == "" || contact.LastName == "" || contact.Phone == "" ||
			contact.DOB == "" || contact.Email == "" {
			return NewValidationError("first name, last name, phone, date of birth and email are required")
		}
		session.Contact = &contact
		session.PhoneConfirmed = false
		s.maybePrefetch(session)
		return nil
	})
}

// ConfirmPhone locks in the contact details, the last gate before payment.
func (s *DefaultCheckoutService) ConfirmPhone(ctx context.Context, sessionID string) (*models.CheckoutState, error) {
	return s.mutate(ctx, sessionID, func(session *models.CheckoutSession) error {
		if !session.ContactComplete() {
			return NewStateError("contact details are incomplete")
		}
		session.PhoneConfirmed = true
		return nil
	})
}

// maybePrefetch starts the authorization prefetch as soon as the answers
// carry the session past the summary step, so the secret is usually ready by
// the time the patient reaches payment. Only an idle handle triggers a fetch;
// a ready, fetching or errored handle is left alone.
func (s *DefaultCheckoutService) maybePrefetch(session *models.CheckoutSession) {
	if !StepAtOrPast(ResolveStep(session, s.Gate), StepContact) {
		return
	}
	if s.Intents.Snapshot(session.SessionID).Status != IntentIdle {
		return
	}
	s.Intents.BeginPrefetch(session.SessionID, FeesFor(session.VisitType), s.intentMetadata(session))
}

func (s *DefaultCheckoutService) intentMetadata(session *models.CheckoutSession) map[string]string {
	return map[string]string{
		"session_id": session.SessionID,
		"visit_type": session.VisitType,
	}
}
