package checkout

import (
	"strings"

	"careflow/models"
)

// Step identifies the single editable screen of the wizard.
type Step string

// Wizard steps, in funnel order.
const (
	StepReason         Step = "reason"
	StepSymptoms       Step = "symptoms"
	StepPharmacy       Step = "pharmacy"
	StepVisitType      Step = "visitType"
	StepConfirmSummary Step = "confirmSummary"
	StepContact        Step = "contact"
	StepPayment        Step = "payment"
)

var stepOrder = []Step{
	StepReason,
	StepSymptoms,
	StepPharmacy,
	StepVisitType,
	StepConfirmSummary,
	StepContact,
	StepPayment,
}

// MinSymptomsLength is the shortest symptom description that can be confirmed.
const MinSymptomsLength = 10

// ResolveStep maps the session's answers to exactly one active step: the
// first step whose required fields are absent or unconfirmed. The session is
// the only input; there is no stored step counter to drift out of sync.
func ResolveStep(sess *models.CheckoutSession, gate *ComplianceGate) Step {
	if strings.TrimSpace(sess.Reason) == "" {
		return StepReason
	}
	if !symptomsReady(sess) {
		return StepSymptoms
	}
	if sess.Pharmacy == nil || sess.Pharmacy.Name == "" {
		return StepPharmacy
	}
	if !sess.VisitTypeChosen {
		return StepVisitType
	}
	if !summaryConfirmed(sess, gate) {
		return StepConfirmSummary
	}
	if !sess.ContactComplete() || !sess.PhoneConfirmed {
		return StepContact
	}
	return StepPayment
}

func symptomsReady(sess *models.CheckoutSession) bool {
	return sess.SymptomsConfirmed && len(strings.TrimSpace(sess.SymptomsText)) >= MinSymptomsLength
}

// summaryConfirmed reports whether every precondition of leaving the summary
// step holds: explicit confirmation, a schedule when the visit type mandates
// one, and the acknowledgment gates tied to visit type and medication risk.
func summaryConfirmed(sess *models.CheckoutSession, gate *ComplianceGate) bool {
	if !sess.VisitTypeConfirmed {
		return false
	}
	if sess.RequiresSchedule() && sess.Schedule == nil {
		return false
	}
	if sess.IsAsyncVisit() && !sess.AsyncAcknowledged {
		return false
	}
	if gate.HasRegulated(sess.SelectedMedications) && !sess.ControlledAcknowledged {
		return false
	}
	return true
}

// stepIndex returns a step's position in funnel order.
func stepIndex(step Step) int {
	for i, s := range stepOrder {
		if s == step {
			return i
		}
	}
	return -1
}

// StepAtOrPast reports whether the resolved step has reached the given step.
func StepAtOrPast(current, target Step) bool {
	return stepIndex(current) >= stepIndex(target)
}
