package checkout

import (
	"context"
	"testing"
	"time"

	"careflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireCheckoutError(t *testing.T, err error, code string) {
	t.Helper()
	var ce *CheckoutError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, code, ce.Code)
}

func TestSetReasonRejectsBlank(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	state, err := svc.StartSession(ctx, "")
	require.NoError(t, err)

	_, err = svc.SetReason(ctx, state.Session.SessionID, "   ")
	requireCheckoutError(t, err, "validationError")
}

func TestSetSymptomsConfirmRequiresMinimumLength(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	state, err := svc.StartSession(ctx, "")
	require.NoError(t, err)
	id := state.Session.SessionID
	_, err = svc.SetReason(ctx, id, "Cold symptoms")
	require.NoError(t, err)

	_, err = svc.SetSymptoms(ctx, id, "cough", true)
	requireCheckoutError(t, err, "validationError")

	// Draft text may be saved without confirming, at any length.
	state, err = svc.SetSymptoms(ctx, id, "cough", false)
	require.NoError(t, err)
	assert.Equal(t, string(StepSymptoms), state.Step)

	state, err = svc.SetSymptoms(ctx, id, "dry cough and congestion for four days", true)
	require.NoError(t, err)
	assert.Equal(t, string(StepPharmacy), state.Step)
}

func TestChooseVisitTypeRejectsUnknown(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	state, err := svc.StartSession(ctx, "")
	require.NoError(t, err)

	_, err = svc.ChooseVisitType(ctx, state.Session.SessionID, "house-call")
	requireCheckoutError(t, err, "validationError")
}

func TestChooseVisitTypeSwitchInvalidatesAuthorization(t *testing.T) {
	svc, client, _ := newTestService(t)
	ctx := context.Background()

	client.results <- intentResult{pi: &models.PaymentIntent{ClientSecret: "cs_video", TrackingID: "pi_video"}}
	id := advanceToPayment(t, svc, models.VisitTypeVideo)
	waitForIntentReady(t, svc, id)

	// Switching the visit type changes the fee; the held authorization
	// for the old amount must not survive.
	state, err := svc.ChooseVisitType(ctx, id, models.VisitTypePhone)
	require.NoError(t, err)
	assert.Equal(t, string(StepConfirmSummary), state.Step)
	assert.Equal(t, IntentIdle, svc.Intents.Snapshot(id).Status)
	require.Eventually(t, func() bool {
		return len(client.canceledIDs()) == 1 && client.canceledIDs()[0] == "pi_video"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSetMedicationsOnlyForRefillVisits(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	state, err := svc.StartSession(ctx, "")
	require.NoError(t, err)
	id := state.Session.SessionID
	_, err = svc.SetReason(ctx, id, "Refill request")
	require.NoError(t, err)
	_, err = svc.SetSymptoms(ctx, id, "ongoing treatment, stable for six months", true)
	require.NoError(t, err)
	_, err = svc.SetPharmacy(ctx, id, models.Pharmacy{Name: "CVS", Address: "12 Oak Ave"})
	require.NoError(t, err)
	_, err = svc.ChooseVisitType(ctx, id, models.VisitTypeVideo)
	require.NoError(t, err)

	_, err = svc.SetMedications(ctx, id, []string{"Lisinopril"})
	requireCheckoutError(t, err, "stateError")
}

func TestRegulatedMedicationAcknowledgmentLifecycle(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	state, err := svc.StartSession(ctx, "")
	require.NoError(t, err)
	id := state.Session.SessionID
	_, err = svc.SetReason(ctx, id, "Refill request")
	require.NoError(t, err)
	_, err = svc.SetSymptoms(ctx, id, "ongoing treatment, stable for six months", true)
	require.NoError(t, err)
	_, err = svc.SetPharmacy(ctx, id, models.Pharmacy{Name: "CVS", Address: "12 Oak Ave"})
	require.NoError(t, err)
	_, err = svc.ChooseVisitType(ctx, id, models.VisitTypeRefill)
	require.NoError(t, err)

	// No regulated selection, no acknowledgment to give.
	_, err = svc.AcknowledgeControlled(ctx, id)
	requireCheckoutError(t, err, "stateError")

	_, err = svc.SetMedications(ctx, id, []string{"Lisinopril", "Adderall"})
	require.NoError(t, err)
	state, err = svc.AcknowledgeControlled(ctx, id)
	require.NoError(t, err)
	assert.True(t, state.Session.ControlledAcknowledged)

	// Dropping the regulated medication clears the acknowledgment so it
	// cannot silently apply to a later re-selection.
	state, err = svc.SetMedications(ctx, id, []string{"Lisinopril"})
	require.NoError(t, err)
	assert.False(t, state.Session.ControlledAcknowledged)
}

func TestAcknowledgeAsyncOnlyForAsyncVisits(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	state, err := svc.StartSession(ctx, "")
	require.NoError(t, err)
	id := state.Session.SessionID
	_, err = svc.SetReason(ctx, id, "Follow-up")
	require.NoError(t, err)
	_, err = svc.SetSymptoms(ctx, id, "persistent headaches in the morning", true)
	require.NoError(t, err)
	_, err = svc.SetPharmacy(ctx, id, models.Pharmacy{Name: "CVS", Address: "12 Oak Ave"})
	require.NoError(t, err)
	_, err = svc.ChooseVisitType(ctx, id, models.VisitTypeVideo)
	require.NoError(t, err)

	_, err = svc.AcknowledgeAsync(ctx, id)
	requireCheckoutError(t, err, "stateError")
}

func TestConfirmVisitTypeRequiresScheduleForLiveVisits(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	state, err := svc.StartSession(ctx, "")
	require.NoError(t, err)
	id := state.Session.SessionID
	_, err = svc.SetReason(ctx, id, "Consultation")
	require.NoError(t, err)
	_, err = svc.SetSymptoms(ctx, id, "recurring lower back pain when sitting", true)
	require.NoError(t, err)
	_, err = svc.SetPharmacy(ctx, id, models.Pharmacy{Name: "CVS", Address: "12 Oak Ave"})
	require.NoError(t, err)
	_, err = svc.ChooseVisitType(ctx, id, models.VisitTypePhone)
	require.NoError(t, err)

	_, err = svc.ConfirmVisitType(ctx, id)
	requireCheckoutError(t, err, "validationError")
}

func TestSetContactValidatesRequiredFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	state, err := svc.StartSession(ctx, "")
	require.NoError(t, err)
	id := state.Session.SessionID

	contact := testContact()
	contact.Email = ""
	_, err = svc.SetContact(ctx, id, contact)
	requireCheckoutError(t, err, "validationError")

	_, err = svc.ConfirmPhone(ctx, id)
	requireCheckoutError(t, err, "stateError")
}

func TestPrefetchFiresOncePastSummary(t *testing.T) {
	svc, client, _ := newTestService(t)

	client.results <- intentResult{pi: &models.PaymentIntent{ClientSecret: "cs_pre", TrackingID: "pi_pre"}}
	id := advanceToPayment(t, svc, models.VisitTypeRefill)
	waitForIntentReady(t, svc, id)

	// Exactly one fetch: the pre-emptive one, no duplicate on later answers.
	assert.Equal(t, 1, client.createCalls())
	assert.Equal(t, "cs_pre", svc.Intents.Snapshot(id).ClientSecret)
}
