package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"careflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deleteFailingStore drops the first N session deletes, simulating the retry
// window where a completed checkout is submitted again.
type deleteFailingStore struct {
	SessionStore
	mu       sync.Mutex
	failures int
}

func (s *deleteFailingStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("connection reset")
	}
	return s.SessionStore.Delete(ctx, sessionID)
}

func TestCompleteCheckoutBooksAppointment(t *testing.T) {
	svc, client, appts := newTestService(t)
	ctx := context.Background()

	client.results <- intentResult{pi: &models.PaymentIntent{ClientSecret: "cs_1", TrackingID: "pi_1"}}
	id := advanceToPayment(t, svc, models.VisitTypeRefill)
	waitForIntentReady(t, svc, id)

	result, err := svc.CompleteCheckout(ctx, id)
	require.NoError(t, err)
	assert.NotEmpty(t, result.AppointmentID)
	assert.NotEmpty(t, result.AccessToken)
	assert.False(t, result.RequiresLiveVisit)

	appt, err := appts.GetByID(ctx, result.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", appt.TrackingID)
	assert.Equal(t, models.VisitTypeRefill, appt.VisitType)
	assert.Equal(t, models.AppointmentStatusBooked, appt.Status)
	assert.NotEmpty(t, appt.PatientID)

	// A finished booking must not replay on refresh.
	_, err = svc.GetSession(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, IntentIdle, svc.Intents.Snapshot(id).Status)
	assert.Empty(t, client.canceledIDs())
}

func TestCompleteCheckoutRetrySubmissionDoesNotDoubleBook(t *testing.T) {
	svc, client, appts := newTestService(t)
	ctx := context.Background()

	client.results <- intentResult{pi: &models.PaymentIntent{ClientSecret: "cs_1", TrackingID: "pi_1"}}
	id := advanceToPayment(t, svc, models.VisitTypeRefill)
	waitForIntentReady(t, svc, id)

	// Persist the authorization mirror the way the browser does before
	// confirming the charge.
	_, err := svc.PaymentIntent(ctx, id)
	require.NoError(t, err)

	svc.Store = &deleteFailingStore{SessionStore: svc.Store, failures: 1}

	first, err := svc.CompleteCheckout(ctx, id)
	require.NoError(t, err)

	// The failed cleanup left the session behind; the client retries the
	// submission. The tracking ID maps it back to the same appointment.
	second, err := svc.CompleteCheckout(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.AppointmentID, second.AppointmentID)

	appts.mu.Lock()
	stored := len(appts.byID)
	appts.mu.Unlock()
	assert.Equal(t, 1, stored)

	_, err = svc.GetSession(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCompleteCheckoutRegulatedRefillRequiresLiveVisit(t *testing.T) {
	svc, client, _ := newTestService(t)
	ctx := context.Background()

	client.results <- intentResult{pi: &models.PaymentIntent{ClientSecret: "cs_1", TrackingID: "pi_1"}}
	id := advanceToPayment(t, svc, models.VisitTypeRefill)
	waitForIntentReady(t, svc, id)

	// Adding a regulated medication re-opens the summary gates and drops
	// the authorization, so a fresh one is fetched on the way back.
	client.results <- intentResult{pi: &models.PaymentIntent{ClientSecret: "cs_2", TrackingID: "pi_2"}}
	_, err := svc.SetMedications(ctx, id, []string{"Adderall"})
	require.NoError(t, err)
	state, err := svc.AcknowledgeControlled(ctx, id)
	require.NoError(t, err)
	require.Equal(t, string(StepPayment), state.Step)
	waitForIntentReady(t, svc, id)

	result, err := svc.CompleteCheckout(ctx, id)
	require.NoError(t, err)
	assert.True(t, result.RequiresLiveVisit)
}

func TestCompleteCheckoutRejectsUnfinishedSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	state, err := svc.StartSession(ctx, "")
	require.NoError(t, err)
	_, err = svc.SetReason(ctx, state.Session.SessionID, "Refill request")
	require.NoError(t, err)

	_, err = svc.CompleteCheckout(ctx, state.Session.SessionID)
	requireCheckoutError(t, err, "stateError")
}

func TestCompleteCheckoutWithoutAuthorizationFails(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	// No fetch result queued: the prefetch stays in flight and no tracking
	// ID was ever persisted.
	id := advanceToPayment(t, svc, models.VisitTypeInstant)

	_, err := svc.CompleteCheckout(ctx, id)
	requireCheckoutError(t, err, "stateError")
}

func TestScheduleLiveVisitUpdatesExistingAppointment(t *testing.T) {
	svc, _, appts := newTestService(t)
	ctx := context.Background()

	created, err := appts.CreateIdempotent(ctx, models.Appointment{
		TrackingID: "pi_1",
		VisitType:  models.VisitTypeRefill,
		Reason:     "Refill request",
	})
	require.NoError(t, err)

	appt, err := svc.ScheduleLiveVisit(ctx, created.ID, models.VisitTypeVideo, models.Schedule{Date: "2026-09-08", Time: "15:00"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, appt.ID)
	assert.Equal(t, models.VisitTypeVideo, appt.VisitType)
	assert.Equal(t, models.AppointmentStatusScheduled, appt.Status)
	require.NotNil(t, appt.Schedule)
	assert.Equal(t, "2026-09-08", appt.Schedule.Date)
}

func TestScheduleLiveVisitCreatesWhenAppointmentMissing(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	appt, err := svc.ScheduleLiveVisit(ctx, "appt-missing", models.VisitTypePhone, models.Schedule{Date: "2026-09-09", Time: "11:00"})
	require.NoError(t, err)
	assert.Equal(t, "appt-missing", appt.ID)
	assert.Equal(t, "live-visit:appt-missing", appt.TrackingID)
	assert.Equal(t, models.AppointmentStatusScheduled, appt.Status)
}

func TestScheduleLiveVisitRejectsAsyncVisitTypes(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ScheduleLiveVisit(ctx, "appt-1", models.VisitTypeRefill, models.Schedule{Date: "2026-09-09", Time: "11:00"})
	requireCheckoutError(t, err, "validationError")

	_, err = svc.ScheduleLiveVisit(ctx, "appt-1", models.VisitTypeVideo, models.Schedule{})
	requireCheckoutError(t, err, "validationError")
}
