package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "careflow/database/repository/appointment"
	"careflow/models"
	"careflow/utils"

	"go.uber.org/zap"
)

// PaymentIntent returns the session's authorization snapshot. At the payment
// step an idle handle triggers the fallback force-fetch, so a patient who
// outran the prefetch is never left without a way to pay. The resulting view
// is mirrored onto the persisted session.
func (s *DefaultCheckoutService) PaymentIntent(ctx context.Context, sessionID string) (*IntentView, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var view IntentView
	if ResolveStep(session, s.Gate) == StepPayment {
		view = s.Intents.Ensure(ctx, sessionID, FeesFor(session.VisitType), s.intentMetadata(session))
	} else {
		view = s.Intents.Snapshot(sessionID)
	}

	s.mirrorIntent(session)
	if err := s.Store.Put(ctx, session); err != nil {
		return nil, err
	}
	return &view, nil
}

// RetryPaymentIntent clears a recorded authorization error and fetches again.
func (s *DefaultCheckoutService) RetryPaymentIntent(ctx context.Context, sessionID string) (*IntentView, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.Intents.Retry(sessionID, FeesFor(session.VisitType), s.intentMetadata(session))
	view := s.Intents.Snapshot(sessionID)

	s.mirrorIntent(session)
	if err := s.Store.Put(ctx, session); err != nil {
		return nil, err
	}
	return &view, nil
}

// CompleteCheckout runs the post-payment path: attach the booking to a
// patient, create the appointment keyed to the authorization's tracking ID
// (so a retried submission cannot double-book), mint an access token, and
// clear the session. A regulated refill selection routes the caller to the
// live-visit scheduling sub-flow instead of the completion screen.
func (s *DefaultCheckoutService) CompleteCheckout(ctx context.Context, sessionID string) (*models.CheckoutResult, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ResolveStep(session, s.Gate) != StepPayment {
		return nil, NewStateError("checkout is not ready for payment")
	}

	view := s.Intents.Snapshot(sessionID)
	if view.Status != IntentReady {
		// A restarted process loses its handles; fall back to the
		// authorization the session carried through persistence.
		if session.TrackingID == "" {
			return nil, NewStateError("no payment authorization is held for this session")
		}
		view.TrackingID = session.TrackingID
	}

	patientRecord, err := s.PatientSvc.ResolveOrCreate(ctx, *session.Contact)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}

	appt, err := s.Appointments.CreateIdempotent(ctx, models.Appointment{
		PatientID:   patientRecord.ID,
		TrackingID:  view.TrackingID,
		VisitType:   session.VisitType,
		Reason:      session.Reason,
		Symptoms:    session.SymptomsText,
		Medications: session.SelectedMedications,
		Pharmacy:    session.Pharmacy,
		Schedule:    session.Schedule,
	})
	if err != nil {
		// The charge has already happened; this is the one terminal path.
		return nil, fmt.Errorf("failed to create appointment after payment: %w", err)
	}

	token, err := utils.GenerateAppointmentToken(appt.ID, session.Contact.Email, utils.AppointmentTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to mint appointment access token: %w", err)
	}

	s.scheduleReminder(ctx, appt, session.Contact)

	requiresLiveVisit := session.VisitType == models.VisitTypeRefill &&
		s.Gate.HasRegulated(session.SelectedMedications)

	// A finished booking must not replay on refresh.
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		s.Logger.Warn("Failed to clear completed checkout session",
			zap.String("session", sessionID), zap.Error(err))
	}
	s.Intents.Release(sessionID)

	s.Logger.Info("Checkout completed",
		zap.String("session", sessionID),
		zap.String("appointment", appt.ID),
		zap.Bool("liveVisitRequired", requiresLiveVisit))

	return &models.CheckoutResult{
		AppointmentID:     appt.ID,
		AccessToken:       token,
		RequiresLiveVisit: requiresLiveVisit,
	}, nil
}

// ScheduleLiveVisit is the compliance sub-flow: a regulated medication needs
// a live encounter even though the original booking was asynchronous. The
// existing appointment is revised in place; a fresh record is created only
// when the update target cannot be found.
func (s *DefaultCheckoutService) ScheduleLiveVisit(ctx context.Context, appointmentID string, visitType string, schedule models.Schedule) (*models.Appointment, error) {
	if visitType != models.VisitTypeVideo && visitType != models.VisitTypePhone {
		return nil, NewValidationError("a live visit must be video or phone")
	}
	if schedule.Date == "" || schedule.Time == "" {
		return nil, NewValidationError("schedule date and time are required")
	}

	err := s.Appointments.UpdateSchedule(ctx, appointmentID, visitType, schedule)
	if err == nil {
		return s.Appointments.GetByID(ctx, appointmentID)
	}
	if !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		return nil, fmt.Errorf("failed to schedule live visit: %w", err)
	}

	s.Logger.Warn("Appointment missing for live-visit scheduling, creating a new record",
		zap.String("appointment", appointmentID))
	return s.Appointments.CreateIdempotent(ctx, models.Appointment{
		ID:         appointmentID,
		TrackingID: "live-visit:" + appointmentID,
		VisitType:  visitType,
		Schedule:   &schedule,
		Status:     models.AppointmentStatusScheduled,
	})
}

// scheduleReminder queues a visit reminder email for scheduled visits.
func (s *DefaultCheckoutService) scheduleReminder(ctx context.Context, appt *models.Appointment, contact *models.Contact) {
	if s.Reminders == nil || appt.Schedule == nil {
		return
	}
	fireAt, err := time.Parse("2006-01-02 15:04", appt.Schedule.Date+" "+appt.Schedule.Time)
	if err != nil {
		s.Logger.Warn("Unparseable visit schedule, skipping reminder",
			zap.String("appointment", appt.ID), zap.Error(err))
		return
	}
	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		Email:         contact.Email,
		FirstName:     contact.FirstName,
		VisitType:     appt.VisitType,
		Date:          appt.Schedule.Date,
		Time:          appt.Schedule.Time,
	}
	if err := s.Reminders.ScheduleVisitReminder(ctx, payload, fireAt.Add(-time.Hour)); err != nil {
		s.Logger.Warn("Failed to queue visit reminder",
			zap.String("appointment", appt.ID), zap.Error(err))
	}
}
