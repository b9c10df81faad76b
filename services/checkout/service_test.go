package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	appointmentRepo "careflow/database/repository/appointment"
	patientRepo "careflow/database/repository/patient"
	"careflow/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePatientService struct {
	mu      sync.Mutex
	byEmail map[string]*models.Patient
}

func newFakePatientService() *fakePatientService {
	return &fakePatientService{byEmail: make(map[string]*models.Patient)}
}

func (f *fakePatientService) ResolveOrCreate(ctx context.Context, contact models.Contact) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.byEmail[contact.Email]; ok {
		return p, nil
	}
	p := &models.Patient{
		ID:        uuid.New().String(),
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Phone:     contact.Phone,
		DOB:       contact.DOB,
		Email:     contact.Email,
	}
	f.byEmail[contact.Email] = p
	return p, nil
}

func (f *fakePatientService) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.byEmail[email]; ok {
		return p, nil
	}
	return nil, patientRepo.ErrPatientNotFound
}

type fakeAppointmentRepo struct {
	mu         sync.Mutex
	byID       map[string]*models.Appointment
	byTracking map[string]string
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		byID:       make(map[string]*models.Appointment),
		byTracking: make(map[string]string),
	}
}

func (f *fakeAppointmentRepo) CreateIdempotent(ctx context.Context, appt models.Appointment) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.byTracking[appt.TrackingID]; ok {
		existing := *f.byID[id]
		return &existing, nil
	}
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	if appt.Status == "" {
		appt.Status = models.AppointmentStatusBooked
	}
	appt.CreatedAt = time.Now()
	stored := appt
	f.byID[stored.ID] = &stored
	f.byTracking[stored.TrackingID] = stored.ID
	out := stored
	return &out, nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	out := *appt
	return &out, nil
}

func (f *fakeAppointmentRepo) GetByTrackingID(ctx context.Context, trackingID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byTracking[trackingID]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	out := *f.byID[id]
	return &out, nil
}

func (f *fakeAppointmentRepo) UpdateSchedule(ctx context.Context, id string, visitType string, schedule models.Schedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.VisitType = visitType
	appt.Schedule = &schedule
	appt.Status = models.AppointmentStatusScheduled
	return nil
}

func newTestService(t *testing.T) (*DefaultCheckoutService, *fakeIntentClient, *fakeAppointmentRepo) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	client := newFakeIntentClient()
	appts := newFakeAppointmentRepo()

	svc := &DefaultCheckoutService{
		Store:        NewRedisSessionStore(rdb, time.Hour),
		Intents:      NewIntentOrchestrator(client, zap.NewNop(), time.Hour),
		Gate:         NewComplianceGate(nil),
		PatientSvc:   newFakePatientService(),
		Appointments: appts,
		Logger:       zap.NewNop(),
	}
	return svc, client, appts
}

func testContact() models.Contact {
	return models.Contact{
		FirstName: "Dana",
		LastName:  "Reyes",
		Phone:     "512-555-0188",
		DOB:       "1990-04-12",
		Email:     "dana@example.com",
	}
}

// advanceToPayment walks a fresh session through every answer up to the
// payment step and returns the session ID.
func advanceToPayment(t *testing.T, svc *DefaultCheckoutService, visitType string) string {
	t.Helper()
	ctx := context.Background()

	state, err := svc.StartSession(ctx, "")
	require.NoError(t, err)
	id := state.Session.SessionID

	_, err = svc.SetReason(ctx, id, "Medication refill")
	require.NoError(t, err)
	_, err = svc.SetSymptoms(ctx, id, "ongoing treatment, stable for six months", true)
	require.NoError(t, err)
	_, err = svc.SetPharmacy(ctx, id, models.Pharmacy{Name: "CVS", Address: "12 Oak Ave, Austin TX"})
	require.NoError(t, err)
	_, err = svc.ChooseVisitType(ctx, id, visitType)
	require.NoError(t, err)

	if visitType == models.VisitTypeVideo || visitType == models.VisitTypePhone {
		_, err = svc.SetSchedule(ctx, id, models.Schedule{Date: "2026-09-05", Time: "10:00"})
		require.NoError(t, err)
	}
	if visitType == models.VisitTypeInstant || visitType == models.VisitTypeRefill {
		_, err = svc.AcknowledgeAsync(ctx, id)
		require.NoError(t, err)
	}

	_, err = svc.ConfirmVisitType(ctx, id)
	require.NoError(t, err)
	_, err = svc.SetContact(ctx, id, testContact())
	require.NoError(t, err)
	state, err = svc.ConfirmPhone(ctx, id)
	require.NoError(t, err)
	require.Equal(t, string(StepPayment), state.Step)

	return id
}

func waitForIntentReady(t *testing.T, svc *DefaultCheckoutService, sessionID string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return svc.Intents.Snapshot(sessionID).Status == IntentReady
	}, 2*time.Second, 5*time.Millisecond)
}
