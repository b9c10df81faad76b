package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"careflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrAppointmentNotFound is returned when no appointment matches the query.
var ErrAppointmentNotFound = errors.New("appointment not found")

// CreateIdempotent inserts a new appointment unless one already exists for
// the same tracking ID, in which case the existing record is returned. A
// unique index on tracking_id closes the lookup/insert race: a duplicate-key
// error from a concurrent insert resolves to the winner's record.
func (r *mongoAppointmentRepo) CreateIdempotent(ctx context.Context, appt models.Appointment) (*models.Appointment, error) {
	if appt.TrackingID == "" {
		return nil, errors.New("appointment has no tracking id")
	}

	existing, err := r.GetByTrackingID(ctx, appt.TrackingID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrAppointmentNotFound) {
		return nil, err
	}

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	if appt.Status == "" {
		appt.Status = models.AppointmentStatusBooked
	}
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.GetByTrackingID(ctx, appt.TrackingID)
		}
		return nil, fmt.Errorf("failed to insert appointment: %w", err)
	}
	return &appt, nil
}

// GetByID returns an appointment by its ID.
func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appt, nil
}

// GetByTrackingID returns the appointment created for a payment tracking ID.
func (r *mongoAppointmentRepo) GetByTrackingID(ctx context.Context, trackingID string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"tracking_id": trackingID}).Decode(&appt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appt, nil
}

// UpdateSchedule revises an appointment's visit type and schedule in place.
// Returns ErrAppointmentNotFound if the target record no longer exists.
func (r *mongoAppointmentRepo) UpdateSchedule(ctx context.Context, id string, visitType string, schedule models.Schedule) error {
	update := bson.M{"$set": bson.M{
		"visit_type": visitType,
		"schedule":   schedule,
		"status":     models.AppointmentStatusScheduled,
		"updated_at": time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
