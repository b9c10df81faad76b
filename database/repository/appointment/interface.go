package appointmentRepo

import (
	"context"
	"log"

	"careflow/database"
	"careflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository persists clinical appointments. CreateIdempotent is
// keyed on the payment tracking ID: a retried submission with the same
// tracking ID returns the already-created record.
type AppointmentRepository interface {
	CreateIdempotent(ctx context.Context, appt models.Appointment) (*models.Appointment, error)
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetByTrackingID(ctx context.Context, trackingID string) (*models.Appointment, error)
	UpdateSchedule(ctx context.Context, id string, visitType string, schedule models.Schedule) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns a new AppointmentRepository instance using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("appointment repo: %v", err)
	}
	return repo
}
