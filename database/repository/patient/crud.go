package patientRepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"careflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrPatientNotFound is returned when no patient matches the query.
var ErrPatientNotFound = errors.New("patient not found")

// Create inserts a new patient record and returns its ID.
func (r *mongoPatientRepo) Create(ctx context.Context, patient models.Patient) (string, error) {
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	patient.Email = strings.ToLower(strings.TrimSpace(patient.Email))
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, patient); err != nil {
		return "", err
	}
	return patient.ID, nil
}

// GetByID returns a patient by its ID.
func (r *mongoPatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	var patient models.Patient
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &patient, nil
}

// GetByEmail returns a patient by email, normalized to lower case.
func (r *mongoPatientRepo) GetByEmail(ctx context.Context, email string) (*models.Patient, error) {
	var patient models.Patient
	err := r.coll.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &patient, nil
}
