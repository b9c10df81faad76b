package patientRepo

import (
	"context"
	"log"

	"careflow/database"
	"careflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// PatientRepository provides lookup and creation of patient records.
type PatientRepository interface {
	Create(ctx context.Context, patient models.Patient) (string, error)
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	GetByEmail(ctx context.Context, email string) (*models.Patient, error)
}

type mongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo returns a new PatientRepository instance using MongoDB.
func NewMongoPatientRepo() PatientRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoPatientRepo{
		coll: db.Collection("patients"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("patient repo: %v", err)
	}
	return repo
}
