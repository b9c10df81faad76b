package medexportRepo

import (
	"context"
	"errors"
	"strings"

	"careflow/database"
	"careflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrExportNotFound is returned when no medication export exists for an email.
var ErrExportNotFound = errors.New("medication export not found")

// MedicationExportRepository reads bulk medication exports, the second tier
// of the known-medication lookup chain.
type MedicationExportRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.MedicationExport, error)
}

type mongoMedicationExportRepo struct {
	coll *mongo.Collection
}

// NewMongoMedicationExportRepo returns a MedicationExportRepository using MongoDB.
func NewMongoMedicationExportRepo() MedicationExportRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoMedicationExportRepo{
		coll: db.Collection("medication_exports"),
	}
}

// GetByEmail returns the medication export for an email, normalized to lower case.
func (r *mongoMedicationExportRepo) GetByEmail(ctx context.Context, email string) (*models.MedicationExport, error) {
	var export models.MedicationExport
	err := r.coll.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&export)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrExportNotFound
		}
		return nil, err
	}
	return &export, nil
}
