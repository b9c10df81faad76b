package patient

import (
	"context"
	"errors"
	"fmt"

	patientRepo "careflow/database/repository/patient"
	"careflow/models"

	"go.uber.org/zap"
)

// ResolveOrCreate returns the existing patient matching the contact's email,
// or creates a new record from the contact details.
func (s *DefaultPatientService) ResolveOrCreate(ctx context.Context, contact models.Contact) (*models.Patient, error) {
	existing, err := s.Repo.GetByEmail(ctx, contact.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, patientRepo.ErrPatientNotFound) {
		return nil, fmt.Errorf("failed to look up patient: %w", err)
	}

	record := models.Patient{
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Phone:     contact.Phone,
		DOB:       contact.DOB,
		Address:   contact.Address,
		Email:     contact.Email,
	}
	id, err := s.Repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	record.ID = id

	s.Logger.Info("Created patient record", zap.String("patient", id))
	return &record, nil
}

// FindByEmail returns an existing patient profile, used to pre-populate the
// contact step. A missing profile is not an error for the caller to surface.
func (s *DefaultPatientService) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	return s.Repo.GetByEmail(ctx, email)
}
