package models

// Medication is one entry in a patient's known-medication list, used to
// populate the refill selection.
type Medication struct {
	Name   string `bson:"name" json:"name"`
	Dosage string `bson:"dosage,omitempty" json:"dosage,omitempty"`
	Active bool   `bson:"active" json:"active"`
}

// MedicationExport is a bulk export of a patient's medication history keyed
// by email, used as a fallback when the live pharmacy-records lookup fails.
type MedicationExport struct {
	Email       string       `bson:"email" json:"email"`
	Medications []Medication `bson:"medications" json:"medications"`
}
