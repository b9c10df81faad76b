package medication

import "careflow/models"

// staticCatalog is the last-resort medication list shown when neither the
// live lookup nor the export fallback yields anything for the patient.
var staticCatalog = []models.Medication{
	{Name: "Amoxicillin", Dosage: "500mg", Active: true},
	{Name: "Atorvastatin", Dosage: "20mg", Active: true},
	{Name: "Azithromycin", Dosage: "250mg", Active: true},
	{Name: "Escitalopram", Dosage: "10mg", Active: true},
	{Name: "Fluoxetine", Dosage: "20mg", Active: true},
	{Name: "Levothyroxine", Dosage: "50mcg", Active: true},
	{Name: "Lisinopril", Dosage: "10mg", Active: true},
	{Name: "Metformin", Dosage: "500mg", Active: true},
	{Name: "Nitrofurantoin", Dosage: "100mg", Active: true},
	{Name: "Omeprazole", Dosage: "20mg", Active: true},
	{Name: "Sertraline", Dosage: "50mg", Active: true},
	{Name: "Valacyclovir", Dosage: "500mg", Active: true},
}

// StaticCatalog returns a copy of the built-in medication catalog.
func StaticCatalog() []models.Medication {
	out := make([]models.Medication, len(staticCatalog))
	copy(out, staticCatalog)
	return out
}
