package models

import "time"

// Appointment statuses.
const (
	AppointmentStatusBooked    = "booked"
	AppointmentStatusScheduled = "scheduled" // live visit scheduled (compliance sub-flow)
)

// Appointment is the clinical appointment record created after a successful
// charge. TrackingID carries the payment authorization's tracking identifier
// so a retried submission maps back to the same record.
type Appointment struct {
	ID          string    `bson:"id" json:"id"`
	PatientID   string    `bson:"patient_id" json:"patientId"`
	TrackingID  string    `bson:"tracking_id" json:"trackingId"`
	VisitType   string    `bson:"visit_type" json:"visitType"`
	Reason      string    `bson:"reason" json:"reason"`
	Symptoms    string    `bson:"symptoms,omitempty" json:"symptoms,omitempty"`
	Medications []string  `bson:"medications,omitempty" json:"medications,omitempty"`
	Pharmacy    *Pharmacy `bson:"pharmacy,omitempty" json:"pharmacy,omitempty"`
	Schedule    *Schedule `bson:"schedule,omitempty" json:"schedule,omitempty"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
