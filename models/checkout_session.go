package models

import "time"

// Visit types supported by the funnel.
const (
	VisitTypeInstant = "instant"
	VisitTypeRefill  = "refill"
	VisitTypeVideo   = "video"
	VisitTypePhone   = "phone"
)

// Pharmacy is the patient's chosen dispensing pharmacy.
type Pharmacy struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Schedule holds a requested visit date and time.
type Schedule struct {
	Date string `json:"date"` // "YYYY-MM-DD"
	Time string `json:"time"` // "HH:MM"
}

// Contact holds the patient's identity and contact details, collected late
// in the funnel and pre-populated from an existing patient profile when one
// matches.
type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	DOB       string `json:"dob"`
	Address   string `json:"address"`
	Email     string `json:"email"`
}

// CheckoutSession is the durable record of every answer the patient has
// supplied. It is stored as JSON in Redis under its SessionID and re-hydrated
// on every request, so an interrupted session resumes at the step the answers
// imply rather than wherever a cached step counter claims.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	PatientID string `json:"patientId,omitempty"`

	Reason            string `json:"reason,omitempty"`
	SymptomsText      string `json:"symptomsText,omitempty"`
	SymptomsConfirmed bool   `json:"symptomsConfirmed,omitempty"`

	Pharmacy *Pharmacy `json:"pharmacy,omitempty"`

	VisitType          string    `json:"visitType,omitempty"`
	VisitTypeChosen    bool      `json:"visitTypeChosen,omitempty"`
	VisitTypeConfirmed bool      `json:"visitTypeConfirmed,omitempty"`
	Schedule           *Schedule `json:"schedule,omitempty"`

	SelectedMedications []string `json:"selectedMedications,omitempty"`

	AsyncAcknowledged      bool `json:"asyncAcknowledged,omitempty"`
	ControlledAcknowledged bool `json:"controlledAcknowledged,omitempty"`

	Contact        *Contact `json:"contact,omitempty"`
	PhoneConfirmed bool     `json:"phoneConfirmed,omitempty"`

	// Mirror of the payment intent handle, persisted so a reloaded session
	// can restore a ready authorization. The cancellation handle itself is
	// never serialized.
	IntentStatus string `json:"intentStatus,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
	TrackingID   string `json:"trackingId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RequiresSchedule reports whether the chosen visit type mandates a calendar
// slot before the summary can be confirmed.
func (s *CheckoutSession) RequiresSchedule() bool {
	return s.VisitType == VisitTypeVideo || s.VisitType == VisitTypePhone
}

// IsAsyncVisit reports whether the visit is handled asynchronously (no live
// encounter at booking time).
func (s *CheckoutSession) IsAsyncVisit() bool {
	return s.VisitType == VisitTypeInstant || s.VisitType == VisitTypeRefill
}

// ContactComplete reports whether every required contact field is present.
func (s *CheckoutSession) ContactComplete() bool {
	c := s.Contact
	if c == nil {
		return false
	}
	return c.FirstName != "" && c.LastName != "" && c.Phone != "" &&
		c.DOB != "" && c.Email != ""
}
