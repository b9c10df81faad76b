package models

// ReminderPayload is the task payload for a scheduled visit reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	VisitType     string `json:"visitType"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}
