package models

// CheckoutState is what every wizard mutation returns to the client: the
// session as persisted plus the single step the answers resolve to.
type CheckoutState struct {
	Session *CheckoutSession `json:"session"`
	Step    string           `json:"step"`
}

// CheckoutResult is the outcome of a successful payment. When
// RequiresLiveVisit is set the client must route to the compliance
// scheduling sub-flow instead of the completion screen.
type CheckoutResult struct {
	AppointmentID     string `json:"appointmentId"`
	AccessToken       string `json:"accessToken"`
	RequiresLiveVisit bool   `json:"requiresLiveVisit"`
}
