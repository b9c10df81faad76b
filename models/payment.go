package models

// VisitFees is the pair of amounts, in cents, submitted with a payment
// authorization request: the booking fee charged up front and the visit fee
// held for the clinical encounter.
type VisitFees struct {
	BookingFeeCents int64 `json:"bookingFeeCents"`
	VisitFeeCents   int64 `json:"visitFeeCents"`
}

// Total returns the combined authorization amount in cents.
func (f VisitFees) Total() int64 {
	return f.BookingFeeCents + f.VisitFeeCents
}

// PaymentIntent is the processor's answer to a create-intent call: an opaque
// client secret the browser completes the charge with, and a tracking
// identifier the appointment record is keyed to.
type PaymentIntent struct {
	ClientSecret string    `json:"clientSecret"`
	TrackingID   string    `json:"trackingId"`
	Fees         VisitFees `json:"fees"`
}
