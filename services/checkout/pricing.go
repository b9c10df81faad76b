package checkout

import (
	"careflow/config"
	"careflow/models"
)

// FeesFor returns the booking fee and visit fee for a visit type, from
// configuration. An unknown visit type prices as an instant visit.
func FeesFor(visitType string) models.VisitFees {
	cfg := config.AppConfig
	fees := models.VisitFees{BookingFeeCents: cfg.BookingFeeCents}

	switch visitType {
	case models.VisitTypeRefill:
		fees.VisitFeeCents = cfg.RefillVisitCents
	case models.VisitTypeVideo:
		fees.VisitFeeCents = cfg.VideoVisitCents
	case models.VisitTypePhone:
		fees.VisitFeeCents = cfg.PhoneVisitCents
	default:
		fees.VisitFeeCents = cfg.InstantVisitCents
	}
	return fees
}
