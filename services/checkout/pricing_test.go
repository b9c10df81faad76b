package checkout

import (
	"testing"

	"careflow/config"
	"careflow/models"

	"github.com/stretchr/testify/assert"
)

func TestFeesFor(t *testing.T) {
	prev := config.AppConfig
	defer func() { config.AppConfig = prev }()

	config.AppConfig.BookingFeeCents = 500
	config.AppConfig.InstantVisitCents = 3900
	config.AppConfig.RefillVisitCents = 2900
	config.AppConfig.VideoVisitCents = 5900
	config.AppConfig.PhoneVisitCents = 4900

	tests := []struct {
		visitType string
		want      models.VisitFees
	}{
		{models.VisitTypeInstant, models.VisitFees{BookingFeeCents: 500, VisitFeeCents: 3900}},
		{models.VisitTypeRefill, models.VisitFees{BookingFeeCents: 500, VisitFeeCents: 2900}},
		{models.VisitTypeVideo, models.VisitFees{BookingFeeCents: 500, VisitFeeCents: 5900}},
		{models.VisitTypePhone, models.VisitFees{BookingFeeCents: 500, VisitFeeCents: 4900}},
		{"unknown", models.VisitFees{BookingFeeCents: 500, VisitFeeCents: 3900}},
	}

	for _, tc := range tests {
		t.Run(tc.visitType, func(t *testing.T) {
			fees := FeesFor(tc.visitType)
			assert.Equal(t, tc.want, fees)
			assert.Equal(t, tc.want.BookingFeeCents+tc.want.VisitFeeCents, fees.Total())
		})
	}
}
