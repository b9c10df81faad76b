package payment

import (
	"context"
	"fmt"
	"strconv"

	"careflow/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeIntentClient creates authorization holds via Stripe PaymentIntents.
// The hold covers the booking fee plus the visit fee; capture happens later,
// after the clinical encounter is confirmed.
type StripeIntentClient struct {
	logger *zap.Logger
}

// NewStripeIntentClient returns an IntentClient backed by Stripe. The global
// stripe.Key must already be set.
func NewStripeIntentClient(logger *zap.Logger) *StripeIntentClient {
	return &StripeIntentClient{logger: logger}
}

// CreateIntent requests an authorization hold for the combined fees and
// returns the client secret and intent ID.
func (c *StripeIntentClient) CreateIntent(ctx context.Context, fees models.VisitFees, metadata map[string]string) (*models.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(fees.Total()),
		Currency:      stripe.String(string(stripe.CurrencyUSD)),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
	}
	params.Context = ctx
	params.AddMetadata("booking_fee_cents", strconv.FormatInt(fees.BookingFeeCents, 10))
	params.AddMetadata("visit_fee_cents", strconv.FormatInt(fees.VisitFeeCents, 10))
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	if pi.ClientSecret == "" {
		return nil, fmt.Errorf("payment intent %s has no client secret", pi.ID)
	}

	c.logger.Info("Created payment intent",
		zap.String("intent", pi.ID),
		zap.Int64("amount", fees.Total()))

	return &models.PaymentIntent{
		ClientSecret: pi.ClientSecret,
		TrackingID:   pi.ID,
		Fees:         fees,
	}, nil
}

// CancelIntent releases a superseded authorization hold.
func (c *StripeIntentClient) CancelIntent(ctx context.Context, trackingID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if _, err := paymentintent.Cancel(trackingID, params); err != nil {
		return fmt.Errorf("failed to cancel payment intent %s: %w", trackingID, err)
	}
	c.logger.Info("Cancelled payment intent", zap.String("intent", trackingID))
	return nil
}
