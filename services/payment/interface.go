package payment

import (
	"context"

	"careflow/models"
)

// IntentClient is the processor-facing contract the orchestrator depends on:
// a create call returning an opaque client secret plus a tracking identifier,
// and a best-effort cancel for superseded authorizations.
type IntentClient interface {
	CreateIntent(ctx context.Context, fees models.VisitFees, metadata map[string]string) (*models.PaymentIntent, error)
	CancelIntent(ctx context.Context, trackingID string) error
}
