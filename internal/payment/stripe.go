package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"toolshare-backend/internal/logger"
)

// StripeGateway moves money through Stripe's refund API.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(apiKey string) *StripeGateway {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) Refund(ctx context.Context, paymentIntentID string, amountPence int64, idempotencyKey string) (*Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Context = ctx
	params.SetIdempotencyKey(idempotencyKey)
	if amountPence > 0 {
		params.Amount = stripe.Int64(amountPence)
	}

	logger.ExternalServiceCall("stripe", "refund", "payment_intent", paymentIntentID, "amount_pence", amountPence)
	r, err := g.api.Refunds.New(params)
	logger.ExternalServiceResult("stripe", "refund", err, "payment_intent", paymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("stripe refund failed for %s: %w", paymentIntentID, err)
	}

	return &Refund{ID: r.ID, AmountPence: r.Amount}, nil
}
