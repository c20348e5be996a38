// Package payment wraps the hosted payment processor. The engines only
// ever move money through the Gateway interface, keyed by the payment
// intent captured at checkout.
package payment

import (
	"context"
	"fmt"
)

// Refund is the gateway's record of a completed refund.
type Refund struct {
	ID          string
	AmountPence int64
}

// Gateway issues refunds against a previously captured payment intent.
// amountPence <= 0 requests a full refund. The idempotency key must be
// deterministic per logical refund so retries and lost races cannot
// move money twice.
type Gateway interface {
	Refund(ctx context.Context, paymentIntentID string, amountPence int64, idempotencyKey string) (*Refund, error)
}

// DepositRefundKey is the idempotency key for the single deposit refund
// a rental may ever receive, whichever path (admin resolve or
// auto-release) issues it.
func DepositRefundKey(rentalID int64) string {
	return fmt.Sprintf("deposit-refund-%d", rentalID)
}

// DeclineRefundKey is the idempotency key for the full refund issued
// when a paid pending rental is declined.
func DeclineRefundKey(rentalID int64) string {
	return fmt.Sprintf("decline-refund-%d", rentalID)
}
