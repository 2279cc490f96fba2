package gateway

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Youmanvi/dummygateway/internal/domain"
	"github.com/Youmanvi/dummygateway/internal/hooks"
	errs "github.com/Youmanvi/dummygateway/internal/pkg/errors"
)

// handlerTimeout bounds a single hook handler execution.
const handlerTimeout = 30 * time.Second

// Host action names the gateway attaches handlers to.
const (
	ActionScheduledSubscriptionPayment = "scheduled_subscription_payment_" + domain.GatewayID
	ActionPreOrderReleasePayment       = "pre_orders_process_pre_order_completion_payment_" + domain.GatewayID
	ActionDepositsChargeOrderToken     = "deposits_" + domain.GatewayID + "_charge_order_token"
	ActionTokenizationChargeOrderToken = "checkout_tokenization_" + domain.GatewayID + "_charge_order_token"
)

// SubscriptionPaymentPayload is dispatched by the subscriptions feature
// on scheduled renewals
type SubscriptionPaymentPayload struct {
	Amount  decimal.Decimal
	OrderID string
}

// PreOrderReleasePayload is dispatched by the pre-orders feature when a
// charged-upon-release order ships
type PreOrderReleasePayload struct {
	OrderID string
}

// OrderTokenChargePayload is dispatched by the deposits and forced
// tokenization features to charge an order via its captured token
type OrderTokenChargePayload struct {
	OrderID string
	Token   domain.OrderToken
}

// AttachHooks registers the gateway's handlers on the host dispatcher.
// Attaching is idempotent per gateway instance: re-attaching registers
// nothing new. The host wires a single gateway instance per process.
func (g *Gateway) AttachHooks(d *hooks.Dispatcher) {
	g.attachMu.Lock()
	defer g.attachMu.Unlock()
	if g.attached {
		return
	}
	g.attached = true

	// WithRecover sits innermost so it shares the goroutine the timeout
	// middleware runs the handler on.
	attach := func(action string, handler hooks.Handler) {
		d.On(action, hooks.Chain(handler,
			hooks.WithLogging(g.logger, action),
			hooks.WithMetrics(g.metrics),
			hooks.WithTimeout(handlerTimeout),
			hooks.WithRecover(),
		))
	}

	attach(ActionScheduledSubscriptionPayment, g.handleSubscriptionPayment)
	attach(ActionPreOrderReleasePayment, g.handlePreOrderRelease)

	if g.SupportsFeature(FeatureDeposits) {
		attach(ActionDepositsChargeOrderToken, g.handleOrderTokenCharge)
	}
	if g.SupportsFeature(FeatureForcedTokenization) {
		attach(ActionTokenizationChargeOrderToken, g.handleOrderTokenCharge)
	}
}

func (g *Gateway) handleSubscriptionPayment(ctx context.Context, payload any) error {
	p, ok := payload.(SubscriptionPaymentPayload)
	if !ok {
		return errs.NewInvalidError(errs.CodeInvalidPayload, "unexpected subscription payment payload", nil)
	}
	return g.ProcessSubscriptionPayment(ctx, p.Amount, p.OrderID)
}

func (g *Gateway) handlePreOrderRelease(ctx context.Context, payload any) error {
	p, ok := payload.(PreOrderReleasePayload)
	if !ok {
		return errs.NewInvalidError(errs.CodeInvalidPayload, "unexpected pre-order release payload", nil)
	}
	return g.ProcessPreOrderReleasePayment(ctx, p.OrderID)
}

func (g *Gateway) handleOrderTokenCharge(ctx context.Context, payload any) error {
	p, ok := payload.(OrderTokenChargePayload)
	if !ok {
		return errs.NewInvalidError(errs.CodeInvalidPayload, "unexpected order token charge payload", nil)
	}
	return g.ProcessOrderTokenPayment(ctx, p.OrderID, p.Token)
}
