package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Youmanvi/dummygateway/internal/domain"
	"github.com/Youmanvi/dummygateway/internal/infrastructure/config"
	"github.com/Youmanvi/dummygateway/internal/infrastructure/observability"
	errs "github.com/Youmanvi/dummygateway/internal/pkg/errors"
	"github.com/Youmanvi/dummygateway/internal/policy"
)

const tracerName = "dummygateway"

// Shopper-facing failure messages. The renewal wording is distinct from
// the checkout wording.
const (
	CheckoutFailureMessage     = "Order payment failed. To make a successful payment using Dummy Payments, please review the gateway settings."
	SubscriptionFailureMessage = "Subscription payment failed. To make a successful payment using Dummy Payments, please review the gateway settings."
	TokenChargeFailureMessage  = "Payment failed."
)

// Gateway feature flags.
const (
	FeatureProducts              = "products"
	FeaturePreOrders             = "pre-orders"
	FeatureSubscriptions         = "subscriptions"
	FeatureSubscriptionCancel    = "subscription_cancellation"
	FeatureSubscriptionSuspend   = "subscription_suspension"
	FeatureSubscriptionReactiv   = "subscription_reactivation"
	FeatureSubscriptionAmount    = "subscription_amount_changes"
	FeatureSubscriptionDates     = "subscription_date_changes"
	FeatureMultipleSubscriptions = "multiple_subscriptions"
	FeatureTokenization          = "tokenization"
	FeatureDeposits              = "deposits"
	FeatureForcedTokenization    = "forced-tokenization"
)

// Deps contains the collaborators the gateway is wired with
type Deps struct {
	Settings    *config.GatewayConfig
	Orders      OrderStore
	Cart        Cart
	Tokens      TokenStore
	PreOrders   policy.PreOrderPolicy
	TokenPolicy policy.TokenRequirementPolicy
	Logger      *observability.Logger
	Metrics     *observability.Metrics
}

// Gateway simulates a payment processor: every decision is derived from
// the configured result setting instead of a payment network.
type Gateway struct {
	settings    *config.GatewayConfig
	orders      OrderStore
	cart        Cart
	tokens      TokenStore
	preOrders   policy.PreOrderPolicy
	tokenPolicy policy.TokenRequirementPolicy
	logger      *observability.Logger
	metrics     *observability.Metrics

	attachMu sync.Mutex
	attached bool
}

// New creates a dummy gateway. Absent optional collaborators fall back
// to no-op implementations.
func New(deps Deps) *Gateway {
	g := &Gateway{
		settings:    deps.Settings,
		orders:      deps.Orders,
		cart:        deps.Cart,
		tokens:      deps.Tokens,
		preOrders:   deps.PreOrders,
		tokenPolicy: deps.TokenPolicy,
		logger:      deps.Logger,
		metrics:     deps.Metrics,
	}
	if g.preOrders == nil {
		g.preOrders = policy.NoopPreOrders{}
	}
	if g.tokenPolicy == nil {
		g.tokenPolicy = policy.NoopTokenRequirements{}
	}
	if g.logger == nil {
		g.logger = observability.NopLogger()
	}
	return g
}

// ID returns the unique gateway id
func (g *Gateway) ID() string { return domain.GatewayID }

// Title returns the configured checkout title
func (g *Gateway) Title() string { return g.settings.Title }

// Description returns the configured checkout description
func (g *Gateway) Description() string { return g.settings.Description }

// Enabled reports whether the gateway is switched on
func (g *Gateway) Enabled() bool { return g.settings.Enabled }

// HideForNonAdminUsers reports whether the gateway offers itself only
// to privileged users; this gates registration visibility, never the
// payment decision
func (g *Gateway) HideForNonAdminUsers() bool { return g.settings.HideForNonAdminUsers }

// Supports returns the gateway feature set, extended with the
// tokenization-dependent features when the companion integrations are on
func (g *Gateway) Supports() []string {
	features := []string{
		FeaturePreOrders,
		FeatureProducts,
		FeatureSubscriptions,
		FeatureSubscriptionCancel,
		FeatureSubscriptionSuspend,
		FeatureSubscriptionReactiv,
		FeatureSubscriptionAmount,
		FeatureSubscriptionDates,
		FeatureMultipleSubscriptions,
	}
	if g.settings.Tokenization {
		features = append(features, FeatureTokenization)
		if g.settings.Deposits {
			features = append(features, FeatureDeposits)
		}
		if g.settings.ForcedTokenization {
			features = append(features, FeatureForcedTokenization)
		}
	}
	return features
}

// SupportsFeature reports whether the gateway supports a single feature
func (g *Gateway) SupportsFeature(feature string) bool {
	for _, f := range g.Supports() {
		if f == feature {
			return true
		}
	}
	return false
}

// outcome parses the live configured result; anything unrecognized is
// treated as failure
func (g *Gateway) outcome() domain.Outcome {
	out, err := domain.ParseOutcome(g.settings.Result)
	if err != nil {
		return domain.OutcomeFailure
	}
	return out
}

// CheckoutOptions carries the shopper's checkout-time selections
type CheckoutOptions struct {
	UserID string
	// SavedTokenID selects a stored payment method; its encoded outcome
	// overrides the configured result when the token belongs to UserID.
	SavedTokenID string
	// SavePaymentMethod requests issuing a new payment token.
	SavePaymentMethod bool
}

// PaymentResult is returned on a successful checkout payment
type PaymentResult struct {
	Redirect string
}

// ProcessPayment processes a checkout payment for the order and returns
// the thank-you redirect on success
func (g *Gateway) ProcessPayment(ctx context.Context, orderID string, opts CheckoutOptions) (*PaymentResult, error) {
	ctx, span := observability.GetTracer(tracerName).Start(ctx, "gateway.process_payment")
	defer span.End()
	start := time.Now()

	order, err := g.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanBePaid() {
		return nil, errs.NewInvalidError(errs.CodeOrderNotPayable,
			fmt.Sprintf("order %s cannot be paid in status %s", order.ID, order.Status), nil)
	}

	logger := g.logger.WithOrderID(order.ID)
	outcome := g.effectiveOutcome(ctx, opts)

	if outcome == domain.OutcomeSuccess {
		// Pre-orders charged upon release are not charged now; the order
		// is flagged as tokenized and handed to the pre-orders feature.
		if g.preOrders.OrderContainsPreOrder(order) && g.preOrders.ChargedUponRelease(order) {
			if err := g.orders.SetMetadata(ctx, order, domain.MetaPreOrderHasToken, "1"); err != nil {
				return nil, err
			}
			if err := g.preOrders.MarkAsPreOrdered(ctx, order); err != nil {
				return nil, err
			}
			logger.Info().Msg("order marked as pre-ordered")
		} else {
			if err := g.CaptureOrderToken(ctx, order); err != nil {
				return nil, err
			}
			if err := g.maybeSavePaymentMethod(ctx, order, opts); err != nil {
				return nil, err
			}
			if err := g.orders.MarkPaid(ctx, order); err != nil {
				return nil, err
			}
			logger.Info().Msg("payment completed")
		}

		if err := g.cart.Clear(ctx); err != nil {
			return nil, err
		}
		g.recordPayment(start, nil)
		return &PaymentResult{Redirect: g.orders.ReturnURL(order)}, nil
	}

	// Tokens are captured on the failure path too, so failure-result
	// token storage stays testable.
	if err := g.CaptureOrderToken(ctx, order); err != nil {
		return nil, err
	}
	if err := g.maybeSavePaymentMethod(ctx, order, opts); err != nil {
		return nil, err
	}
	if err := g.orders.MarkFailed(ctx, order, CheckoutFailureMessage); err != nil {
		return nil, err
	}

	declined := errs.NewDeclinedError(CheckoutFailureMessage)
	logger.WithError(declined).Warn().Msg("payment declined")
	g.recordPayment(start, declined)
	return nil, declined
}

// ProcessSubscriptionPayment processes a scheduled subscription renewal
// charge. The amount is carried for hook signature fidelity; the
// decision only reads configuration.
func (g *Gateway) ProcessSubscriptionPayment(ctx context.Context, amount decimal.Decimal, orderID string) error {
	ctx, span := observability.GetTracer(tracerName).Start(ctx, "gateway.process_subscription_payment")
	defer span.End()
	start := time.Now()

	order, err := g.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if g.outcome() == domain.OutcomeSuccess {
		if err := g.orders.MarkPaid(ctx, order); err != nil {
			return err
		}
		g.logger.WithOrderID(order.ID).Info().
			Str("amount", amount.String()).
			Msg("subscription payment completed")
		g.recordPayment(start, nil)
		return nil
	}

	if err := g.orders.MarkFailed(ctx, order, SubscriptionFailureMessage); err != nil {
		return err
	}
	g.logger.WithOrderID(order.ID).Warn().Msg("subscription payment declined")
	g.recordPayment(start, errs.NewDeclinedError(SubscriptionFailureMessage))
	return nil
}

// ProcessPreOrderReleasePayment charges a pre-order when it is released
func (g *Gateway) ProcessPreOrderReleasePayment(ctx context.Context, orderID string) error {
	ctx, span := observability.GetTracer(tracerName).Start(ctx, "gateway.process_pre_order_release_payment")
	defer span.End()
	start := time.Now()

	order, err := g.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if g.outcome() == domain.OutcomeSuccess {
		if err := g.orders.MarkPaid(ctx, order); err != nil {
			return err
		}
		g.logger.WithOrderID(order.ID).Info().Msg("pre-order release payment completed")
		g.recordPayment(start, nil)
		return nil
	}

	if err := g.orders.MarkFailed(ctx, order, CheckoutFailureMessage); err != nil {
		return err
	}
	g.logger.WithOrderID(order.ID).Warn().Msg("pre-order release payment declined")
	g.recordPayment(start, errs.NewDeclinedError(CheckoutFailureMessage))
	return nil
}

// ProcessOrderTokenPayment charges an order using a token previously
// captured against it. The decision is decoded from the token payload
// and is independent of the currently configured result.
func (g *Gateway) ProcessOrderTokenPayment(ctx context.Context, orderID string, token domain.OrderToken) error {
	ctx, span := observability.GetTracer(tracerName).Start(ctx, "gateway.process_order_token_payment")
	defer span.End()
	start := time.Now()

	order, err := g.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}

	// Anything the token does not decode to success is a failed charge,
	// undecodable values included.
	outcome, err := token.Outcome()
	if err != nil {
		outcome = domain.OutcomeFailure
	}

	if outcome == domain.OutcomeSuccess {
		if err := g.orders.MarkPaid(ctx, order); err != nil {
			return err
		}
		g.logger.WithOrderID(order.ID).Info().Msg("order token payment completed")
		g.recordPayment(start, nil)
		return nil
	}

	if err := g.orders.MarkFailed(ctx, order, TokenChargeFailureMessage); err != nil {
		return err
	}
	g.logger.WithOrderID(order.ID).Warn().Msg("order token payment declined")
	g.recordPayment(start, errs.NewDeclinedError(TokenChargeFailureMessage))
	return nil
}

// effectiveOutcome resolves the outcome for a checkout. A saved token
// owned by the current user overrides the configured result for this
// transaction only; an owner mismatch silently falls back.
func (g *Gateway) effectiveOutcome(ctx context.Context, opts CheckoutOptions) domain.Outcome {
	if opts.SavedTokenID == "" {
		return g.outcome()
	}

	token, err := g.tokens.Get(ctx, opts.SavedTokenID)
	if err != nil || token == nil {
		g.logger.Debug().Str("token_id", opts.SavedTokenID).Msg("saved token not found, using configured result")
		return g.outcome()
	}
	if token.UserID != opts.UserID {
		g.logger.Debug().Str("token_id", opts.SavedTokenID).Msg("saved token owner mismatch, using configured result")
		return g.outcome()
	}

	outcome, err := token.Outcome()
	if err != nil {
		g.logger.Debug().Str("token_id", opts.SavedTokenID).Msg("saved token undecodable, using configured result")
		return g.outcome()
	}
	return outcome
}

func (g *Gateway) recordPayment(start time.Time, err error) {
	if g.metrics != nil {
		g.metrics.RecordPayment(time.Since(start), err)
	}
}
