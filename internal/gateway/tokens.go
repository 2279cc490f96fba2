package gateway

import (
	"context"

	"github.com/Youmanvi/dummygateway/internal/domain"
)

// CaptureOrderToken stores a token payload against the order metadata
// when the active integrations require one. The deposits integration
// only captures for a succeeding gateway; forced tokenization captures
// on both outcomes so failure-result tokens stay testable.
func (g *Gateway) CaptureOrderToken(ctx context.Context, order *domain.Order) error {
	if !g.settings.Tokenization {
		return nil
	}

	forced := g.settings.ForcedTokenization && g.tokenPolicy.OrderRequiresStoredToken(order)
	deposit := g.settings.Deposits && g.tokenPolicy.OrderContainsDeposit(order)
	if !forced && !deposit {
		return nil
	}
	if !forced && g.outcome() != domain.OutcomeSuccess {
		return nil
	}

	// First-write-wins unless the overwrite capture policy is selected.
	if _, ok := order.PaymentToken(); ok && !g.settings.TokenCaptureOverwrite {
		return nil
	}

	token := domain.OrderToken{
		Gateway: g.ID(),
		Token:   domain.EncodeOutcome(g.outcome()),
	}
	if err := g.orders.SetMetadata(ctx, order, domain.MetaOrderPaymentToken, token); err != nil {
		return err
	}

	g.logger.WithOrderID(order.ID).Debug().Str("token", token.Token).Msg("order token captured")
	if g.metrics != nil {
		g.metrics.OrderTokensCaptured.Inc()
	}
	return nil
}

// IssuePaymentToken creates and persists a new reusable payment token
// for the user, encoding the currently configured result
func (g *Gateway) IssuePaymentToken(ctx context.Context, userID string) (*domain.PaymentToken, error) {
	token := domain.NewPaymentToken(userID, g.outcome())

	id, err := g.tokens.Create(ctx, token)
	if err != nil {
		return nil, err
	}
	token.ID = id

	g.logger.Debug().Str("token_id", id).Str("user_id", userID).Msg("payment token issued")
	if g.metrics != nil {
		g.metrics.TokensIssued.Inc()
	}
	return token, nil
}

// maybeSavePaymentMethod issues a new payment token when the shopper
// opted in or the tokenization policy requires a saved method
func (g *Gateway) maybeSavePaymentMethod(ctx context.Context, order *domain.Order, opts CheckoutOptions) error {
	if !g.settings.Tokenization {
		return nil
	}
	if !opts.SavePaymentMethod && !g.tokenPolicy.OrderRequiresUserPaymentMethod(order) {
		return nil
	}
	_, err := g.IssuePaymentToken(ctx, opts.UserID)
	return err
}

// ValidateToken re-derives token validity from live configuration:
// a stored token becomes unusable as soon as the gateway is disabled,
// tokenization is switched off, or the configured result is failure.
func (g *Gateway) ValidateToken(ctx context.Context, token *domain.PaymentToken) bool {
	valid := g.validateToken(ctx, token)
	if !valid && g.metrics != nil {
		g.metrics.TokenValidationFails.Inc()
	}
	return valid
}

func (g *Gateway) validateToken(ctx context.Context, token *domain.PaymentToken) bool {
	ok, err := g.tokens.Validate(ctx, token)
	if err != nil || !ok {
		return false
	}
	if !g.settings.Enabled {
		return false
	}
	if !g.SupportsFeature(FeatureTokenization) {
		return false
	}
	if g.outcome() != domain.OutcomeSuccess {
		return false
	}
	return true
}
