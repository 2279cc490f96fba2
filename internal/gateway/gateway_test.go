package gateway

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Youmanvi/dummygateway/internal/domain"
	"github.com/Youmanvi/dummygateway/internal/infrastructure/config"
	errs "github.com/Youmanvi/dummygateway/internal/pkg/errors"
	"github.com/Youmanvi/dummygateway/internal/policy"
	"github.com/Youmanvi/dummygateway/internal/store"
)

type testEnv struct {
	cfg    *config.GatewayConfig
	orders *store.MemoryOrderStore
	cart   *store.MemoryCart
	tokens *store.MemoryTokenStore
	gw     *Gateway
}

func newTestEnv(t *testing.T, result string) *testEnv {
	t.Helper()

	cfg := &config.DefaultConfig().Gateway
	cfg.Result = result

	orders := store.NewMemoryOrderStore("https://shop.example/checkout")
	cart := store.NewMemoryCart(3)
	tokens := store.NewMemoryTokenStore()

	gw := New(Deps{
		Settings:    cfg,
		Orders:      orders,
		Cart:        cart,
		Tokens:      tokens,
		PreOrders:   policy.MetaPreOrders{},
		TokenPolicy: policy.MetaTokenRequirements{},
	})

	return &testEnv{cfg: cfg, orders: orders, cart: cart, tokens: tokens, gw: gw}
}

func (e *testEnv) newOrder(t *testing.T, id string) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(id, "CUST-1", []domain.OrderItem{
		{SKU: "ITEM-001", Quantity: 1, Price: decimal.NewFromFloat(49.99)},
	})
	require.NoError(t, err)
	e.orders.Put(order)
	return order
}

func TestProcessPaymentSuccess(t *testing.T) {
	env := newTestEnv(t, "success")
	order := env.newOrder(t, "ORD-1")

	result, err := env.gw.ProcessPayment(context.Background(), order.ID, CheckoutOptions{UserID: "CUST-1"})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusCompleted, order.Status)
	assert.Equal(t, 0, env.cart.Items())
	assert.Equal(t, env.orders.ReturnURL(order), result.Redirect)
}

func TestProcessPaymentFailure(t *testing.T) {
	env := newTestEnv(t, "failure")
	order := env.newOrder(t, "ORD-1")

	result, err := env.gw.ProcessPayment(context.Background(), order.ID, CheckoutOptions{UserID: "CUST-1"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errs.IsDeclined(err))

	assert.Equal(t, domain.OrderStatusFailed, order.Status)
	assert.Equal(t, CheckoutFailureMessage, order.FailureReason)
	assert.NotZero(t, env.cart.Items(), "cart must not be cleared on failure")
}

func TestProcessPaymentUnknownOrder(t *testing.T) {
	env := newTestEnv(t, "success")

	_, err := env.gw.ProcessPayment(context.Background(), "ORD-MISSING", CheckoutOptions{UserID: "CUST-1"})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestProcessPaymentSavedTokenOverridesResult(t *testing.T) {
	env := newTestEnv(t, "success")
	issued, err := env.gw.IssuePaymentToken(context.Background(), "CUST-1")
	require.NoError(t, err)

	// Flip the configured result; the saved token still decodes to the
	// outcome captured at issue time.
	env.cfg.Result = "failure"
	order := env.newOrder(t, "ORD-1")

	result, err := env.gw.ProcessPayment(context.Background(), order.ID, CheckoutOptions{
		UserID:       "CUST-1",
		SavedTokenID: issued.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, order.Status)
	assert.NotEmpty(t, result.Redirect)
}

func TestProcessPaymentSavedTokenOwnerMismatch(t *testing.T) {
	env := newTestEnv(t, "success")
	issued, err := env.gw.IssuePaymentToken(context.Background(), "CUST-OTHER")
	require.NoError(t, err)

	env.cfg.Result = "failure"
	order := env.newOrder(t, "ORD-1")

	// The mismatched token is silently ignored; the configured failure
	// result applies.
	_, err = env.gw.ProcessPayment(context.Background(), order.ID, CheckoutOptions{
		UserID:       "CUST-1",
		SavedTokenID: issued.ID,
	})
	require.Error(t, err)
	assert.True(t, errs.IsDeclined(err))
	assert.Equal(t, domain.OrderStatusFailed, order.Status)
}

func TestProcessPaymentPreOrderChargedUponRelease(t *testing.T) {
	env := newTestEnv(t, "success")
	order := env.newOrder(t, "ORD-1")
	order.SetMeta(domain.MetaContainsPreOrder, "1")
	order.SetMeta(domain.MetaChargeUponRelease, "1")

	result, err := env.gw.ProcessPayment(context.Background(), order.ID, CheckoutOptions{UserID: "CUST-1"})
	require.NoError(t, err)

	// Not charged now: handed off to the pre-orders feature instead.
	assert.Equal(t, domain.OrderStatusPreOrdered, order.Status)
	assert.True(t, order.MetaFlag(domain.MetaPreOrderHasToken))
	assert.Equal(t, 0, env.cart.Items())
	assert.NotEmpty(t, result.Redirect)
}

func TestProcessSubscriptionPaymentSuccess(t *testing.T) {
	env := newTestEnv(t, "success")
	order := env.newOrder(t, "ORD-1")

	err := env.gw.ProcessSubscriptionPayment(context.Background(), decimal.NewFromFloat(9.99), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, order.Status)
}

func TestProcessSubscriptionPaymentFailure(t *testing.T) {
	env := newTestEnv(t, "failure")
	order := env.newOrder(t, "ORD-1")

	// The renewal hook reports nothing back to the host; the failure
	// lands on the order.
	err := env.gw.ProcessSubscriptionPayment(context.Background(), decimal.NewFromFloat(9.99), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusFailed, order.Status)
	assert.Equal(t, SubscriptionFailureMessage, order.FailureReason)
	assert.NotEqual(t, CheckoutFailureMessage, order.FailureReason)
}

func TestProcessPreOrderReleasePayment(t *testing.T) {
	env := newTestEnv(t, "success")
	order := env.newOrder(t, "ORD-1")
	order.MarkPreOrdered()

	require.NoError(t, env.gw.ProcessPreOrderReleasePayment(context.Background(), order.ID))
	assert.Equal(t, domain.OrderStatusCompleted, order.Status)

	env.cfg.Result = "failure"
	released := env.newOrder(t, "ORD-2")

	require.NoError(t, env.gw.ProcessPreOrderReleasePayment(context.Background(), released.ID))
	assert.Equal(t, domain.OrderStatusFailed, released.Status)
	assert.Equal(t, CheckoutFailureMessage, released.FailureReason)
}

func TestProcessOrderTokenPaymentIgnoresCurrentResult(t *testing.T) {
	env := newTestEnv(t, "failure")
	order := env.newOrder(t, "ORD-1")

	token := domain.OrderToken{Gateway: domain.GatewayID, Token: "dummy-success"}
	err := env.gw.ProcessOrderTokenPayment(context.Background(), order.ID, token)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, order.Status)
}

func TestProcessOrderTokenPaymentFailureToken(t *testing.T) {
	env := newTestEnv(t, "success")
	order := env.newOrder(t, "ORD-1")

	token := domain.OrderToken{Gateway: domain.GatewayID, Token: "dummy-failure"}
	err := env.gw.ProcessOrderTokenPayment(context.Background(), order.ID, token)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusFailed, order.Status)
	assert.Equal(t, TokenChargeFailureMessage, order.FailureReason)
}

func TestProcessOrderTokenPaymentMalformedToken(t *testing.T) {
	env := newTestEnv(t, "success")
	order := env.newOrder(t, "ORD-1")

	// A token value that does not decode to success charges as a failure.
	token := domain.OrderToken{Gateway: domain.GatewayID, Token: "garbage"}
	err := env.gw.ProcessOrderTokenPayment(context.Background(), order.ID, token)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusFailed, order.Status)
	assert.Equal(t, TokenChargeFailureMessage, order.FailureReason)
}

func TestProcessPaymentRejectsCompletedOrder(t *testing.T) {
	env := newTestEnv(t, "success")
	order := env.newOrder(t, "ORD-1")
	order.MarkPaid()

	_, err := env.gw.ProcessPayment(context.Background(), order.ID, CheckoutOptions{UserID: "CUST-1"})
	require.Error(t, err)
	assert.False(t, errs.IsDeclined(err))
	assert.Equal(t, domain.OrderStatusCompleted, order.Status)
}

func TestSupports(t *testing.T) {
	env := newTestEnv(t, "success")

	assert.True(t, env.gw.SupportsFeature(FeatureProducts))
	assert.True(t, env.gw.SupportsFeature(FeatureSubscriptions))
	assert.True(t, env.gw.SupportsFeature(FeaturePreOrders))
	assert.True(t, env.gw.SupportsFeature(FeatureTokenization))
	assert.False(t, env.gw.SupportsFeature(FeatureDeposits))

	env.cfg.Deposits = true
	assert.True(t, env.gw.SupportsFeature(FeatureDeposits))

	env.cfg.Tokenization = false
	assert.False(t, env.gw.SupportsFeature(FeatureTokenization))
	assert.False(t, env.gw.SupportsFeature(FeatureDeposits))
}
