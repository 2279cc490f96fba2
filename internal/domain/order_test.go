package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []OrderItem {
	return []OrderItem{
		{SKU: "ITEM-001", Quantity: 2, Price: decimal.NewFromFloat(29.99)},
		{SKU: "ITEM-002", Quantity: 1, Price: decimal.NewFromFloat(49.99)},
	}
}

func TestNewOrderComputesTotal(t *testing.T) {
	order, err := NewOrder("ORD-1", "CUST-1", testItems())
	require.NoError(t, err)

	assert.Equal(t, OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(109.97)))
	require.NoError(t, order.IsValid())
}

func TestNewOrderValidation(t *testing.T) {
	_, err := NewOrder("", "CUST-1", testItems())
	assert.Error(t, err)

	_, err = NewOrder("ORD-1", "", testItems())
	assert.Error(t, err)

	_, err = NewOrder("ORD-1", "CUST-1", nil)
	assert.Error(t, err)

	_, err = NewOrder("ORD-1", "CUST-1", []OrderItem{{SKU: "X", Quantity: 0}})
	assert.Error(t, err)
}

func TestOrderTransitions(t *testing.T) {
	order, err := NewOrder("ORD-1", "CUST-1", testItems())
	require.NoError(t, err)

	order.MarkPaid()
	assert.Equal(t, OrderStatusCompleted, order.Status)

	order.MarkFailed("no funds")
	assert.Equal(t, OrderStatusFailed, order.Status)
	assert.Equal(t, "no funds", order.FailureReason)

	order.MarkPreOrdered()
	assert.Equal(t, OrderStatusPreOrdered, order.Status)
}

func TestOrderMetadata(t *testing.T) {
	order, err := NewOrder("ORD-1", "CUST-1", testItems())
	require.NoError(t, err)

	assert.False(t, order.MetaFlag(MetaContainsPreOrder))

	order.SetMeta(MetaContainsPreOrder, "1")
	assert.True(t, order.MetaFlag(MetaContainsPreOrder))

	order.SetMeta(MetaChargeUponRelease, true)
	assert.True(t, order.MetaFlag(MetaChargeUponRelease))

	_, ok := order.PaymentToken()
	assert.False(t, ok)

	token := OrderToken{Gateway: GatewayID, Token: EncodeOutcome(OutcomeSuccess)}
	order.SetMeta(MetaOrderPaymentToken, token)

	stored, ok := order.PaymentToken()
	require.True(t, ok)
	assert.Equal(t, token, stored)
}
