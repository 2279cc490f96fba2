package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Youmanvi/dummygateway/internal/domain"
	errs "github.com/Youmanvi/dummygateway/internal/pkg/errors"
)

func newSQLiteStore(t *testing.T) *SQLiteTokenStore {
	t.Helper()
	s, err := NewSQLiteTokenStore(t.TempDir() + "/tokens.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteTokenStoreCreateAndGet(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	token := domain.NewPaymentToken("CUST-1", domain.OutcomeSuccess)
	id, err := s.Create(ctx, token)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, domain.GatewayID, stored.GatewayID)
	assert.Equal(t, "CUST-1", stored.UserID)
	assert.Equal(t, "dummy-success", stored.Token)
}

func TestSQLiteTokenStoreGetMissing(t *testing.T) {
	s := newSQLiteStore(t)

	_, err := s.Get(context.Background(), "no-such-token")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestSQLiteTokenStoreValidate(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	token := domain.NewPaymentToken("CUST-1", domain.OutcomeFailure)
	id, err := s.Create(ctx, token)
	require.NoError(t, err)
	token.ID = id

	ok, err := s.Validate(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Validate(ctx, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	foreign := &domain.PaymentToken{ID: id, GatewayID: "stripe", UserID: "CUST-1", Token: "tok"}
	ok, err = s.Validate(ctx, foreign)
	require.NoError(t, err)
	assert.False(t, ok)

	phantom := &domain.PaymentToken{ID: "missing", GatewayID: domain.GatewayID, UserID: "CUST-1", Token: "dummy-success"}
	ok, err = s.Validate(ctx, phantom)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteTokenStoreListByUser(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.Create(ctx, domain.NewPaymentToken("CUST-1", domain.OutcomeSuccess))
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, domain.NewPaymentToken("CUST-2", domain.OutcomeFailure))
	require.NoError(t, err)

	tokens, err := s.ListByUser(ctx, "CUST-1")
	require.NoError(t, err)
	assert.Len(t, tokens, 3)
}

func TestMemoryTokenStoreRoundTrip(t *testing.T) {
	s := NewMemoryTokenStore()
	ctx := context.Background()

	token := domain.NewPaymentToken("CUST-1", domain.OutcomeSuccess)
	id, err := s.Create(ctx, token)
	require.NoError(t, err)

	stored, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, token.Token, stored.Token)

	_, err = s.Get(ctx, "missing")
	assert.True(t, errs.IsNotFound(err))
}

func TestMemoryOrderStore(t *testing.T) {
	s := NewMemoryOrderStore("https://shop.example/checkout")
	ctx := context.Background()

	_, err := s.Get(ctx, "ORD-1")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	order := &domain.Order{ID: "ORD-1", CustomerID: "CUST-1", Status: domain.OrderStatusPending}
	s.Put(order)

	got, err := s.Get(ctx, "ORD-1")
	require.NoError(t, err)

	require.NoError(t, s.MarkPaid(ctx, got))
	assert.Equal(t, domain.OrderStatusCompleted, got.Status)

	require.NoError(t, s.SetMetadata(ctx, got, "key", "value"))
	assert.Equal(t, "value", got.Metadata["key"])

	assert.Equal(t, "https://shop.example/checkout/order-received/ORD-1", s.ReturnURL(got))
}
