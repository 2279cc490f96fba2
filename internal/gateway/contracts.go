package gateway

import (
	"context"

	"github.com/Youmanvi/dummygateway/internal/domain"
)

// OrderStore is the host order-management collaborator. It owns the
// full order lifecycle; the gateway only reads orders and drives the
// paid/failed transitions through it.
type OrderStore interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	MarkPaid(ctx context.Context, order *domain.Order) error
	MarkFailed(ctx context.Context, order *domain.Order, reason string) error
	SetMetadata(ctx context.Context, order *domain.Order, key string, value any) error
	ReturnURL(order *domain.Order) string
}

// Cart is the host cart collaborator
type Cart interface {
	Clear(ctx context.Context) error
}

// TokenStore is the host token-storage collaborator
type TokenStore interface {
	Create(ctx context.Context, token *domain.PaymentToken) (string, error)
	Get(ctx context.Context, tokenID string) (*domain.PaymentToken, error)
	// Validate performs the host's base token validation; gateway-level
	// checks are layered on top of it.
	Validate(ctx context.Context, token *domain.PaymentToken) (bool, error)
}
