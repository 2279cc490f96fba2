package policy

import (
	"context"

	"github.com/Youmanvi/dummygateway/internal/domain"
)

// PreOrderPolicy answers pre-order questions about an order. When the
// pre-orders feature is absent, NoopPreOrders stands in and everything
// reports not applicable.
type PreOrderPolicy interface {
	OrderContainsPreOrder(order *domain.Order) bool
	ChargedUponRelease(order *domain.Order) bool
	MarkAsPreOrdered(ctx context.Context, order *domain.Order) error
}

// NoopPreOrders is the fallback policy used when pre-orders support is
// not installed
type NoopPreOrders struct{}

func (NoopPreOrders) OrderContainsPreOrder(*domain.Order) bool { return false }

func (NoopPreOrders) ChargedUponRelease(*domain.Order) bool { return false }

func (NoopPreOrders) MarkAsPreOrdered(context.Context, *domain.Order) error { return nil }

// MetaPreOrders decides pre-order questions from order metadata flags;
// this is the reference implementation used by tests and the demo
type MetaPreOrders struct{}

func (MetaPreOrders) OrderContainsPreOrder(order *domain.Order) bool {
	return order.MetaFlag(domain.MetaContainsPreOrder)
}

func (MetaPreOrders) ChargedUponRelease(order *domain.Order) bool {
	return order.MetaFlag(domain.MetaChargeUponRelease)
}

func (MetaPreOrders) MarkAsPreOrdered(_ context.Context, order *domain.Order) error {
	order.MarkPreOrdered()
	return nil
}
