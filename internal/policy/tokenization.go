package policy

import (
	"github.com/Youmanvi/dummygateway/internal/domain"
)

// TokenRequirementPolicy decides whether an order needs a token stored
// against it, and whether the shopper must save a payment method. When
// neither the deposits nor the forced-tokenization feature is present,
// NoopTokenRequirements stands in.
type TokenRequirementPolicy interface {
	OrderContainsDeposit(order *domain.Order) bool
	OrderRequiresStoredToken(order *domain.Order) bool
	OrderRequiresUserPaymentMethod(order *domain.Order) bool
}

// NoopTokenRequirements is the fallback policy used when no companion
// tokenization feature is installed
type NoopTokenRequirements struct{}

func (NoopTokenRequirements) OrderContainsDeposit(*domain.Order) bool { return false }

func (NoopTokenRequirements) OrderRequiresStoredToken(*domain.Order) bool { return false }

func (NoopTokenRequirements) OrderRequiresUserPaymentMethod(*domain.Order) bool { return false }

// MetaTokenRequirements derives token requirements from order metadata.
// ForceStoredToken mirrors a site-wide forced-tokenization feature;
// ForceUserPaymentMethod additionally requires the shopper to save a
// reusable payment method.
type MetaTokenRequirements struct {
	ForceStoredToken       bool
	ForceUserPaymentMethod bool
}

func (p MetaTokenRequirements) OrderContainsDeposit(order *domain.Order) bool {
	return order.MetaFlag(domain.MetaContainsDeposit)
}

func (p MetaTokenRequirements) OrderRequiresStoredToken(order *domain.Order) bool {
	return p.ForceStoredToken || p.OrderContainsDeposit(order)
}

func (p MetaTokenRequirements) OrderRequiresUserPaymentMethod(order *domain.Order) bool {
	return p.ForceUserPaymentMethod
}
