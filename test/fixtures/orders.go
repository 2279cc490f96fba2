package fixtures

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Youmanvi/dummygateway/internal/domain"
)

// CreateValidOrder creates a valid pending test order
func CreateValidOrder(customerID string) *domain.Order {
	items := []domain.OrderItem{
		{SKU: "ITEM-001", Quantity: 2, Price: decimal.NewFromFloat(29.99)},
		{SKU: "ITEM-002", Quantity: 1, Price: decimal.NewFromFloat(49.99)},
	}

	order, _ := domain.NewOrder(
		fmt.Sprintf("ORD-%d", time.Now().UnixNano()),
		customerID,
		items,
	)
	return order
}

// CreatePreOrder creates an order flagged as a pre-order charged upon
// release
func CreatePreOrder(customerID string) *domain.Order {
	order := CreateValidOrder(customerID)
	order.SetMeta(domain.MetaContainsPreOrder, "1")
	order.SetMeta(domain.MetaChargeUponRelease, "1")
	return order
}

// CreateDepositOrder creates an order containing a deposit item
func CreateDepositOrder(customerID string) *domain.Order {
	order := CreateValidOrder(customerID)
	order.SetMeta(domain.MetaContainsDeposit, "1")
	return order
}
