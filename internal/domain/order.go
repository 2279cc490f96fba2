package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusPreOrdered OrderStatus = "pre-ordered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// Well-known order metadata keys written by the gateway and its
// compatibility integrations.
const (
	MetaPreOrderHasToken  = "_pre_orders_has_payment_token"
	MetaOrderPaymentToken = "_order_payment_token"
	MetaContainsPreOrder  = "_contains_pre_order"
	MetaChargeUponRelease = "_charge_upon_release"
	MetaContainsDeposit   = "_contains_deposit"
)

// OrderItem represents a single item in an order
type OrderItem struct {
	SKU      string
	Quantity int32
	Price    decimal.Decimal
}

// Order represents a customer order
type Order struct {
	ID            string
	CustomerID    string
	Items         []OrderItem
	TotalAmount   decimal.Decimal
	Status        OrderStatus
	Metadata      map[string]any
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrder creates a new order in pending status
func NewOrder(id, customerID string, items []OrderItem) (*Order, error) {
	if id == "" {
		return nil, fmt.Errorf("order ID cannot be empty")
	}
	if customerID == "" {
		return nil, fmt.Errorf("customer ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	total := decimal.NewFromInt(0)
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be greater than zero for SKU %s", item.SKU)
		}
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
	}

	now := time.Now()
	return &Order{
		ID:          id,
		CustomerID:  customerID,
		Items:       items,
		TotalAmount: total,
		Status:      OrderStatusPending,
		Metadata:    make(map[string]any),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsValid validates the order state
func (o *Order) IsValid() error {
	if o.ID == "" {
		return fmt.Errorf("order ID cannot be empty")
	}
	if o.CustomerID == "" {
		return fmt.Errorf("customer ID cannot be empty")
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	if o.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("total amount must be greater than zero")
	}
	return nil
}

// MarkPaid completes payment and moves the order to the paid state
func (o *Order) MarkPaid() {
	o.Status = OrderStatusCompleted
	o.UpdatedAt = time.Now()
}

// MarkFailed marks the order as failed with reason
func (o *Order) MarkFailed(reason string) {
	o.Status = OrderStatusFailed
	o.FailureReason = reason
	o.UpdatedAt = time.Now()
}

// MarkPreOrdered marks the order as awaiting its pre-order release
func (o *Order) MarkPreOrdered() {
	o.Status = OrderStatusPreOrdered
	o.UpdatedAt = time.Now()
}

// CanBePaid checks if payment can still be attempted for the order
func (o *Order) CanBePaid() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusFailed ||
		o.Status == OrderStatusPreOrdered
}

// SetMeta writes a metadata value against the order
func (o *Order) SetMeta(key string, value any) {
	if o.Metadata == nil {
		o.Metadata = make(map[string]any)
	}
	o.Metadata[key] = value
	o.UpdatedAt = time.Now()
}

// MetaFlag reads a boolean metadata flag; missing keys report false
func (o *Order) MetaFlag(key string) bool {
	v, ok := o.Metadata[key]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "1" || t == "true" || t == "yes"
	default:
		return false
	}
}

// PaymentToken returns the order token captured against the order, if any
func (o *Order) PaymentToken() (OrderToken, bool) {
	v, ok := o.Metadata[MetaOrderPaymentToken]
	if !ok {
		return OrderToken{}, false
	}
	tok, ok := v.(OrderToken)
	return tok, ok
}
