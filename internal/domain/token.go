package domain

import (
	"fmt"
	"time"
)

// GatewayID is the unique id of the dummy gateway
const GatewayID = "dummy"

// Outcome represents the deterministic payment verdict the gateway
// always produces
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// outcomePrefix tags encoded outcomes; its length is part of the token
// format and must stay fixed.
const outcomePrefix = "dummy-"

// ParseOutcome parses an outcome from its configuration string
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeSuccess, OutcomeFailure:
		return Outcome(s), nil
	default:
		return "", fmt.Errorf("unknown payment outcome %q", s)
	}
}

// EncodeOutcome serializes an outcome into its token form, e.g.
// "dummy-success"
func EncodeOutcome(o Outcome) string {
	return outcomePrefix + string(o)
}

// DecodeOutcome recovers the outcome carried by an encoded token value
func DecodeOutcome(s string) (Outcome, error) {
	if len(s) <= len(outcomePrefix) || s[:len(outcomePrefix)] != outcomePrefix {
		return "", fmt.Errorf("malformed token value %q", s)
	}
	return ParseOutcome(s[len(outcomePrefix):])
}

// OrderToken is the token payload captured against an order's metadata
// when a deposit or forced-tokenization policy requires a stored token
type OrderToken struct {
	Gateway string
	Token   string
}

// Outcome decodes the payment outcome the order token carries
func (t OrderToken) Outcome() (Outcome, error) {
	return DecodeOutcome(t.Token)
}

// PaymentToken is a reusable stored payment method. The token value is
// an immutable snapshot of the outcome configured at creation time.
type PaymentToken struct {
	ID        string
	GatewayID string
	UserID    string
	Token     string
	CreatedAt time.Time
}

// NewPaymentToken creates an unsaved payment token encoding the given
// outcome; the store assigns the ID on creation
func NewPaymentToken(userID string, outcome Outcome) *PaymentToken {
	return &PaymentToken{
		GatewayID: GatewayID,
		UserID:    userID,
		Token:     EncodeOutcome(outcome),
		CreatedAt: time.Now(),
	}
}

// Outcome decodes the payment outcome recorded in the token
func (t *PaymentToken) Outcome() (Outcome, error) {
	return DecodeOutcome(t.Token)
}

// DisplayName renders the token label shown on stored payment methods
func (t *PaymentToken) DisplayName() string {
	outcome, err := t.Outcome()
	if err != nil {
		outcome = ""
	}
	if t.ID == "" {
		return fmt.Sprintf("Dummy Payment Token (%s)", outcome)
	}
	return fmt.Sprintf("Dummy Payment Token #%s (%s)", t.ID, outcome)
}
