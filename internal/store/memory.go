// Package store provides reference implementations of the host
// collaborators the gateway depends on: order storage, token storage
// and the cart. The host system owns the real thing; these back the
// demo binary and the test suites.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Youmanvi/dummygateway/internal/domain"
	errs "github.com/Youmanvi/dummygateway/internal/pkg/errors"
)

// MemoryOrderStore keeps orders in memory
type MemoryOrderStore struct {
	mu        sync.RWMutex
	orders    map[string]*domain.Order
	returnURL string
}

// NewMemoryOrderStore creates an empty order store; returnURL is the
// base of the thank-you redirect
func NewMemoryOrderStore(returnURL string) *MemoryOrderStore {
	return &MemoryOrderStore{
		orders:    make(map[string]*domain.Order),
		returnURL: returnURL,
	}
}

// Put stores an order; the host would do this at order placement
func (s *MemoryOrderStore) Put(order *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order
}

// Get retrieves an order by id
func (s *MemoryOrderStore) Get(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, errs.NewNotFoundError(errs.CodeOrderNotFound, fmt.Sprintf("order %s not found", orderID))
	}
	return order, nil
}

// MarkPaid drives the order's payment-complete transition
func (s *MemoryOrderStore) MarkPaid(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.MarkPaid()
	return nil
}

// MarkFailed moves the order to failed with a reason
func (s *MemoryOrderStore) MarkFailed(_ context.Context, order *domain.Order, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.MarkFailed(reason)
	return nil
}

// SetMetadata persists a metadata value against the order
func (s *MemoryOrderStore) SetMetadata(_ context.Context, order *domain.Order, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.SetMeta(key, value)
	return nil
}

// ReturnURL returns the thank-you URL for the order
func (s *MemoryOrderStore) ReturnURL(order *domain.Order) string {
	return fmt.Sprintf("%s/order-received/%s", s.returnURL, order.ID)
}

// MemoryTokenStore keeps payment tokens in memory
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]*domain.PaymentToken
}

// NewMemoryTokenStore creates an empty token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens: make(map[string]*domain.PaymentToken),
	}
}

// Create persists a new token and assigns its id
func (s *MemoryTokenStore) Create(_ context.Context, token *domain.PaymentToken) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	stored := *token
	stored.ID = id
	s.tokens[id] = &stored
	return id, nil
}

// Get retrieves a token by id
func (s *MemoryTokenStore) Get(_ context.Context, tokenID string) (*domain.PaymentToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[tokenID]
	if !ok {
		return nil, errs.NewNotFoundError(errs.CodeTokenNotFound, fmt.Sprintf("token %s not found", tokenID))
	}
	copied := *token
	return &copied, nil
}

// ListByUser returns the user's stored tokens
func (s *MemoryTokenStore) ListByUser(_ context.Context, userID string) ([]*domain.PaymentToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tokens []*domain.PaymentToken
	for _, token := range s.tokens {
		if token.UserID == userID {
			copied := *token
			tokens = append(tokens, &copied)
		}
	}
	return tokens, nil
}

// Validate performs base token validation: the token must reference
// this store's gateway and carry an owner and a value
func (s *MemoryTokenStore) Validate(_ context.Context, token *domain.PaymentToken) (bool, error) {
	if token == nil {
		return false, nil
	}
	if token.GatewayID != domain.GatewayID || token.UserID == "" || token.Token == "" {
		return false, nil
	}
	return true, nil
}

// MemoryCart is an in-memory cart collaborator
type MemoryCart struct {
	mu    sync.Mutex
	items int
}

// NewMemoryCart creates a cart holding the given number of items
func NewMemoryCart(items int) *MemoryCart {
	return &MemoryCart{items: items}
}

// Clear empties the cart
func (c *MemoryCart) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = 0
	return nil
}

// Items returns the current item count
func (c *MemoryCart) Items() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}
