// Package hooks is a small in-process stand-in for the host framework's
// action dispatch: collaborating features fire named actions, and the
// gateway attaches handlers to the ones it owns.
package hooks

import (
	"context"
	"sync"

	"github.com/Youmanvi/dummygateway/internal/infrastructure/observability"
)

// Handler handles a dispatched action payload
type Handler func(ctx context.Context, payload any) error

// Dispatcher routes named host actions to registered handlers
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *observability.Logger
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher(logger *observability.Logger) *Dispatcher {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Dispatcher{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// On registers a handler for an action
func (d *Dispatcher) On(action string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[action] = append(d.handlers[action], handler)
}

// HasHandlers reports whether any handler is registered for the action
func (d *Dispatcher) HasHandlers(action string) bool {
	return d.HandlerCount(action) > 0
}

// HandlerCount returns the number of handlers registered for the action
func (d *Dispatcher) HandlerCount(action string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[action])
}

// Do fires an action. Handlers run synchronously in registration order;
// the first error stops dispatch and is returned as-is.
func (d *Dispatcher) Do(ctx context.Context, action string, payload any) error {
	d.mu.RLock()
	handlers := d.handlers[action]
	d.mu.RUnlock()

	if len(handlers) == 0 {
		d.logger.WithAction(action).Debug().Msg("no handlers for action")
		return nil
	}

	for _, handler := range handlers {
		if err := handler(ctx, payload); err != nil {
			return err
		}
	}
	return nil
}
