// Package registry holds the host-side list of available payment
// gateways and applies checkout visibility rules at registration time.
package registry

import (
	"sync"
)

// Actor identifies who is looking at the checkout
type Actor struct {
	ID    string
	Admin bool
}

// PaymentGateway is the surface the registry needs from a gateway
type PaymentGateway interface {
	ID() string
	Title() string
	Enabled() bool
	HideForNonAdminUsers() bool
}

// Registry is the host's gateway list
type Registry struct {
	mu       sync.RWMutex
	order    []string
	gateways map[string]PaymentGateway
}

// NewRegistry creates an empty gateway registry
func NewRegistry() *Registry {
	return &Registry{
		gateways: make(map[string]PaymentGateway),
	}
}

// Register adds a gateway to the registry; re-registering the same id
// replaces the previous instance
func (r *Registry) Register(gw PaymentGateway) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.gateways[gw.ID()]; !exists {
		r.order = append(r.order, gw.ID())
	}
	r.gateways[gw.ID()] = gw
}

// Get returns a registered gateway by id
func (r *Registry) Get(id string) (PaymentGateway, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gw, ok := r.gateways[id]
	return gw, ok
}

// AvailableGateways returns the gateways offered to the given actor.
// Visibility is decided here, at the registration boundary; payment
// decision logic never consults it.
func (r *Registry) AvailableGateways(actor Actor) []PaymentGateway {
	r.mu.RLock()
	defer r.mu.RUnlock()

	available := make([]PaymentGateway, 0, len(r.order))
	for _, id := range r.order {
		gw := r.gateways[id]
		if !gw.Enabled() {
			continue
		}
		if gw.HideForNonAdminUsers() && !actor.Admin {
			continue
		}
		available = append(available, gw)
	}
	return available
}
