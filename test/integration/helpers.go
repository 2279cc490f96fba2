package integration

import (
	"github.com/Youmanvi/dummygateway/internal/gateway"
	"github.com/Youmanvi/dummygateway/internal/hooks"
	"github.com/Youmanvi/dummygateway/internal/infrastructure/config"
	"github.com/Youmanvi/dummygateway/internal/infrastructure/observability"
	"github.com/Youmanvi/dummygateway/internal/policy"
	"github.com/Youmanvi/dummygateway/internal/registry"
	"github.com/Youmanvi/dummygateway/internal/store"
)

// TestHarness wires the gateway with in-memory collaborators the way
// the demo binary does
type TestHarness struct {
	Config     *config.Config
	Orders     *store.MemoryOrderStore
	Cart       *store.MemoryCart
	Tokens     *store.MemoryTokenStore
	Gateway    *gateway.Gateway
	Dispatcher *hooks.Dispatcher
	Registry   *registry.Registry
}

// NewTestHarness builds a fully wired harness with the given result
// setting
func NewTestHarness(result string) *TestHarness {
	cfg := config.DefaultConfig()
	cfg.Gateway.Result = result
	cfg.Gateway.Deposits = true
	cfg.Gateway.ForcedTokenization = true

	orders := store.NewMemoryOrderStore("https://shop.example/checkout")
	cart := store.NewMemoryCart(2)
	tokens := store.NewMemoryTokenStore()

	gw := gateway.New(gateway.Deps{
		Settings:    &cfg.Gateway,
		Orders:      orders,
		Cart:        cart,
		Tokens:      tokens,
		PreOrders:   policy.MetaPreOrders{},
		TokenPolicy: policy.MetaTokenRequirements{},
		Logger:      observability.NopLogger(),
	})

	dispatcher := hooks.NewDispatcher(observability.NopLogger())
	gw.AttachHooks(dispatcher)

	reg := registry.NewRegistry()
	reg.Register(gw)

	return &TestHarness{
		Config:     cfg,
		Orders:     orders,
		Cart:       cart,
		Tokens:     tokens,
		Gateway:    gw,
		Dispatcher: dispatcher,
		Registry:   reg,
	}
}
