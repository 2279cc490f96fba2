package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/Youmanvi/dummygateway/internal/domain"
	"github.com/Youmanvi/dummygateway/internal/gateway"
	"github.com/Youmanvi/dummygateway/internal/hooks"
	"github.com/Youmanvi/dummygateway/internal/infrastructure/config"
	"github.com/Youmanvi/dummygateway/internal/infrastructure/observability"
	"github.com/Youmanvi/dummygateway/internal/policy"
	"github.com/Youmanvi/dummygateway/internal/registry"
	"github.com/Youmanvi/dummygateway/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		return
	}

	logger := observability.NewLogger(&cfg.Observability)
	metrics := observability.NewMetrics(nil)

	ctx := context.Background()
	tp, err := observability.InitializeTracing(ctx, &cfg.Observability, "dummygateway")
	if err != nil {
		logger.WithError(err).Error().Msg("failed to initialize tracing")
		return
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = observability.ShutdownTracing(shutdownCtx, tp)
	}()

	if cfg.Observability.MetricsEnabled {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Observability.MetricsPort)
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.WithError(err).Error().Msg("metrics server stopped")
			}
		}()
	}

	// Wire the collaborators: the demo uses in-memory orders and cart,
	// and either store backend for tokens.
	orders := store.NewMemoryOrderStore("https://shop.example/checkout")
	cart := store.NewMemoryCart(2)

	var tokens gateway.TokenStore
	switch cfg.Store.Type {
	case "sqlite":
		sqliteTokens, err := store.NewSQLiteTokenStore(cfg.Store.SQLiteFile)
		if err != nil {
			logger.WithError(err).Error().Msg("failed to open token store")
			return
		}
		defer sqliteTokens.Close()
		tokens = sqliteTokens
	default:
		tokens = store.NewMemoryTokenStore()
	}

	gw := gateway.New(gateway.Deps{
		Settings:    &cfg.Gateway,
		Orders:      orders,
		Cart:        cart,
		Tokens:      tokens,
		PreOrders:   policy.MetaPreOrders{},
		TokenPolicy: policy.MetaTokenRequirements{ForceStoredToken: cfg.Gateway.ForcedTokenization},
		Logger:      logger,
		Metrics:     metrics,
	})

	dispatcher := hooks.NewDispatcher(logger)
	gw.AttachHooks(dispatcher)

	gateways := registry.NewRegistry()
	gateways.Register(gw)

	shopper := registry.Actor{ID: "CUST-1001"}
	for _, available := range gateways.AvailableGateways(shopper) {
		logger.Info().Str("id", available.ID()).Str("title", available.Title()).Msg("gateway available at checkout")
	}

	// Demo checkout.
	order, err := domain.NewOrder("ORD-1001", shopper.ID, []domain.OrderItem{
		{SKU: "ITEM-001", Quantity: 1, Price: decimal.NewFromFloat(49.99)},
	})
	if err != nil {
		logger.WithError(err).Error().Msg("failed to create demo order")
		return
	}
	orders.Put(order)

	result, err := gw.ProcessPayment(ctx, order.ID, gateway.CheckoutOptions{
		UserID:            shopper.ID,
		SavePaymentMethod: true,
	})
	if err != nil {
		logger.WithError(err).WithOrderID(order.ID).Warn().Msg("checkout payment declined")
	} else {
		logger.WithOrderID(order.ID).Info().Str("redirect", result.Redirect).Msg("checkout payment succeeded")
	}

	// Demo subscription renewal through the host dispatcher.
	renewal, err := domain.NewOrder("ORD-1002", shopper.ID, []domain.OrderItem{
		{SKU: "SUB-001", Quantity: 1, Price: decimal.NewFromFloat(9.99)},
	})
	if err != nil {
		logger.WithError(err).Error().Msg("failed to create renewal order")
		return
	}
	orders.Put(renewal)

	err = dispatcher.Do(ctx, gateway.ActionScheduledSubscriptionPayment, gateway.SubscriptionPaymentPayload{
		Amount:  renewal.TotalAmount,
		OrderID: renewal.ID,
	})
	if err != nil {
		logger.WithError(err).WithOrderID(renewal.ID).Warn().Msg("subscription renewal declined")
	} else {
		logger.WithOrderID(renewal.ID).Info().Str("status", string(renewal.Status)).Msg("subscription renewal processed")
	}
}
