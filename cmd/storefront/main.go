package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stylekart/internal/api"
	"stylekart/internal/catalog"
	"stylekart/internal/config"
	"stylekart/internal/money"
	"stylekart/internal/session"
	"stylekart/internal/storage"
	"stylekart/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting stylekart storefront")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize persistent state
	st, err := storage.NewFileStore(cfg.State.Dir, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize state store: %w", err)
	}

	// Initialize stores
	currency := store.NewCurrencyStore(st, money.Currency(cfg.Locale.Currency), logger)
	language := store.NewLanguageStore(st, cfg.Locale.Language, logger)
	cart := store.NewCartStore(st, currency, logger)
	guest := store.NewGuestCartStore(st, currency, logger)
	wishlist := store.NewWishlistStore(st, logger)
	compare := store.NewCompareStore(logger)

	// Surface store notifications on the console the way the web UI toasts
	// them
	for _, s := range []interface{ Subscribe(func(store.Event)) }{cart, guest, wishlist, compare, currency, language} {
		s.Subscribe(func(e store.Event) {
			fmt.Printf("[%s] %s\n", e.Level, e.Message)
		})
	}

	// Initialize session and API client
	sess := session.NewStore(st, logger)
	client := api.NewClient(cfg.API, cfg.Payment, sess, logger,
		api.WithOnUnauthorized(func() {
			logger.Warn().Msg("session expired")
			sess.Clear()
		}),
	)

	if sess.SignedIn() {
		guest.MergeInto(cart)
	}

	// Fetch and render the catalogue
	products, err := client.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch catalogue: %w", err)
	}

	conv := currency.Converter()
	fmt.Printf("%-30s %-14s %-12s %s\n", "PRODUCT", "PRICE", "WAS", "STOCK")
	for i := range products {
		p := &products[i]
		tag := catalog.Tag(conv, p.Price, p.OriginPrice, money.Currency(p.Currency))
		info := catalog.Stock(p, "", "")

		was := "-"
		if tag.HasDiscount {
			was = fmt.Sprintf("%s (-%d%%)", tag.Original, tag.PercentOff)
		}
		fmt.Printf("%-30s %-14s %-12s %s\n", p.Name, tag.Current, was, info.Label())
	}

	logger.Info().Int("products", len(products)).Str("currency", string(currency.Selected())).Msg("catalogue rendered")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")
	return nil
}
