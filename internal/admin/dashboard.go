package admin

import (
	"context"

	"stylekart/internal/api"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Stats is the dashboard summary aggregated from the list endpoints.
// Revenue counts paid orders only.
type Stats struct {
	TotalOrders   int
	PendingOrders int
	Revenue       float64
	ProductCount  int
	LowStock      int
	OutOfStock    int
	ActiveCoupons int
}

// DashboardService aggregates the overview numbers the admin landing
// screen shows.
type DashboardService struct {
	client *api.Client
	logger zerolog.Logger
}

// Summary collects the dashboard stats. Each source that fails is logged
// and reported as zero rather than failing the whole screen.
func (s *DashboardService) Summary(ctx context.Context) Stats {
	var stats Stats

	if orders, err := s.client.ListOrders(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to load orders for dashboard")
	} else {
		stats.TotalOrders = len(orders)
		revenue := decimal.Zero
		for _, o := range orders {
			if o.Status == "pending" {
				stats.PendingOrders++
			}
			if o.PaymentStatus == "paid" {
				revenue = revenue.Add(decimal.NewFromFloat(o.Total))
			}
		}
		stats.Revenue, _ = revenue.Round(2).Float64()
	}

	if products, err := s.client.ListProducts(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to load products for dashboard")
	} else {
		stats.ProductCount = len(products)
	}

	if low, err := s.client.LowStock(ctx, DefaultLowStockThreshold); err != nil {
		s.logger.Warn().Err(err).Msg("failed to load low-stock report for dashboard")
	} else {
		stats.LowStock = len(low)
	}

	if out, err := s.client.OutOfStock(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to load out-of-stock report for dashboard")
	} else {
		stats.OutOfStock = len(out)
	}

	if coupons, err := s.client.ListCoupons(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to load coupons for dashboard")
	} else {
		for _, c := range coupons {
			if c.IsActive {
				stats.ActiveCoupons++
			}
		}
	}

	return stats
}
