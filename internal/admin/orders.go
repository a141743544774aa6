package admin

import (
	"context"
	"fmt"

	"stylekart/internal/api"
	"stylekart/internal/model"

	"github.com/rs/zerolog"
)

// Order lifecycle statuses as the backend understands them.
var orderStatuses = map[string]bool{
	"pending":    true,
	"processing": true,
	"shipped":    true,
	"delivered":  true,
	"cancelled":  true,
}

var paymentStatuses = map[string]bool{
	"pending":  true,
	"paid":     true,
	"failed":   true,
	"refunded": true,
}

// OrdersService manages placed orders from the back office.
type OrdersService struct {
	client *api.Client
	logger zerolog.Logger
}

// List fetches orders, optionally narrowed to one status and filtered by a
// case-insensitive substring query over order number and customer email.
func (s *OrdersService) List(ctx context.Context, status, query string) ([]model.Order, error) {
	orders, err := s.client.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && o.Status != status {
			continue
		}
		if !matches(query, o.OrderNumber) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// UpdateStatus moves an order to a new lifecycle status.
func (s *OrdersService) UpdateStatus(ctx context.Context, id, status string) (model.Order, error) {
	if !orderStatuses[status] {
		return model.Order{}, fmt.Errorf("unknown order status %q", status)
	}

	order, err := s.client.UpdateOrder(ctx, id, map[string]any{"status": status})
	if err != nil {
		return model.Order{}, err
	}

	s.logger.Info().Str("order_number", order.OrderNumber).Str("status", status).Msg("order status updated")
	return order, nil
}

// UpdatePaymentStatus records a payment outcome, typically a manual "paid"
// mark for cash-on-delivery orders.
func (s *OrdersService) UpdatePaymentStatus(ctx context.Context, id, status string) (model.Order, error) {
	if !paymentStatuses[status] {
		return model.Order{}, fmt.Errorf("unknown payment status %q", status)
	}
	return s.client.UpdateOrder(ctx, id, map[string]any{"paymentStatus": status})
}
