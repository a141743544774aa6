package api

import (
	"context"
	"fmt"

	"stylekart/internal/model"
)

type bulkUpdateRequest struct {
	Updates []model.InventoryUpdate `json:"updates"`
}

type bulkUpdateResponse struct {
	Results []model.InventoryUpdateResult `json:"results"`
}

// LowStock lists variations at or below the threshold.
func (c *Client) LowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	var products []model.Product
	if err := c.get(ctx, fmt.Sprintf("/api/inventory/low-stock?threshold=%d", threshold), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// OutOfStock lists fully depleted variations.
func (c *Client) OutOfStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.get(ctx, "/api/inventory/out-of-stock", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CheckAvailability asks whether the requested quantities can be fulfilled.
func (c *Client) CheckAvailability(ctx context.Context, req model.AvailabilityRequest) ([]model.AvailabilityResult, error) {
	var results []model.AvailabilityResult
	if err := c.post(ctx, "/api/inventory/check-availability", req, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// BulkUpdateInventory submits a batch of stock edits and returns the
// backend's per-item outcomes. Partial success is expected; callers count
// the successes rather than treating any failure as fatal.
func (c *Client) BulkUpdateInventory(ctx context.Context, updates []model.InventoryUpdate) ([]model.InventoryUpdateResult, error) {
	var resp bulkUpdateResponse
	if err := c.post(ctx, "/api/inventory/bulk-update", bulkUpdateRequest{Updates: updates}, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
