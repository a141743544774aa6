package admin

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"stylekart/internal/api"
	"stylekart/internal/model"

	"github.com/rs/zerolog"
)

// DefaultLowStockThreshold matches the backend's default for the low-stock
// report.
const DefaultLowStockThreshold = 5

// InventoryService exposes the stock reports and creates bulk editors.
type InventoryService struct {
	client *api.Client
	logger zerolog.Logger
}

// LowStock lists variations at or below threshold; zero means the default.
func (s *InventoryService) LowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return s.client.LowStock(ctx, threshold)
}

// OutOfStock lists fully depleted variations.
func (s *InventoryService) OutOfStock(ctx context.Context) ([]model.Product, error) {
	return s.client.OutOfStock(ctx)
}

// CheckAvailability asks the backend whether the requested quantities can
// currently be fulfilled.
func (s *InventoryService) CheckAvailability(ctx context.Context, items []model.AvailabilityItem) ([]model.AvailabilityResult, error) {
	return s.client.CheckAvailability(ctx, model.AvailabilityRequest{Items: items})
}

// NewBulkEditor starts an empty bulk stock-edit session.
func (s *InventoryService) NewBulkEditor() *BulkEditor {
	return &BulkEditor{
		client:  s.client,
		logger:  s.logger.With().Str("component", "bulk-editor").Logger(),
		pending: make(map[string]model.InventoryUpdate),
	}
}

// BulkEditor accumulates stock edits across the inventory screen and
// submits them as one batch. Staging the same variation twice keeps only
// the latest value. Failed rows survive a partial submit so the admin can
// fix and resubmit just those.
type BulkEditor struct {
	client *api.Client
	logger zerolog.Logger

	mu      sync.Mutex
	pending map[string]model.InventoryUpdate
}

func editKey(productID, size, color string) string {
	return fmt.Sprintf("%s-%s-%s", productID, size, color)
}

// Stage records a stock edit for one variation, replacing any earlier edit
// of the same variation. Negative stock is rejected.
func (e *BulkEditor) Stage(update model.InventoryUpdate) error {
	if update.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}

	e.mu.Lock()
	e.pending[editKey(update.ProductID, update.Size, update.Color)] = update
	e.mu.Unlock()
	return nil
}

// Unstage drops a staged edit.
func (e *BulkEditor) Unstage(productID, size, color string) {
	e.mu.Lock()
	delete(e.pending, editKey(productID, size, color))
	e.mu.Unlock()
}

// Pending returns the staged edits in a stable order.
func (e *BulkEditor) Pending() []model.InventoryUpdate {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := make([]string, 0, len(e.pending))
	for k := range e.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]model.InventoryUpdate, 0, len(keys))
	for _, k := range keys {
		out = append(out, e.pending[k])
	}
	return out
}

// Count returns the number of staged edits.
func (e *BulkEditor) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Submit sends the staged edits as one batch and returns how many the
// backend accepted along with the per-row outcomes. Accepted rows are
// cleared from the editor; rejected rows stay staged. A transport error
// leaves everything staged.
func (e *BulkEditor) Submit(ctx context.Context) (int, []model.InventoryUpdateResult, error) {
	updates := e.Pending()
	if len(updates) == 0 {
		return 0, nil, nil
	}

	results, err := e.client.BulkUpdateInventory(ctx, updates)
	if err != nil {
		return 0, nil, err
	}

	succeeded := 0
	e.mu.Lock()
	for _, r := range results {
		if r.Success {
			succeeded++
			delete(e.pending, editKey(r.ProductID, r.Size, r.Color))
		}
	}
	remaining := len(e.pending)
	e.mu.Unlock()

	e.logger.Info().Int("succeeded", succeeded).Int("remaining", remaining).Msg("bulk inventory update submitted")
	return succeeded, results, nil
}
