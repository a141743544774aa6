package model

// InventoryUpdate sets the stock level of one product variation. A batch of
// these is submitted by the admin bulk-update flow.
type InventoryUpdate struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Stock     int    `json:"stock"`
}

// InventoryUpdateResult is the backend's per-item outcome for a bulk update.
type InventoryUpdateResult struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
}

// AvailabilityRequest asks the backend whether the requested quantities can
// currently be fulfilled.
type AvailabilityRequest struct {
	Items []AvailabilityItem `json:"items"`
}

// AvailabilityItem is one variation/quantity pair in an availability check.
type AvailabilityItem struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// AvailabilityResult reports per-item availability.
type AvailabilityResult struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Available bool   `json:"available"`
	Stock     int    `json:"stock"`
}
