// Package admin is the back-office layer: thin services over the backend's
// admin endpoints plus the local state that screens like the bulk inventory
// editor need. Entry is gated on an admin-role session token.
package admin

import (
	"strings"

	"stylekart/internal/api"
	"stylekart/internal/session"

	"github.com/rs/zerolog"
)

// Backoffice bundles the admin services behind a single entry gate.
type Backoffice struct {
	Products  *ProductsService
	Orders    *OrdersService
	Inventory *InventoryService
	Banners   *BannersService
	Coupons   *CouponsService
	Dashboard *DashboardService

	guard *session.Guard
}

// New wires the admin services onto a shared API client.
func New(client *api.Client, sess *session.Store, logger zerolog.Logger) *Backoffice {
	logger = logger.With().Str("component", "admin").Logger()

	return &Backoffice{
		Products:  &ProductsService{client: client, logger: logger},
		Orders:    &OrdersService{client: client, logger: logger},
		Inventory: &InventoryService{client: client, logger: logger},
		Banners:   &BannersService{client: client},
		Coupons:   &CouponsService{client: client},
		Dashboard: &DashboardService{client: client, logger: logger},
		guard:     session.NewGuard(sess, logger),
	}
}

// Enter gates access to the back office on the session's admin role.
func (b *Backoffice) Enter(returnTo string) session.Decision {
	return b.guard.RequireAdmin(returnTo)
}

// matches reports whether any field contains query, case-insensitively.
// An empty query matches everything.
func matches(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
