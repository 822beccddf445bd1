package game

import (
	"cardempire/internal/achievement"
	"cardempire/internal/analytics"
	"cardempire/internal/inventory"
	"cardempire/internal/market"
	"cardempire/internal/order"
	"cardempire/internal/randomevent"
)

// SnapshotVersion is written into every saved state.
const SnapshotVersion = 1

// State is everything a saved game holds.
type State struct {
	Version int `json:"version"`
	Account
	Clock
	Inventory    inventory.Ledger    `json:"inventory"`
	Orders       order.Book          `json:"customer_orders"`
	NextOrderID  int                 `json:"next_order_id"`
	Market       market.State        `json:"market_conditions"`
	Events       randomevent.Manager `json:"random_events"`
	Achievements achievement.Tracker `json:"achievements"`
	Analytics    analytics.Business  `json:"analytics"`
	Activity     ActivityLog         `json:"recent_activities"`
}
