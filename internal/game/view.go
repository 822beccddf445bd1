package game

import (
	"cardempire/internal/achievement"
	"cardempire/internal/analytics"
	"cardempire/internal/inventory"
	"cardempire/internal/market"
	"cardempire/internal/order"
	"cardempire/internal/randomevent"
)

// Quote is the current buying price for one catalog row.
type Quote struct {
	Index      int            `json:"index"`
	Listing    market.Listing `json:"listing"`
	Price      int            `json:"price"`
	Multiplier float64        `json:"multiplier"`
	Demand     float64        `json:"demand"`
}

// MarketSummary is a read-only view of prices and what is moving them.
type MarketSummary struct {
	Season          market.Season          `json:"season"`
	BaseDemand      float64                `json:"base_demand"`
	ActiveEvents    []market.Event         `json:"active_events"`
	NextEventInDays int                    `json:"next_event_in_days"`
	Modifiers       []randomevent.Modifier `json:"modifiers"`
	ModifierDemand  float64                `json:"modifier_demand"`
	Quotes          []Quote                `json:"quotes"`
}

func (g *Game) quote(index int) (Quote, bool) {
	if index < 0 || index >= len(market.Catalog) {
		return Quote{}, false
	}
	l := market.Catalog[index]
	m := g.priceMultiplier(l.Retailer)
	return Quote{
		Index:      index,
		Listing:    l,
		Price:      market.PurchasePrice(l.BaseCost, m),
		Multiplier: m,
		Demand:     g.demand(l.Retailer),
	}, true
}

func (g *Game) Cash() int       { return g.state.Cash }
func (g *Game) Reputation() int { return g.state.Reputation }
func (g *Game) Day() int        { return g.state.Day }
func (g *Game) Clock() Clock    { return g.state.Clock }

func (g *Game) ReputationStars() string       { return ReputationStars(g.state.Reputation) }
func (g *Game) ReputationDescription() string { return ReputationDescription(g.state.Reputation) }
func (g *Game) TimeDisplay() string           { return g.state.Clock.Display() }

func (g *Game) Inventory() inventory.Ledger { return g.state.Inventory.Clone() }
func (g *Game) Orders() order.Book          { return g.state.Orders.Clone() }

// CanFulfill reports whether inventory covers order index.
func (g *Game) CanFulfill(index int) bool {
	o, ok := g.state.Orders.At(index)
	return ok && g.state.Inventory.Available(o.Retailer, o.Denomination) >= o.Quantity
}

func (g *Game) Market() MarketSummary {
	s := g.state
	sum := MarketSummary{
		Season:          s.Market.Season,
		BaseDemand:      s.Market.BaseDemandModifier,
		ActiveEvents:    append([]market.Event{}, s.Market.ActiveEvents...),
		NextEventInDays: s.Market.NextEventInDays,
		Modifiers:       append([]randomevent.Modifier{}, s.Events.Modifiers...),
		ModifierDemand:  s.Events.DemandMultiplier(),
	}
	for i := range market.Catalog {
		q, _ := g.quote(i)
		sum.Quotes = append(sum.Quotes, q)
	}
	return sum
}

func (g *Game) Achievements() []achievement.Achievement {
	return append([]achievement.Achievement{}, g.state.Achievements.Achievements...)
}

func (g *Game) UnlockedAchievements() []achievement.Achievement {
	return g.state.Achievements.Unlocked()
}

func (g *Game) InProgressAchievements() []achievement.Achievement {
	return g.state.Achievements.InProgress()
}

// TakeRecentUnlock returns the last achievement name once, then clears it.
func (g *Game) TakeRecentUnlock() string {
	return g.state.Achievements.TakeRecentUnlock()
}

func (g *Game) Analytics() analytics.Business { return g.state.Analytics.Clone() }

// PendingChoice returns the event waiting on the player and the day it
// resolves on its own.
func (g *Game) PendingChoice() (randomevent.Event, int, bool) {
	if g.state.Events.Pending == nil {
		return randomevent.Event{}, 0, false
	}
	return *g.state.Events.Pending, g.state.Events.ChoiceDeadline, true
}

func (g *Game) EventHistory() []string {
	return append([]string{}, g.state.Events.History...)
}

func (g *Game) Activity() []string {
	return append([]string{}, g.state.Activity...)
}
