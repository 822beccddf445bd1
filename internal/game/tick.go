package game

import (
	"fmt"

	"cardempire/internal/market"
	"cardempire/internal/order"
	"cardempire/internal/randomevent"
	"cardempire/internal/telemetry"
)

// Advance moves the clock forward. When a day boundary is crossed the daily
// tick runs once, however many days were skipped.
func (g *Game) Advance(minutes int) bool {
	if !g.state.Clock.Advance(minutes) {
		return false
	}
	g.dailyTick()
	return true
}

func (g *Game) dailyTick() {
	s := &g.state
	day := s.Day

	// Inventory aging
	if expired := s.Inventory.Age(); len(expired) > 0 {
		cards, value := 0, 0
		for _, e := range expired {
			cards += e.Quantity
			value += e.TotalCost()
		}
		s.Analytics.RecordExpiredCards(cards)
		g.note(fmt.Sprintf("Lost %d cards worth $%d to expiration", cards, value))
		g.record(telemetry.EventCardsExpired, telemetry.EventMetadata{"quantity": cards, "value": value})
	}

	// Order aging, then generation
	expiredOrders := s.Orders.Age()
	if n := len(expiredOrders); n > 0 {
		for _, o := range expiredOrders {
			s.Analytics.RecordExpiredOrder()
			g.record(telemetry.EventOrderExpired, telemetry.EventMetadata{"id": o.ID, "retailer": string(o.Retailer)})
		}
		g.note(fmt.Sprintf("%d customer orders expired", n))
		for i := 0; i < n; i++ {
			g.decreaseReputation()
		}
	}
	if order.ShouldGenerate(s.Reputation, day, s.Market.BaseDemandModifier) {
		g.generateOrder()
	}

	s.Analytics.StartNewDay()

	// Market season and scheduled events
	mr := s.Market.ProcessDay(day)
	for _, e := range mr.Ended {
		g.note(fmt.Sprintf("Market event '%s' has ended", e.Name))
		g.announce(s.Achievements.RecordEventSurvival(day))
	}
	if e := mr.Started; e != nil {
		g.note(fmt.Sprintf("New market event: %s", e.Name))
		g.record(telemetry.EventMarketEventStarted, telemetry.EventMetadata{"name": e.Name, "retailer": string(e.Retailer)})
	}

	// Achievements
	a := &s.Achievements
	g.announce(a.ProcessDaily(len(expiredOrders), s.Analytics.OrdersCompleted, s.Analytics.OrdersExpired, day))
	g.announce(a.CheckCash(s.Cash, day))
	g.announce(a.CheckInventory(s.Inventory.Count(), s.Inventory.DistinctRetailers(), day))
	g.announce(a.CheckSeasonal(s.Market.Season, day))
	g.announce(a.CheckReputation(s.Reputation, day))

	g.processRandomEvents(day)

	g.note(fmt.Sprintf("Day %d begins (%s season)", day, s.Market.Season))
	g.record(telemetry.EventDayTick, telemetry.EventMetadata{
		"day":        day,
		"cash":       s.Cash,
		"reputation": s.Reputation,
		"orders":     len(s.Orders),
	})
	g.log.Printf("day %d (%s): cash=$%d reputation=%d orders=%d cards=%d",
		day, s.Market.Season, s.Cash, s.Reputation, len(s.Orders), s.Inventory.Count())
}

func (g *Game) processRandomEvents(day int) {
	s := &g.state
	rep := s.Events.Tick(day)

	for _, m := range rep.EndedModifiers {
		g.note(fmt.Sprintf("%s effect has ended", m.Name))
	}
	if o := rep.AutoResolved; o != nil {
		g.applyOutcome(*o)
		g.note(fmt.Sprintf("%s auto-resolved (no choice made)", o.Title))
		g.record(telemetry.EventChoiceResolved, telemetry.EventMetadata{"title": o.Title, "forced": true})
	}
	if e := rep.Fired; e != nil {
		g.note(fmt.Sprintf("Random event: %s", e.Title))
		g.record(telemetry.EventRandomEventFired, telemetry.EventMetadata{"title": e.Title, "type": string(e.Type)})
	}
	if o := rep.Applied; o != nil {
		g.applyOutcome(*o)
	}
}

// applyOutcome books an event's cash, reputation and inventory effects.
// Modifiers are already held by the event manager.
func (g *Game) applyOutcome(o randomevent.Outcome) {
	s := &g.state
	s.ApplyCash(o.CashDelta)
	s.AdjustReputation(o.ReputationDelta)
	for _, imp := range o.InventoryImpact {
		// Only removals exist; there is no cost basis to add cards at.
		if imp.Quantity < 0 {
			s.Inventory.RemoveRetailer(imp.Retailer, -imp.Quantity)
		}
	}
}

func (g *Game) generateOrder() {
	s := &g.state
	o := order.Generate(order.Params{
		Day:        s.Day,
		Hour:       s.Hour,
		Reputation: s.Reputation,
		NextID:     s.NextOrderID,
		Demand:     g.demand,
	})
	s.Orders.Push(o)
	s.NextOrderID++

	g.note(fmt.Sprintf("New order: %s wants %d %s $%d cards", o.CustomerName, o.Quantity, o.Retailer, o.Denomination))
	g.record(telemetry.EventOrderCreated, telemetry.EventMetadata{
		"id":       o.ID,
		"retailer": string(o.Retailer),
		"quantity": o.Quantity,
		"offer":    o.OfferedPrice,
	})
}

// demand is the market's demand for r. Temporary modifiers only move prices.
func (g *Game) demand(r market.Retailer) float64 {
	return g.state.Market.DemandMultiplier(r)
}

func (g *Game) priceMultiplier(r market.Retailer) float64 {
	return g.state.Market.PriceMultiplier(r) * g.state.Events.PriceMultiplier()
}

func (g *Game) improveReputation(fast bool) {
	if g.state.AdjustReputation(1) == 0 {
		return
	}
	if fast {
		g.note("Reputation boosted for lightning-fast delivery!")
		return
	}
	g.note("Reputation improved for excellent service!")
}

func (g *Game) decreaseReputation() {
	if g.state.AdjustReputation(-1) != 0 {
		g.note("Reputation damaged - customers disappointed by expired orders")
	}
}
