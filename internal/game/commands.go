package game

import (
	"fmt"

	"cardempire/internal/inventory"
	"cardempire/internal/market"
	"cardempire/internal/randomevent"
	"cardempire/internal/telemetry"
)

// QuickTurnaroundDays is the longest hold that still counts as a quick flip.
const QuickTurnaroundDays = 3

// Purchase buys one card from catalog row index at today's price.
func (g *Game) Purchase(index int) bool {
	s := &g.state
	q, ok := g.quote(index)
	if !ok {
		return false
	}
	l := q.Listing

	if !s.Spend(q.Price) {
		g.note(fmt.Sprintf("Insufficient funds for %s $%d (need $%d)", l.Retailer, l.Denomination, q.Price))
		return false
	}

	s.Inventory.Add(inventory.CardLot{
		Retailer:            l.Retailer,
		Denomination:        l.Denomination,
		PurchasePrice:       q.Price,
		DaysUntilExpiration: 30 + s.Day%60,
		AcquiredDay:         s.Day,
	}, 1)
	s.Analytics.RecordPurchase(q.Price)

	g.announce(s.Achievements.RecordMarketPurchase(q.Multiplier, s.Day))
	g.announce(s.Achievements.CheckInventory(s.Inventory.Count(), s.Inventory.DistinctRetailers(), s.Day))
	g.note(fmt.Sprintf("Purchased %s $%d card for $%d", l.Retailer, l.Denomination, q.Price))
	g.record(telemetry.EventCardPurchased, telemetry.EventMetadata{
		"retailer":     string(l.Retailer),
		"denomination": l.Denomination,
		"price":        q.Price,
	})
	return true
}

// Fulfill delivers order index from inventory. Nothing changes when the
// order does not exist or stock is short.
func (g *Game) Fulfill(index int) bool {
	s := &g.state
	o, ok := s.Orders.At(index)
	if !ok {
		g.note(fmt.Sprintf("Cannot fulfill order - no order at position %d", index))
		return false
	}
	if !s.Inventory.Consume(o.Retailer, o.Denomination, o.Quantity) {
		g.note(fmt.Sprintf("Cannot fulfill order #%d - insufficient inventory", o.ID))
		return false
	}

	earnings := o.TotalOffered()
	cost := o.CostBasis()
	profit := earnings - cost

	s.Analytics.RecordSale(earnings, cost, o.Quantity)
	s.Credit(earnings)
	if s.Market.Season == market.Winter {
		s.Achievements.AddWinterProfit(profit)
	}

	g.announce(s.Achievements.RecordOrderCompletion(s.Day))
	g.announce(s.Achievements.CheckOrders(s.Analytics.OrdersCompleted, s.Reputation, s.Day))
	g.announce(s.Achievements.CheckCash(s.Cash, s.Day))

	s.Orders.RemoveAt(index)
	g.note(fmt.Sprintf("Completed order #%d: %d %s $%d cards for $%d (profit: $%d)",
		o.ID, o.Quantity, o.Retailer, o.Denomination, earnings, profit))
	g.improveReputation(o.Fast())

	g.record(telemetry.EventOrderFulfilled, telemetry.EventMetadata{
		"id":       o.ID,
		"retailer": string(o.Retailer),
		"quantity": o.Quantity,
		"earnings": earnings,
		"profit":   profit,
	})
	return true
}

// Sell liquidates inventory entry index at the direct-sale rate.
func (g *Game) Sell(index int) bool {
	s := &g.state
	e, ok := s.Inventory.RemoveAt(index)
	if !ok {
		return false
	}

	perCard := e.Card.Denomination * g.balance.DirectSalePercent / 100
	revenue := perCard * e.Quantity
	profit := revenue - e.TotalCost()

	s.Credit(revenue)
	s.Analytics.RecordDirectSale(revenue, e.Quantity)
	if s.Market.Season == market.Winter {
		s.Achievements.AddWinterProfit(profit)
	}

	sign, shown := "+", profit
	if profit < 0 {
		sign, shown = "-", -profit
	}
	g.note(fmt.Sprintf("Sold %dx %s $%d cards for $%d (%s$%d profit)",
		e.Quantity, e.Card.Retailer, e.Card.Denomination, revenue, sign, shown))

	if e.Card.AcquiredDay > 0 && s.Day-e.Card.AcquiredDay <= QuickTurnaroundDays {
		g.announce(s.Achievements.RecordQuickTurnaround(s.Day))
	}
	g.announce(s.Achievements.CheckCash(s.Cash, s.Day))

	g.record(telemetry.EventEntrySold, telemetry.EventMetadata{
		"retailer": string(e.Card.Retailer),
		"quantity": e.Quantity,
		"revenue":  revenue,
		"profit":   profit,
	})
	return true
}

// ResolveChoice answers the pending random event.
func (g *Game) ResolveChoice(choice int) (randomevent.Outcome, bool) {
	o, ok := g.state.Events.MakeChoice(choice)
	if !ok {
		return randomevent.Outcome{}, false
	}
	g.applyOutcome(o)
	g.note("Made choice on random event")
	g.record(telemetry.EventChoiceResolved, telemetry.EventMetadata{"title": o.Title, "choice": choice})
	return o, true
}
