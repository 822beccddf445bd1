// Package autopilot plays a game headlessly with a greedy order-filling
// strategy.
package autopilot

import (
	"cardempire/internal/game"
	"cardempire/internal/market"
)

// Strategy tunes how aggressively the autopilot trades.
type Strategy struct {
	// Trade disables every player action when false; the clock still runs.
	Trade bool
	// Reserve is cash the autopilot never spends on stock.
	Reserve int
	// SellWithinDays liquidates lots this close to expiring.
	SellWithinDays int
	// Choice answers pending random events; negative lets them auto-resolve.
	Choice int
}

func DefaultStrategy() Strategy {
	return Strategy{Trade: true, Reserve: 500, SellWithinDays: 1, Choice: 0}
}

type Summary struct {
	StartDay  int `json:"start_day"`
	EndDay    int `json:"end_day"`
	StartCash int `json:"start_cash"`
	EndCash   int `json:"end_cash"`
	Purchases int `json:"purchases"`
	Fulfilled int `json:"fulfilled"`
	Sold      int `json:"sold"`
	Choices   int `json:"choices"`
	Ticks     int `json:"ticks"`
}

// Run advances g by days whole days in MinutesPerStep steps, acting before
// every step. onDay is called after each day boundary when non-nil.
func Run(g *game.Game, days int, st Strategy, onDay func(g *game.Game)) Summary {
	sum := Summary{StartDay: g.Day(), StartCash: g.Cash()}
	step := g.Balance().MinutesPerStep
	target := g.Day() + days

	for g.Day() < target {
		if st.Trade {
			act(g, st, &sum)
		}
		if g.Advance(step) {
			sum.Ticks++
			if onDay != nil {
				onDay(g)
			}
		}
	}
	sum.EndDay = g.Day()
	sum.EndCash = g.Cash()
	return sum
}

func act(g *game.Game, st Strategy, sum *Summary) {
	if ev, _, ok := g.PendingChoice(); ok && st.Choice >= 0 && st.Choice < len(ev.Choices) {
		if _, ok := g.ResolveChoice(st.Choice); ok {
			sum.Choices++
		}
	}

	inv := g.Inventory()
	for i := len(inv) - 1; i >= 0; i-- {
		if inv[i].Card.DaysUntilExpiration <= st.SellWithinDays && g.Sell(i) {
			sum.Sold++
		}
	}

	orders := g.Orders()
	for i := len(orders) - 1; i >= 0; i-- {
		o := orders[i]
		if !g.CanFulfill(i) {
			short := o.Quantity - g.Inventory().Available(o.Retailer, o.Denomination)
			sum.Purchases += restock(g, o.Retailer, short, o.TotalOffered(), st.Reserve)
		}
		if g.CanFulfill(i) && g.Fulfill(i) {
			sum.Fulfilled++
		}
	}
}

// restock buys up to short cards when the order revenue covers the cost.
func restock(g *game.Game, r market.Retailer, short, revenue, reserve int) int {
	idx, ok := market.ListingFor(r)
	if !ok || short <= 0 {
		return 0
	}
	var price int
	for _, q := range g.Market().Quotes {
		if q.Index == idx {
			price = q.Price
		}
	}
	cost := price * short
	if cost >= revenue || g.Cash()-cost < reserve {
		return 0
	}
	bought := 0
	for bought < short && g.Purchase(idx) {
		bought++
	}
	return bought
}
