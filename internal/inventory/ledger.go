package inventory

import "cardempire/internal/market"

// ExpiringSoonDays is the threshold at which a lot is flagged as expiring soon.
const ExpiringSoonDays = 15

// CardLot describes a batch of cards sharing retailer, face value and unit cost.
type CardLot struct {
	Retailer            market.Retailer `json:"retailer"`
	Denomination        int             `json:"denomination"`
	PurchasePrice       int             `json:"purchase_price"`
	DaysUntilExpiration int             `json:"days_until_expiration"`
	// AcquiredDay is the day the lot was bought; zero for starting stock.
	AcquiredDay int `json:"acquired_day,omitempty"`
}

// MarketValue is the resale value of a single card.
func (c CardLot) MarketValue() int {
	return c.Denomination * c.Retailer.MarkupPercent() / 100
}

func (c CardLot) ExpiringSoon() bool {
	return c.DaysUntilExpiration <= ExpiringSoonDays
}

func (c CardLot) sameStock(o CardLot) bool {
	return c.Retailer == o.Retailer && c.Denomination == o.Denomination && c.PurchasePrice == o.PurchasePrice
}

// Entry is a lot together with how many cards of it are held.
type Entry struct {
	Card     CardLot `json:"card"`
	Quantity int     `json:"quantity"`
}

func (e Entry) TotalValue() int { return e.Card.MarketValue() * e.Quantity }

func (e Entry) TotalCost() int { return e.Card.PurchasePrice * e.Quantity }

// Ledger is the player's card inventory in acquisition order. Every entry
// holds a positive quantity.
type Ledger []Entry

// Add merges qty cards into an entry with the same retailer, denomination
// and purchase price, or appends a new entry.
func (l *Ledger) Add(card CardLot, qty int) {
	if qty <= 0 {
		return
	}
	for i := range *l {
		if (*l)[i].Card.sameStock(card) {
			(*l)[i].Quantity += qty
			return
		}
	}
	*l = append(*l, Entry{Card: card, Quantity: qty})
}

// Available sums the quantity held for a retailer and denomination across entries.
func (l Ledger) Available(r market.Retailer, denomination int) int {
	n := 0
	for _, e := range l {
		if e.Card.Retailer == r && e.Card.Denomination == denomination {
			n += e.Quantity
		}
	}
	return n
}

// Consume removes qty matching cards in ledger order. It changes nothing and
// returns false when not enough cards are held.
func (l *Ledger) Consume(r market.Retailer, denomination, qty int) bool {
	if qty <= 0 {
		return true
	}
	if l.Available(r, denomination) < qty {
		return false
	}
	remaining := qty
	for i := range *l {
		e := &(*l)[i]
		if remaining == 0 {
			break
		}
		if e.Card.Retailer != r || e.Card.Denomination != denomination {
			continue
		}
		take := min(e.Quantity, remaining)
		e.Quantity -= take
		remaining -= take
	}
	l.compact()
	return true
}

// RemoveRetailer takes up to n cards of retailer r in ledger order and
// returns how many were removed.
func (l *Ledger) RemoveRetailer(r market.Retailer, n int) int {
	removed := 0
	for i := range *l {
		if removed >= n {
			break
		}
		e := &(*l)[i]
		if e.Card.Retailer != r {
			continue
		}
		take := min(e.Quantity, n-removed)
		e.Quantity -= take
		removed += take
	}
	l.compact()
	return removed
}

// RemoveAt drops the entry at index i.
func (l *Ledger) RemoveAt(i int) (Entry, bool) {
	if i < 0 || i >= len(*l) {
		return Entry{}, false
	}
	e := (*l)[i]
	*l = append((*l)[:i], (*l)[i+1:]...)
	return e, true
}

// Age moves every lot one day closer to expiration and returns the entries
// that expired.
func (l *Ledger) Age() []Entry {
	var expired []Entry
	kept := (*l)[:0]
	for _, e := range *l {
		if e.Card.DaysUntilExpiration > 0 {
			e.Card.DaysUntilExpiration--
		}
		if e.Card.DaysUntilExpiration == 0 {
			expired = append(expired, e)
			continue
		}
		kept = append(kept, e)
	}
	*l = kept
	return expired
}

func (l *Ledger) compact() {
	kept := (*l)[:0]
	for _, e := range *l {
		if e.Quantity > 0 {
			kept = append(kept, e)
		}
	}
	*l = kept
}

// Count is the total number of cards held.
func (l Ledger) Count() int {
	n := 0
	for _, e := range l {
		n += e.Quantity
	}
	return n
}

func (l Ledger) TotalValue() int {
	v := 0
	for _, e := range l {
		v += e.TotalValue()
	}
	return v
}

func (l Ledger) TotalCost() int {
	v := 0
	for _, e := range l {
		v += e.TotalCost()
	}
	return v
}

// ExpiringSoon counts cards in lots close to expiring.
func (l Ledger) ExpiringSoon() int {
	n := 0
	for _, e := range l {
		if e.Card.ExpiringSoon() {
			n += e.Quantity
		}
	}
	return n
}

// DistinctRetailers counts how many different retailers are held.
func (l Ledger) DistinctRetailers() int {
	seen := make(map[market.Retailer]struct{}, len(market.Retailers))
	for _, e := range l {
		seen[e.Card.Retailer] = struct{}{}
	}
	return len(seen)
}

// Clone returns a copy that shares no backing storage with l.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}

// Starter is the stock a new game opens with.
func Starter() Ledger {
	return Ledger{
		{Card: CardLot{Retailer: market.Amazon, Denomination: 25, PurchasePrice: 20, DaysUntilExpiration: 45}, Quantity: 12},
		{Card: CardLot{Retailer: market.Target, Denomination: 50, PurchasePrice: 42, DaysUntilExpiration: 30}, Quantity: 8},
		{Card: CardLot{Retailer: market.Starbucks, Denomination: 10, PurchasePrice: 8, DaysUntilExpiration: 120}, Quantity: 15},
		{Card: CardLot{Retailer: market.ITunes, Denomination: 15, PurchasePrice: 12, DaysUntilExpiration: 15}, Quantity: 3},
		{Card: CardLot{Retailer: market.Walmart, Denomination: 20, PurchasePrice: 17, DaysUntilExpiration: 60}, Quantity: 6},
	}
}
