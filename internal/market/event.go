package market

// Event is a scheduled, temporary multiplier on price and demand. An empty
// Retailer means the event applies to every retailer.
type Event struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Retailer         Retailer `json:"retailer,omitempty"`
	PriceMultiplier  float64  `json:"price_multiplier"`
	DemandMultiplier float64  `json:"demand_multiplier"`
	DurationDays     int      `json:"duration_days"`
	RemainingDays    int      `json:"remaining_days"`
}

func (e Event) Affects(r Retailer) bool {
	return e.Retailer == "" || e.Retailer == r
}

func (e Event) Expired() bool {
	return e.RemainingDays <= 0
}

func newEvent(name, description string, r Retailer, price, demand float64, duration int) Event {
	return Event{
		Name:             name,
		Description:      description,
		Retailer:         r,
		PriceMultiplier:  price,
		DemandMultiplier: demand,
		DurationDays:     duration,
		RemainingDays:    duration,
	}
}

// EventForDay picks from the eight-entry palette by day mod 8.
func EventForDay(day int) Event {
	switch day % 8 {
	case 0:
		return newEvent("Tech Surge", "New gadget releases drive tech gift card demand", ITunes, 0.9, 1.5, 4)
	case 1:
		return newEvent("Coffee Festival", "Local coffee festival increases Starbucks popularity", Starbucks, 1.1, 1.8, 3)
	case 2:
		return newEvent("Supply Chain Issues", "Logistics problems affect all retailers", "", 1.3, 0.7, 5)
	case 3:
		return newEvent("Amazon Prime Day", "Special Amazon promotion increases demand", Amazon, 0.85, 2.0, 2)
	case 4:
		return newEvent("Back to School", "Students need supplies, Target benefits", Target, 1.05, 1.4, 7)
	case 5:
		return newEvent("Economic Downturn", "Customers tighten budgets, demand drops", "", 1.0, 0.6, 6)
	case 6:
		return newEvent("Walmart Expansion", "New Walmart stores increase accessibility", Walmart, 0.95, 1.3, 4)
	default:
		return newEvent("Market Boom", "General economic growth benefits all retailers", "", 0.9, 1.2, 5)
	}
}
