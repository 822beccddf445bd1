package order

import (
	"math"

	"cardempire/internal/market"
)

type Priority string

const (
	Low    Priority = "Low"
	Medium Priority = "Medium"
	High   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case Low, Medium, High:
		return true
	}
	return false
}

// Order is a customer's standing request to buy cards at an offered price.
type Order struct {
	ID                  int             `json:"id"`
	CustomerName        string          `json:"customer_name"`
	Retailer            market.Retailer `json:"retailer"`
	Denomination        int             `json:"denomination"`
	Quantity            int             `json:"quantity"`
	OfferedPrice        int             `json:"offered_price"`
	DeadlineDays        int             `json:"deadline_days"`
	InitialDeadlineDays int             `json:"initial_deadline_days"`
	Priority            Priority        `json:"priority"`
}

// TotalOffered is what the customer pays for the whole order.
func (o Order) TotalOffered() int {
	return o.Quantity * o.OfferedPrice
}

// CostBasis estimates wholesale cost as five under face value per card.
func (o Order) CostBasis() int {
	return o.Quantity * (o.Denomination - 5)
}

// Fast reports whether more than half of the original deadline is left.
func (o Order) Fast() bool {
	return o.DeadlineDays*2 > o.InitialDeadlineDays
}

var customerNames = []string{"Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Henry"}

// Params are the simulation values an order is derived from.
type Params struct {
	Day        int
	Hour       int
	Reputation int
	NextID     int
	// Demand looks up the demand multiplier for the chosen retailer.
	Demand func(market.Retailer) float64
}

func baseDiscount(reputation int) float64 {
	switch reputation {
	case 5:
		return 0.95
	case 4:
		return 0.93
	case 3:
		return 0.90
	case 2:
		return 0.87
	default:
		return 0.85
	}
}

// Discount is the fraction of face value a customer offers.
func Discount(reputation int, demand float64) float64 {
	d := baseDiscount(reputation)
	switch {
	case demand > 1.2:
		d += 0.02
	case demand < 0.8:
		d -= 0.03
	}
	return math.Max(0.80, math.Min(0.98, d))
}

// Generate builds the order for p. It is a pure function of its inputs.
func Generate(p Params) Order {
	l := market.Catalog[(p.Day+p.Hour)%len(market.Catalog)]
	name := customerNames[(p.NextID+p.Day)%len(customerNames)]

	demand := 1.0
	if p.Demand != nil {
		demand = p.Demand(l.Retailer)
	}
	offer := int(math.Floor(float64(l.Denomination) * Discount(p.Reputation, demand)))
	deadline := 2 + p.Day%5

	priority := Low
	switch {
	case offer >= l.Denomination+8:
		priority = High
	case offer >= l.Denomination+5:
		priority = Medium
	}

	return Order{
		ID:                  p.NextID,
		CustomerName:        name,
		Retailer:            l.Retailer,
		Denomination:        l.Denomination,
		Quantity:            1 + p.Day%5,
		OfferedPrice:        offer,
		DeadlineDays:        deadline,
		InitialDeadlineDays: deadline,
		Priority:            priority,
	}
}

// ShouldGenerate decides whether the daily tick produces an order.
func ShouldGenerate(reputation, day int, baseDemand float64) bool {
	var base bool
	switch reputation {
	case 5:
		base = true
	case 4, 3:
		base = day%2 == 0
	case 2:
		base = day%3 == 0
	case 1:
		base = day%4 == 0
	}
	return base || (baseDemand > 1.0 && day%2 == 1)
}
