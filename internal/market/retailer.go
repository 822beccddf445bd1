package market

import "math"

// Retailer identifies one of the card brands the wholesale market carries.
type Retailer string

const (
	Amazon    Retailer = "Amazon"
	Starbucks Retailer = "Starbucks"
	Target    Retailer = "Target"
	ITunes    Retailer = "iTunes"
	Walmart   Retailer = "Walmart"
)

// Retailers lists every retailer in catalog order.
var Retailers = []Retailer{Amazon, Starbucks, Target, ITunes, Walmart}

func (r Retailer) Valid() bool {
	switch r {
	case Amazon, Starbucks, Target, ITunes, Walmart:
		return true
	}
	return false
}

// MarkupPercent is the resale value of a card as a percentage of face value.
func (r Retailer) MarkupPercent() int {
	switch r {
	case Amazon:
		return 130
	case Starbucks:
		return 125
	case Target:
		return 128
	case ITunes:
		return 122
	case Walmart:
		return 120
	default:
		return 125
	}
}

// Listing is one row of the wholesale catalog.
type Listing struct {
	Retailer     Retailer `json:"retailer"`
	Denomination int      `json:"denomination"`
	BaseCost     int      `json:"base_cost"`
	Stock        int      `json:"stock"`
}

// Catalog is the fixed wholesale offer. Customer orders draw from the same
// (retailer, denomination) pairs.
var Catalog = []Listing{
	{Retailer: Amazon, Denomination: 25, BaseCost: 20, Stock: 50},
	{Retailer: Starbucks, Denomination: 10, BaseCost: 8, Stock: 30},
	{Retailer: Target, Denomination: 50, BaseCost: 42, Stock: 15},
	{Retailer: ITunes, Denomination: 15, BaseCost: 12, Stock: 25},
	{Retailer: Walmart, Denomination: 20, BaseCost: 17, Stock: 40},
}

// PurchasePrice applies a price multiplier to a base wholesale cost.
func PurchasePrice(baseCost int, multiplier float64) int {
	return int(math.Round(float64(baseCost) * multiplier))
}
