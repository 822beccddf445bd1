package config

import (
	"errors"
	"fmt"
)

// Balance holds gameplay balance configuration
type Balance struct {
	// Opening position
	StartingCash       int `yaml:"starting_cash" json:"starting_cash"`
	StartingReputation int `yaml:"starting_reputation" json:"starting_reputation"`
	StartingHour       int `yaml:"starting_hour" json:"starting_hour"`
	FirstOrderID       int `yaml:"first_order_id" json:"first_order_id"`
	InitialOrders      int `yaml:"initial_orders" json:"initial_orders"`

	// Direct sales pay this percentage of face value
	DirectSalePercent int `yaml:"direct_sale_percent" json:"direct_sale_percent"`

	// Clock step used by the realtime runner and the headless driver
	MinutesPerStep int `yaml:"minutes_per_step" json:"minutes_per_step"`
}

// Default returns the default balance configuration
func Default() Balance {
	return Balance{
		StartingCash:       5000,
		StartingReputation: 3,
		StartingHour:       9,
		FirstOrderID:       1000,
		InitialOrders:      2,
		DirectSalePercent:  85,
		MinutesPerStep:     20,
	}
}

// Casual returns easier balance for casual difficulty
func Casual() Balance {
	cfg := Default()
	cfg.StartingCash = 10000
	cfg.StartingReputation = 4
	cfg.DirectSalePercent = 90
	return cfg
}

// Hard returns harder balance for experienced players
func Hard() Balance {
	cfg := Default()
	cfg.StartingCash = 2500
	cfg.StartingReputation = 2
	cfg.InitialOrders = 1
	cfg.DirectSalePercent = 80
	return cfg
}

// Preset looks up a named difficulty.
func Preset(name string) (Balance, bool) {
	switch name {
	case "", "default", "normal":
		return Default(), true
	case "casual":
		return Casual(), true
	case "hard":
		return Hard(), true
	}
	return Balance{}, false
}

func (b Balance) Validate() error {
	var errs []error
	if b.StartingCash < 0 {
		errs = append(errs, fmt.Errorf("starting_cash %d is negative", b.StartingCash))
	}
	if b.StartingReputation < 1 || b.StartingReputation > 5 {
		errs = append(errs, fmt.Errorf("starting_reputation %d outside 1..5", b.StartingReputation))
	}
	if b.StartingHour < 0 || b.StartingHour > 23 {
		errs = append(errs, fmt.Errorf("starting_hour %d outside 0..23", b.StartingHour))
	}
	if b.InitialOrders < 0 {
		errs = append(errs, fmt.Errorf("initial_orders %d is negative", b.InitialOrders))
	}
	if b.DirectSalePercent < 1 || b.DirectSalePercent > 100 {
		errs = append(errs, fmt.Errorf("direct_sale_percent %d outside 1..100", b.DirectSalePercent))
	}
	if b.MinutesPerStep < 1 {
		errs = append(errs, fmt.Errorf("minutes_per_step %d must be positive", b.MinutesPerStep))
	}
	return errors.Join(errs...)
}
