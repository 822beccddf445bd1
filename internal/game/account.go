package game

import "strings"

const (
	MinReputation = 1
	MaxReputation = 5
)

// Account is the player's cash and standing with customers.
type Account struct {
	Cash       int `json:"cash"`
	Reputation int `json:"reputation"`
}

func (a *Account) Credit(amount int) {
	if amount > 0 {
		a.Cash += amount
	}
}

// Spend takes amount from cash when it is affordable.
func (a *Account) Spend(amount int) bool {
	if amount < 0 || a.Cash < amount {
		return false
	}
	a.Cash -= amount
	return true
}

// ApplyCash adds a signed delta, stopping at zero.
func (a *Account) ApplyCash(delta int) {
	a.Cash = max(0, a.Cash+delta)
}

// AdjustReputation moves reputation by delta within 1..5 and returns the
// change actually applied.
func (a *Account) AdjustReputation(delta int) int {
	before := a.Reputation
	a.Reputation = min(MaxReputation, max(MinReputation, a.Reputation+delta))
	return a.Reputation - before
}

func ReputationStars(reputation int) string {
	filled := min(MaxReputation, max(0, reputation))
	return strings.Repeat("★", filled) + strings.Repeat("☆", MaxReputation-filled)
}

func ReputationDescription(reputation int) string {
	switch reputation {
	case 5:
		return "Legendary"
	case 4:
		return "Excellent"
	case 3:
		return "Good"
	case 2:
		return "Fair"
	case 1:
		return "Poor"
	default:
		return "Unknown"
	}
}
