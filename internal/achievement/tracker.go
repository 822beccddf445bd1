package achievement

import (
	"slices"

	"cardempire/internal/market"
)

const (
	speedDemonOrders  = 5
	efficiencyRate    = 0.9
	favorableMaxPrice = 0.9
)

// Tracker holds achievement progress plus the streaks and counters that feed it.
type Tracker struct {
	Achievements              []Achievement   `json:"achievements"`
	TotalUnlocked             int             `json:"total_unlocked"`
	RecentUnlock              string          `json:"recent_unlock,omitempty"`
	ConsecutivePerfectDays    int             `json:"consecutive_perfect_days"`
	ConsecutiveEfficiencyDays int             `json:"consecutive_efficiency_days"`
	OrdersToday               int             `json:"orders_today"`
	FavorableMarketPurchases  int             `json:"favorable_market_purchases"`
	WinterProfit              int             `json:"winter_profit"`
	SeasonsSeen               []market.Season `json:"seasons_seen"`
	EventsSurvived            int             `json:"events_survived"`
}

func NewTracker() Tracker {
	return Tracker{Achievements: Catalog(), SeasonsSeen: []market.Season{}}
}

// CheckAndUnlock raises progress for t and unlocks it once progress reaches
// the target. It reports the achievement when this call unlocked it.
func (tr *Tracker) CheckAndUnlock(t Type, progress, day int) (Achievement, bool) {
	for i := range tr.Achievements {
		a := &tr.Achievements[i]
		if a.Type != t || a.Unlocked {
			continue
		}
		a.Progress = max(a.Progress, progress)
		if progress < a.Target {
			return Achievement{}, false
		}
		a.Unlocked = true
		a.UnlockedDay = day
		tr.TotalUnlocked++
		tr.RecentUnlock = a.Name
		return *a, true
	}
	return Achievement{}, false
}

func (tr *Tracker) check(out []Achievement, t Type, progress, day int) []Achievement {
	if a, ok := tr.CheckAndUnlock(t, progress, day); ok {
		out = append(out, a)
	}
	return out
}

func (tr *Tracker) CheckCash(cash, day int) []Achievement {
	var out []Achievement
	out = tr.check(out, Entrepreneur, cash, day)
	out = tr.check(out, BusinessMogul, cash, day)
	return tr.check(out, Millionaire, cash, day)
}

func (tr *Tracker) CheckOrders(completed, reputation, day int) []Achievement {
	var out []Achievement
	out = tr.check(out, FirstSale, completed, day)
	out = tr.check(out, EarlyBird, completed, day)
	out = tr.check(out, CustomerFavorite, completed, day)
	out = tr.check(out, TrustedSeller, completed, day)
	return tr.check(out, LegendaryStatus, reputation, day)
}

func (tr *Tracker) CheckReputation(reputation, day int) []Achievement {
	return tr.check(nil, LegendaryStatus, reputation, day)
}

func (tr *Tracker) CheckInventory(cards, retailers, day int) []Achievement {
	var out []Achievement
	out = tr.check(out, Collector, cards, day)
	return tr.check(out, DiversifiedPortfolio, retailers, day)
}

// CheckSeasonal records season as seen and checks the seasonal goals.
func (tr *Tracker) CheckSeasonal(season market.Season, day int) []Achievement {
	if !slices.Contains(tr.SeasonsSeen, season) {
		tr.SeasonsSeen = append(tr.SeasonsSeen, season)
	}
	out := tr.check(nil, SeasonVeteran, len(tr.SeasonsSeen), day)
	if season == market.Winter && tr.WinterProfit > 0 {
		out = tr.check(out, WinterWinner, tr.WinterProfit, day)
	}
	return out
}

// AddWinterProfit accumulates profit earned during Winter.
func (tr *Tracker) AddWinterProfit(profit int) {
	tr.WinterProfit += profit
}

// RecordOrderCompletion counts a fulfilled order toward today's total.
func (tr *Tracker) RecordOrderCompletion(day int) []Achievement {
	tr.OrdersToday++
	return tr.check(nil, SpeedDemon, tr.OrdersToday, day)
}

// RecordMarketPurchase counts purchases made while prices were at least
// ten percent below normal.
func (tr *Tracker) RecordMarketPurchase(priceMultiplier float64, day int) []Achievement {
	if priceMultiplier > favorableMaxPrice {
		return nil
	}
	tr.FavorableMarketPurchases++
	return tr.check(nil, MarketMaster, tr.FavorableMarketPurchases, day)
}

func (tr *Tracker) RecordEventSurvival(day int) []Achievement {
	tr.EventsSurvived++
	return tr.check(nil, EventSurvivor, tr.EventsSurvived, day)
}

func (tr *Tracker) RecordQuickTurnaround(day int) []Achievement {
	return tr.check(nil, QuickTurnaround, 1, day)
}

// ProcessDaily closes out the previous day: it updates the perfect-day and
// efficiency streaks and resets the daily order counter.
func (tr *Tracker) ProcessDaily(expiredToday, completedTotal, expiredTotal, day int) []Achievement {
	completedToday := tr.OrdersToday
	tr.OrdersToday = 0

	if completedToday > 0 && expiredToday == 0 {
		tr.ConsecutivePerfectDays++
	} else {
		tr.ConsecutivePerfectDays = 0
	}

	if total := completedTotal + expiredTotal; total > 0 {
		if float64(completedTotal)/float64(total) >= efficiencyRate {
			tr.ConsecutiveEfficiencyDays++
		} else {
			tr.ConsecutiveEfficiencyDays = 0
		}
	}

	var out []Achievement
	if tr.ConsecutivePerfectDays > 0 {
		out = tr.check(out, PerfectWeek, tr.ConsecutivePerfectDays, day)
	}
	if tr.ConsecutiveEfficiencyDays > 0 {
		out = tr.check(out, Efficiency, tr.ConsecutiveEfficiencyDays, day)
	}
	return out
}

func (tr Tracker) Get(t Type) (Achievement, bool) {
	for _, a := range tr.Achievements {
		if a.Type == t {
			return a, true
		}
	}
	return Achievement{}, false
}

func (tr Tracker) Unlocked() []Achievement {
	var out []Achievement
	for _, a := range tr.Achievements {
		if a.Unlocked {
			out = append(out, a)
		}
	}
	return out
}

func (tr Tracker) InProgress() []Achievement {
	var out []Achievement
	for _, a := range tr.Achievements {
		if !a.Unlocked && a.Progress > 0 {
			out = append(out, a)
		}
	}
	return out
}

// TotalRewards sums the listed rewards of unlocked achievements.
func (tr Tracker) TotalRewards() int {
	sum := 0
	for _, a := range tr.Unlocked() {
		sum += a.Reward
	}
	return sum
}

// TakeRecentUnlock returns and clears the name of the last unlock.
func (tr *Tracker) TakeRecentUnlock() string {
	name := tr.RecentUnlock
	tr.RecentUnlock = ""
	return name
}
