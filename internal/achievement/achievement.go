package achievement

type Type string

const (
	FirstSale            Type = "FirstSale"
	EarlyBird            Type = "EarlyBird"
	Entrepreneur         Type = "Entrepreneur"
	BusinessMogul        Type = "BusinessMogul"
	Millionaire          Type = "Millionaire"
	PerfectWeek          Type = "PerfectWeek"
	SpeedDemon           Type = "SpeedDemon"
	Efficiency           Type = "Efficiency"
	MarketMaster         Type = "MarketMaster"
	LegendaryStatus      Type = "LegendaryStatus"
	CustomerFavorite     Type = "CustomerFavorite"
	TrustedSeller        Type = "TrustedSeller"
	WinterWinner         Type = "WinterWinner"
	SeasonVeteran        Type = "SeasonVeteran"
	EventSurvivor        Type = "EventSurvivor"
	Collector            Type = "Collector"
	DiversifiedPortfolio Type = "DiversifiedPortfolio"
	QuickTurnaround      Type = "QuickTurnaround"
)

// Achievement is a progress goal. Once unlocked it no longer changes.
type Achievement struct {
	Type        Type   `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Target      int    `json:"target"`
	Progress    int    `json:"progress"`
	Unlocked    bool   `json:"unlocked"`
	UnlockedDay int    `json:"unlocked_day,omitempty"`
	Reward      int    `json:"reward"`
}

// ProgressPercent is progress toward the target, capped at 100.
func (a Achievement) ProgressPercent() int {
	if a.Unlocked || a.Target <= 0 {
		return 100
	}
	return min(100, a.Progress*100/a.Target)
}

func def(t Type, name, description string, target, reward int) Achievement {
	return Achievement{Type: t, Name: name, Description: description, Target: target, Reward: reward}
}

// Catalog returns a fresh copy of every achievement, all locked.
func Catalog() []Achievement {
	return []Achievement{
		def(FirstSale, "First Sale", "Complete your first customer order", 1, 100),
		def(EarlyBird, "Early Bird", "Complete your first 10 orders", 10, 500),
		def(Entrepreneur, "Entrepreneur", "Accumulate $10,000 in cash", 10000, 1000),
		def(BusinessMogul, "Business Mogul", "Accumulate $50,000 in cash", 50000, 5000),
		def(Millionaire, "Millionaire", "Accumulate $1,000,000 in cash", 1000000, 50000),

		def(PerfectWeek, "Perfect Week", "7 consecutive days with 100% order completion", 7, 2000),
		def(SpeedDemon, "Speed Demon", "Fulfill 5 orders in a single day", 5, 1500),
		def(Efficiency, "Efficiency Expert", "Maintain 90%+ success rate for 30 days", 30, 3000),
		def(MarketMaster, "Market Master", "Make purchases during 5 favorable market events", 5, 2500),

		def(LegendaryStatus, "Legendary Status", "Reach maximum 5-star reputation", 5, 2000),
		def(CustomerFavorite, "Customer Favorite", "Complete 100 customer orders", 100, 3000),
		def(TrustedSeller, "Trusted Seller", "Complete 500 customer orders", 500, 10000),

		def(WinterWinner, "Winter Winner", "Earn $5,000 profit during Winter season", 5000, 2000),
		def(SeasonVeteran, "Season Veteran", "Experience all 4 seasons", 4, 3000),
		def(EventSurvivor, "Event Survivor", "Survive 10 market events", 10, 2500),

		def(Collector, "Collector", "Own 100+ gift cards simultaneously", 100, 2000),
		def(DiversifiedPortfolio, "Diversified Portfolio", "Own cards from all 5 retailers", 5, 1000),
		def(QuickTurnaround, "Quick Turnaround", "Sell inventory within 3 days of purchase", 1, 1500),
	}
}
