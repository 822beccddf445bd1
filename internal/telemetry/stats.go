package telemetry

import "encoding/json"

type Stats struct {
	SinceDay            int               `json:"since_day"`
	EventCounts         map[EventType]int `json:"event_counts"`
	DayTicks            int               `json:"day_ticks"`
	OrdersFulfilled     int               `json:"orders_fulfilled"`
	OrdersExpired       int               `json:"orders_expired"`
	OrdersPerDay        float64           `json:"orders_per_day"`
	ExpiredPerDay       float64           `json:"expired_per_day"`
	CardsPurchased      int               `json:"cards_purchased"`
	PurchasesByRetailer map[string]int    `json:"purchases_by_retailer"`
	OrderRevenue        int               `json:"order_revenue"`
	SaleRevenue         int               `json:"sale_revenue"`
	CardsExpired        int               `json:"cards_expired"`
	Achievements        []string          `json:"achievements"`
	RandomEvents        map[string]int    `json:"random_events"`
}

// CalculateStats computes balance stats from events
func CalculateStats(events []Event, sinceDay int) (Stats, error) {
	stats := Stats{
		SinceDay:            sinceDay,
		EventCounts:         make(map[EventType]int),
		PurchasesByRetailer: make(map[string]int),
		Achievements:        []string{},
		RandomEvents:        make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventDayTick:
			stats.DayTicks++
		case EventOrderFulfilled:
			stats.OrdersFulfilled++
			stats.OrderRevenue += intField(metadata, "earnings")
		case EventOrderExpired:
			stats.OrdersExpired++
		case EventEntrySold:
			stats.SaleRevenue += intField(metadata, "revenue")
		case EventCardsExpired:
			stats.CardsExpired += intField(metadata, "quantity")
		case EventCardPurchased:
			stats.CardsPurchased++
			if r, ok := metadata["retailer"].(string); ok {
				stats.PurchasesByRetailer[r]++
			}
		case EventAchievementUnlocked:
			if name, ok := metadata["name"].(string); ok {
				stats.Achievements = append(stats.Achievements, name)
			}
		case EventRandomEventFired:
			if title, ok := metadata["title"].(string); ok {
				stats.RandomEvents[title]++
			}
		}
	}

	// Calculate per-day rates
	if stats.DayTicks > 0 {
		stats.OrdersPerDay = float64(stats.OrdersFulfilled) / float64(stats.DayTicks)
		stats.ExpiredPerDay = float64(stats.OrdersExpired) / float64(stats.DayTicks)
	}

	return stats, nil
}

// JSON numbers decode as float64.
func intField(m EventMetadata, key string) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return 0
}
