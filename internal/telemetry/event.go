package telemetry

type EventType string

const (
	EventCardPurchased       EventType = "card_purchased"
	EventOrderCreated        EventType = "order_created"
	EventOrderFulfilled      EventType = "order_fulfilled"
	EventOrderExpired        EventType = "order_expired"
	EventCardsExpired        EventType = "cards_expired"
	EventEntrySold           EventType = "entry_sold"
	EventDayTick             EventType = "day_tick"
	EventMarketEventStarted  EventType = "market_event_started"
	EventRandomEventFired    EventType = "random_event_fired"
	EventChoiceResolved      EventType = "choice_resolved"
	EventAchievementUnlocked EventType = "achievement_unlocked"
)

// Event is one recorded game occurrence, stamped with the game day.
type Event struct {
	ID       int       `json:"id"`
	Type     EventType `json:"type"`
	Day      int       `json:"day"`
	Metadata string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
