package telemetry

import (
	"encoding/json"
	"sync"
)

// Recorder receives game events.
type Recorder interface {
	RecordEvent(day int, eventType EventType, metadata EventMetadata) error
}

// Repository stores telemetry events
type Repository interface {
	Recorder
	GetEvents(sinceDay int, eventTypes []EventType) ([]Event, error)
	Clear() error
}

// MemoryRepository stores events in memory (dev/test use)
type MemoryRepository struct {
	mu     sync.RWMutex
	events []Event
	nextID int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		events: make([]Event, 0),
		nextID: 1,
	}
}

func (r *MemoryRepository) RecordEvent(day int, eventType EventType, metadata EventMetadata) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, Event{
		ID:       r.nextID,
		Type:     eventType,
		Day:      day,
		Metadata: string(metadataJSON),
	})
	r.nextID++

	return nil
}

func (r *MemoryRepository) GetEvents(sinceDay int, eventTypes []EventType) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeFilter := make(map[EventType]bool)
	for _, t := range eventTypes {
		typeFilter[t] = true
	}

	result := make([]Event, 0)
	for _, event := range r.events {
		if event.Day < sinceDay {
			continue
		}
		if len(eventTypes) > 0 && !typeFilter[event.Type] {
			continue
		}
		result = append(result, event)
	}

	return result, nil
}

func (r *MemoryRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = make([]Event, 0)
	r.nextID = 1

	return nil
}

// Discard drops every event.
type Discard struct{}

func (Discard) RecordEvent(int, EventType, EventMetadata) error { return nil }
