package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cardempire/internal/achievement"
	"cardempire/internal/analytics"
	"cardempire/internal/inventory"
	"cardempire/internal/market"
	"cardempire/internal/order"
	"cardempire/internal/randomevent"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// SlotStore persists serialized games under named slots.
type SlotStore interface {
	Save(ctx context.Context, slot string, data []byte) error
	Load(ctx context.Context, slot string) ([]byte, error)
}

func (g *Game) Serialize() ([]byte, error) {
	return json.MarshalIndent(g.state, "", "  ")
}

// Deserialize rebuilds a game from a snapshot using default options.
func Deserialize(data []byte) (*Game, error) {
	return DeserializeWith(data, Options{})
}

func DeserializeWith(data []byte, opts Options) (*Game, error) {
	st, err := decodeState(data)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	return &Game{state: st, balance: opts.Balance, log: opts.Logger, recorder: opts.Recorder}, nil
}

// Restore replaces the game with a snapshot. On failure the game keeps its
// state and only the activity log records the failed load.
func (g *Game) Restore(data []byte) error {
	st, err := decodeState(data)
	if err != nil {
		g.note("Failed to load game")
		g.log.Printf("restore: %v", err)
		return err
	}
	g.state = st
	return nil
}

func (g *Game) SaveTo(ctx context.Context, store SlotStore, slot string) error {
	data, err := g.Serialize()
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	if err := store.Save(ctx, slot, data); err != nil {
		return fmt.Errorf("save slot %q: %w", slot, err)
	}
	g.note("Game saved successfully!")
	return nil
}

func (g *Game) LoadFrom(ctx context.Context, store SlotStore, slot string) error {
	data, err := store.Load(ctx, slot)
	if err != nil {
		g.note("Failed to load game")
		return fmt.Errorf("load slot %q: %w", slot, err)
	}
	if err := g.Restore(data); err != nil {
		return err
	}
	g.note("Game loaded successfully!")
	return nil
}

func decodeState(data []byte) (State, error) {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	st.normalize()
	if err := st.Validate(); err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return st, nil
}

// normalize replaces absent collections with empty ones and restores
// achievements missing from the catalog.
func (s *State) normalize() {
	if s.Inventory == nil {
		s.Inventory = inventory.Ledger{}
	}
	if s.Orders == nil {
		s.Orders = order.Book{}
	}
	if s.Activity == nil {
		s.Activity = ActivityLog{}
	}
	if s.Market.ActiveEvents == nil {
		s.Market.ActiveEvents = []market.Event{}
	}
	if s.Events.History == nil {
		s.Events.History = []string{}
	}
	if s.Events.Modifiers == nil {
		s.Events.Modifiers = []randomevent.Modifier{}
	}
	have := make(map[achievement.Type]bool, len(s.Achievements.Achievements))
	for _, a := range s.Achievements.Achievements {
		have[a.Type] = true
	}
	for _, a := range achievement.Catalog() {
		if !have[a.Type] {
			s.Achievements.Achievements = append(s.Achievements.Achievements, a)
		}
	}
	if s.Achievements.SeasonsSeen == nil {
		s.Achievements.SeasonsSeen = []market.Season{}
	}
	if len(s.Analytics.DailyRevenues) == 0 {
		s.Analytics.DailyRevenues = analytics.New().DailyRevenues
	}
	if s.Analytics.ProfitMargins == nil {
		s.Analytics.ProfitMargins = []float64{}
	}
}

// Validate reports every broken invariant in s.
func (s State) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if s.Version < 1 || s.Version > SnapshotVersion {
		bad("unsupported version %d", s.Version)
	}
	if s.Cash < 0 {
		bad("cash %d is negative", s.Cash)
	}
	if s.Reputation < MinReputation || s.Reputation > MaxReputation {
		bad("reputation %d outside %d..%d", s.Reputation, MinReputation, MaxReputation)
	}
	if s.Day < 1 {
		bad("day %d before day 1", s.Day)
	}
	if s.Hour < 0 || s.Hour > 23 || s.Minute < 0 || s.Minute > 59 {
		bad("time %02d:%02d out of range", s.Hour, s.Minute)
	}
	if len(s.Activity) > ActivityLimit {
		bad("activity log holds %d entries", len(s.Activity))
	}

	for i, e := range s.Inventory {
		switch {
		case !e.Card.Retailer.Valid():
			bad("inventory[%d]: unknown retailer %q", i, e.Card.Retailer)
		case e.Quantity <= 0:
			bad("inventory[%d]: quantity %d", i, e.Quantity)
		case e.Card.Denomination <= 0 || e.Card.PurchasePrice < 0:
			bad("inventory[%d]: denomination %d at cost %d", i, e.Card.Denomination, e.Card.PurchasePrice)
		case e.Card.DaysUntilExpiration <= 0:
			bad("inventory[%d]: already expired", i)
		}
	}

	ids := make(map[int]bool, len(s.Orders))
	for i, o := range s.Orders {
		switch {
		case !o.Retailer.Valid():
			bad("orders[%d]: unknown retailer %q", i, o.Retailer)
		case o.Quantity <= 0 || o.OfferedPrice < 0:
			bad("orders[%d]: quantity %d at %d", i, o.Quantity, o.OfferedPrice)
		case o.DeadlineDays <= 0:
			bad("orders[%d]: deadline %d", i, o.DeadlineDays)
		case o.InitialDeadlineDays < o.DeadlineDays:
			bad("orders[%d]: initial deadline %d below remaining %d", i, o.InitialDeadlineDays, o.DeadlineDays)
		case !o.Priority.Valid():
			bad("orders[%d]: priority %q", i, o.Priority)
		case ids[o.ID]:
			bad("orders[%d]: duplicate id %d", i, o.ID)
		case o.ID >= s.NextOrderID:
			bad("orders[%d]: id %d not below next id %d", i, o.ID, s.NextOrderID)
		}
		ids[o.ID] = true
	}

	if !s.Market.Season.Valid() {
		bad("unknown season %q", s.Market.Season)
	}
	if s.Market.NextEventInDays < 0 {
		bad("market event countdown %d", s.Market.NextEventInDays)
	}
	for i, e := range s.Market.ActiveEvents {
		if e.RemainingDays <= 0 {
			bad("market event %d (%s) already ended", i, e.Name)
		}
		if e.Retailer != "" && !e.Retailer.Valid() {
			bad("market event %d: unknown retailer %q", i, e.Retailer)
		}
	}

	if s.Events.NextEventInDays < 0 {
		bad("random event countdown %d", s.Events.NextEventInDays)
	}
	for i, m := range s.Events.Modifiers {
		if m.RemainingDays <= 0 {
			bad("modifier %d (%s) already ended", i, m.Name)
		}
	}

	known := map[achievement.Type]bool{}
	for _, a := range achievement.Catalog() {
		known[a.Type] = true
	}
	seen := map[achievement.Type]bool{}
	for _, a := range s.Achievements.Achievements {
		switch {
		case !known[a.Type]:
			bad("unknown achievement %q", a.Type)
		case seen[a.Type]:
			bad("duplicate achievement %q", a.Type)
		default:
			seen[a.Type] = true
		}
	}
	if len(seen) != len(known) {
		bad("achievement list holds %d of %d catalog entries", len(seen), len(known))
	}

	if n := len(s.Analytics.DailyRevenues); n > analytics.WindowDays {
		bad("analytics window holds %d days", n)
	}

	return errors.Join(errs...)
}
