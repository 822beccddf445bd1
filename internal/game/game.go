package game

import (
	"fmt"
	"log"

	"cardempire/internal/achievement"
	"cardempire/internal/analytics"
	"cardempire/internal/config"
	"cardempire/internal/inventory"
	"cardempire/internal/market"
	"cardempire/internal/order"
	"cardempire/internal/randomevent"
	"cardempire/internal/telemetry"

	"github.com/dustin/go-humanize"
)

// Game is the simulation aggregate. Every mutation goes through its methods.
// It is not safe for concurrent use.
type Game struct {
	state    State
	balance  config.Balance
	log      *log.Logger
	recorder telemetry.Recorder
}

type Options struct {
	Logger   *log.Logger
	Recorder telemetry.Recorder
	// Balance defaults to config.Default() when zero.
	Balance config.Balance
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Recorder == nil {
		o.Recorder = telemetry.Discard{}
	}
	if o.Balance == (config.Balance{}) {
		o.Balance = config.Default()
	}
	return o
}

// New starts a fresh game with the starter inventory and opening orders.
func New(opts Options) *Game {
	opts = opts.withDefaults()
	g := &Game{
		balance:  opts.Balance,
		log:      opts.Logger,
		recorder: opts.Recorder,
	}
	g.state = newState(opts.Balance)

	g.state.Activity = ActivityLog{
		"Welcome to Gift Card Empire!",
		fmt.Sprintf("Starting with $%s capital", humanize.Comma(int64(opts.Balance.StartingCash))),
		"Visit the Market to buy your first cards",
	}

	for i := 0; i < opts.Balance.InitialOrders; i++ {
		g.generateOrder()
	}
	return g
}

func newState(b config.Balance) State {
	return State{
		Version:      SnapshotVersion,
		Account:      Account{Cash: b.StartingCash, Reputation: b.StartingReputation},
		Clock:        Clock{Day: 1, Hour: b.StartingHour},
		Inventory:    inventory.Starter(),
		Orders:       order.Book{},
		NextOrderID:  b.FirstOrderID,
		Market:       market.NewState(),
		Events:       randomevent.NewManager(),
		Achievements: achievement.NewTracker(),
		Analytics:    analytics.New(),
		Activity:     ActivityLog{},
	}
}

// Balance is the configuration the game runs with.
func (g *Game) Balance() config.Balance { return g.balance }

func (g *Game) note(msg string) {
	g.state.Activity.Add(msg)
}

func (g *Game) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if err := g.recorder.RecordEvent(g.state.Day, t, md); err != nil {
		g.log.Printf("telemetry: record %s: %v", t, err)
	}
}

// announce logs and records freshly unlocked achievements.
func (g *Game) announce(unlocked []achievement.Achievement) {
	for _, a := range unlocked {
		g.note(fmt.Sprintf("Achievement Unlocked: %s (+$%d)", a.Name, a.Reward))
		g.record(telemetry.EventAchievementUnlocked, telemetry.EventMetadata{
			"type":   string(a.Type),
			"name":   a.Name,
			"reward": a.Reward,
		})
	}
}
