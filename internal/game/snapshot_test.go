package game

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"testing"

	"cardempire/internal/achievement"
	"cardempire/internal/market"
	"cardempire/internal/order"
	"cardempire/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playFewDays(g *Game) {
	for i := 0; i < 12; i++ {
		g.Purchase(i % 5)
		g.Fulfill(0)
		g.Advance(10 * 60)
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	g, _ := newGameForTest(t)
	playFewDays(g)

	data, err := g.Serialize()
	require.NoError(t, err)

	back, err := Deserialize(data)
	require.NoError(t, err)

	assert.Equal(t, g.Cash(), back.Cash())
	assert.Equal(t, g.Day(), back.Day())
	assert.Equal(t, g.Clock(), back.Clock())
	assert.Equal(t, g.Reputation(), back.Reputation())
	assert.Equal(t, g.Activity(), back.Activity())
	assert.Equal(t, g.Inventory(), back.Inventory())
	assert.Equal(t, g.Orders(), back.Orders())
	assert.Equal(t, g.state, back.state)
}

func TestDeserialize_RejectsGarbage(t *testing.T) {
	_, err := Deserialize([]byte("{not json"))
	require.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestDeserialize_RejectsBrokenInvariants(t *testing.T) {
	g, _ := newGameForTest(t)
	data, err := g.Serialize()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	raw["reputation"] = 9
	raw["cash"] = -5
	broken, err := json.Marshal(raw)
	require.NoError(t, err)

	_, err = Deserialize(broken)
	require.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.Contains(t, err.Error(), "reputation 9")
	assert.Contains(t, err.Error(), "cash -5")
}

func TestDeserialize_RejectsMissingInitialDeadline(t *testing.T) {
	g, _ := newGameForTest(t)
	g.state.Orders = order.Book{{
		ID: 1000, CustomerName: "Bob", Retailer: market.Amazon, Denomination: 25,
		Quantity: 1, OfferedPrice: 22, DeadlineDays: 3, Priority: order.Low,
	}}
	data, err := g.Serialize()
	require.NoError(t, err)

	_, err = Deserialize(data)
	require.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.Contains(t, err.Error(), "initial deadline 0 below remaining 3")
}

func TestDeserialize_RejectsInitialDeadlineBelowRemaining(t *testing.T) {
	g, _ := newGameForTest(t)
	g.state.Orders = order.Book{{
		ID: 1000, CustomerName: "Bob", Retailer: market.Amazon, Denomination: 25,
		Quantity: 1, OfferedPrice: 22, DeadlineDays: 4, InitialDeadlineDays: 2, Priority: order.Low,
	}}
	data, err := g.Serialize()
	require.NoError(t, err)

	_, err = Deserialize(data)
	require.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.Contains(t, err.Error(), "initial deadline 2 below remaining 4")
}

func TestDeserialize_RestoresMissingAchievements(t *testing.T) {
	g, _ := newGameForTest(t)
	list := g.state.Achievements.Achievements
	list[0].Unlocked = true
	list[0].UnlockedDay = 1
	list[0].Progress = list[0].Target
	g.state.Achievements.Achievements = list[:3]
	data, err := g.Serialize()
	require.NoError(t, err)

	back, err := Deserialize(data)
	require.NoError(t, err)
	restored := back.Achievements()
	require.Len(t, restored, len(achievement.Catalog()))
	assert.True(t, restored[0].Unlocked)
	assert.Equal(t, 1, restored[0].UnlockedDay)

	types := map[achievement.Type]bool{}
	for _, a := range restored {
		types[a.Type] = true
	}
	for _, a := range achievement.Catalog() {
		assert.True(t, types[a.Type], a.Type)
	}
}

func TestDeserialize_RejectsDuplicateAchievements(t *testing.T) {
	g, _ := newGameForTest(t)
	list := g.state.Achievements.Achievements
	g.state.Achievements.Achievements = append(list, list[0])
	data, err := g.Serialize()
	require.NoError(t, err)

	_, err = Deserialize(data)
	require.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.Contains(t, err.Error(), "duplicate achievement")
}

func TestRestore_FailureLeavesStateUntouched(t *testing.T) {
	g, _ := newGameForTest(t)
	before := g.state

	err := g.Restore([]byte(`{"version": 1, "reputation": 0}`))
	require.ErrorIs(t, err, ErrInvalidSnapshot)

	after := g.state
	assert.Equal(t, "Failed to load game", after.Activity[0])
	after.Activity = before.Activity
	assert.Equal(t, before, after)
}

func TestSaveToLoadFrom(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	g, _ := newGameForTest(t)
	playFewDays(g)

	require.NoError(t, g.SaveTo(ctx, s, "slot1"))
	assert.Equal(t, "Game saved successfully!", g.Activity()[0])
	saved := g.state

	other := New(Options{Logger: log.New(io.Discard, "", 0)})
	require.NoError(t, other.LoadFrom(ctx, s, "slot1"))
	assert.Equal(t, "Game loaded successfully!", other.Activity()[0])
	assert.Equal(t, saved.Cash, other.Cash())
	assert.Equal(t, saved.Inventory, other.Inventory())

	err := other.LoadFrom(ctx, s, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, "Failed to load game", other.Activity()[0])
}
