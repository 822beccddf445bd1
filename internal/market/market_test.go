package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonForDay(t *testing.T) {
	cases := map[int]Season{
		1:   Spring,
		90:  Spring,
		91:  Summer,
		100: Summer,
		200: Fall,
		271: Winter,
		300: Winter,
		360: Winter,
		361: Spring,
	}
	for day, want := range cases {
		assert.Equal(t, want, SeasonForDay(day), "day %d", day)
	}
}

func TestPriceMultiplier_NoEventsEqualsSeasonBonus(t *testing.T) {
	for _, season := range []Season{Spring, Summer, Fall, Winter} {
		s := State{Season: season, BaseDemandModifier: season.DemandModifier()}
		for _, r := range Retailers {
			assert.Equal(t, season.RetailerBonus(r), s.PriceMultiplier(r), "%s/%s", season, r)
		}
	}
}

func TestMultipliers_ApplyScopedEvents(t *testing.T) {
	s := State{Season: Winter, BaseDemandModifier: Winter.DemandModifier()}
	s.ActiveEvents = []Event{
		EventForDay(3), // Amazon Prime Day
		EventForDay(2), // Supply Chain Issues, global
	}

	assert.InDelta(t, 1.5*0.85*1.3, s.PriceMultiplier(Amazon), 1e-9)
	assert.InDelta(t, 1.3*1.3, s.PriceMultiplier(Starbucks), 1e-9)
	assert.InDelta(t, 1.4*1.5*2.0*0.7, s.DemandMultiplier(Amazon), 1e-9)
	assert.InDelta(t, 1.4*1.2*0.7, s.DemandMultiplier(Target), 1e-9)
}

func TestAgeEvents_RemovesWhenRemainingHitsZero(t *testing.T) {
	s := NewState()
	s.ActiveEvents = []Event{
		{Name: "Short", RemainingDays: 1, DurationDays: 3, PriceMultiplier: 1, DemandMultiplier: 1},
		{Name: "Long", RemainingDays: 4, DurationDays: 4, PriceMultiplier: 1, DemandMultiplier: 1},
	}

	ended := s.AgeEvents()
	require.Len(t, ended, 1)
	assert.Equal(t, "Short", ended[0].Name)
	require.Len(t, s.ActiveEvents, 1)
	assert.Equal(t, 3, s.ActiveEvents[0].RemainingDays)
}

func TestProcessDay_CountdownAndReseed(t *testing.T) {
	s := NewState()
	assert.Equal(t, 4, s.NextEventInDays)

	for day := 2; day <= 5; day++ {
		rep := s.ProcessDay(day)
		assert.Nil(t, rep.Started, "day %d", day)
	}
	assert.Equal(t, 0, s.NextEventInDays)

	rep := s.ProcessDay(6)
	require.NotNil(t, rep.Started)
	assert.Equal(t, "Walmart Expansion", rep.Started.Name)
	assert.Equal(t, 5+6%10, s.NextEventInDays)
	assert.Len(t, s.ActiveEvents, 1)
}

func TestUpdateSeason_SetsBaseDemand(t *testing.T) {
	s := NewState()
	assert.False(t, s.UpdateSeason(10))
	assert.True(t, s.UpdateSeason(300))
	assert.Equal(t, Winter, s.Season)
	assert.Equal(t, 1.4, s.BaseDemandModifier)
}

func TestPurchasePrice_Rounds(t *testing.T) {
	assert.Equal(t, 20, PurchasePrice(20, 1.0))
	assert.Equal(t, 17, PurchasePrice(20, 0.85))
	assert.Equal(t, 30, PurchasePrice(20, 1.5))
	assert.Equal(t, 9, PurchasePrice(8, 1.1))
}

func TestMatchRetailer(t *testing.T) {
	r, ok := MatchRetailer("itunes")
	require.True(t, ok)
	assert.Equal(t, ITunes, r)

	r, ok = MatchRetailer("amzn")
	require.True(t, ok)
	assert.Equal(t, Amazon, r)

	_, ok = MatchRetailer("   ")
	assert.False(t, ok)

	_, ok = MatchRetailer("zzzz")
	assert.False(t, ok)
}
