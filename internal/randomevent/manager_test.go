package randomevent

import (
	"testing"

	"cardempire/internal/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForDay_PaletteByDayMod15(t *testing.T) {
	assert.Equal(t, LoyalCustomer, ForDay(15).Type)
	assert.Equal(t, BusinessOffer, ForDay(10).Type)
	assert.Equal(t, CharityRequest, ForDay(26).Type)
	assert.Len(t, ForDay(26).Choices, 3)
	assert.Equal(t, CustomerSurvey, ForDay(14).Type)
	assert.True(t, ForDay(14).AutoResolve)
	assert.False(t, ForDay(13).AutoResolve)
}

func TestApplyChoice_Table(t *testing.T) {
	o := ApplyChoice(BusinessOffer, 0)
	assert.Equal(t, -1000, o.CashDelta)
	require.Len(t, o.Modifiers, 1)
	assert.Equal(t, "Business Partnership", o.Modifiers[0].Name)
	assert.InDelta(t, 0.9, o.Modifiers[0].PriceMultiplier, 1e-9)
	assert.Equal(t, 14, o.Modifiers[0].RemainingDays)

	o = ApplyChoice(CharityRequest, 1)
	assert.Equal(t, 1, o.ReputationDelta)
	assert.Equal(t, []InventoryImpact{{Retailer: market.Amazon, Quantity: -2}}, o.InventoryImpact)

	o = ApplyChoice(CompetitorMeeting, 1)
	assert.Equal(t, -200, o.CashDelta)
	require.Len(t, o.Modifiers, 1)
	assert.InDelta(t, 0.8, o.Modifiers[0].DemandMultiplier, 1e-9)

	assert.Equal(t, Outcome{}, ApplyChoice(BusinessOffer, 2))
	assert.Equal(t, Outcome{}, ApplyChoice(LoyalCustomer, 0))
}

func TestResolve_AutoEventAppliesPaletteImpact(t *testing.T) {
	o := ForDay(2).Resolve(0)
	assert.Equal(t, 500, o.CashDelta)
	assert.Equal(t, 1, o.ReputationDelta)
	require.Len(t, o.Modifiers, 1)
	assert.Equal(t, "Media Buzz", o.Modifiers[0].Name)
	assert.InDelta(t, 1.2, o.Modifiers[0].DemandMultiplier, 1e-9)
	assert.False(t, o.Modifiers[0].ReputationProtection)

	o = ForDay(9).Resolve(0)
	assert.Equal(t, -600, o.CashDelta)
	assert.Empty(t, o.Modifiers)
}

func TestManager_CountdownThenAutoEvent(t *testing.T) {
	m := NewManager()
	for day := 2; day <= 5; day++ {
		rep := m.Tick(day)
		assert.Nil(t, rep.Fired, "day %d", day)
	}

	rep := m.Tick(6)
	require.NotNil(t, rep.Fired)
	assert.Equal(t, "Customer Complaint", rep.Fired.Title)
	require.NotNil(t, rep.Applied)
	assert.Equal(t, -400, rep.Applied.CashDelta)
	assert.Nil(t, m.Pending)
	assert.Equal(t, 13, m.NextEventInDays)
	assert.Equal(t, []string{"Day 6: Customer Complaint"}, m.History)
}

func TestManager_ChoiceAutoResolvesAtDeadline(t *testing.T) {
	m := NewManager()
	m.NextEventInDays = 0

	rep := m.Tick(10)
	require.NotNil(t, rep.Fired)
	assert.Nil(t, rep.Applied)
	require.NotNil(t, m.Pending)
	assert.Equal(t, 12, m.ChoiceDeadline)
	assert.Equal(t, 17, m.NextEventInDays)

	rep = m.Tick(11)
	assert.Nil(t, rep.AutoResolved)
	assert.Equal(t, 17, m.NextEventInDays, "countdown holds while a choice is pending")

	rep = m.Tick(12)
	require.NotNil(t, rep.AutoResolved)
	assert.Equal(t, "Partnership Proposal", rep.AutoResolved.Title)
	assert.Equal(t, -1000, rep.AutoResolved.CashDelta)
	assert.Nil(t, m.Pending)
	assert.Equal(t, 16, m.NextEventInDays)
	assert.InDelta(t, 0.9, m.PriceMultiplier(), 1e-9)
}

func TestManager_MakeChoice(t *testing.T) {
	m := NewManager()
	_, ok := m.MakeChoice(0)
	assert.False(t, ok)

	m.NextEventInDays = 0
	m.Tick(13)
	o, ok := m.MakeChoice(0)
	require.True(t, ok)
	assert.Equal(t, "Competitor Conference", o.Title)
	assert.InDelta(t, 1.3, m.DemandMultiplier(), 1e-9)

	_, ok = m.MakeChoice(1)
	assert.False(t, ok)
}

func TestManager_ModifiersAgeOut(t *testing.T) {
	m := NewManager()
	m.NextEventInDays = 50
	m.Modifiers = []Modifier{
		{Name: "Short", PriceMultiplier: 0.5, DemandMultiplier: 1, RemainingDays: 1},
		{Name: "Long", PriceMultiplier: 1, DemandMultiplier: 1.3, RemainingDays: 2},
	}

	rep := m.Tick(3)
	require.Len(t, rep.EndedModifiers, 1)
	assert.Equal(t, "Short", rep.EndedModifiers[0].Name)
	assert.InDelta(t, 1.0, m.PriceMultiplier(), 1e-9)
	assert.InDelta(t, 1.3, m.DemandMultiplier(), 1e-9)

	m.Tick(4)
	assert.Empty(t, m.Modifiers)
	assert.InDelta(t, 1.0, m.DemandMultiplier(), 1e-9)
}

func TestManager_HistoryKeepsLastTen(t *testing.T) {
	m := NewManager()
	for day := 1; day <= 12; day++ {
		m.NextEventInDays = 0
		if m.Pending != nil {
			m.MakeChoice(1)
		}
		m.Tick(day)
	}
	require.Len(t, m.History, 10)
	assert.Equal(t, "Day 3: Inventory Audit Bonus", m.History[0])
}
