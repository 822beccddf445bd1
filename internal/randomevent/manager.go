package randomevent

import "fmt"

const (
	// ChoiceWindowDays is how long the player has to answer a choice event.
	ChoiceWindowDays = 2
	historyLimit     = 10
)

// Manager schedules narrative events and owns the modifiers they leave behind.
type Manager struct {
	Pending         *Event     `json:"pending,omitempty"`
	ChoiceDeadline  int        `json:"choice_deadline"`
	NextEventInDays int        `json:"next_event_in_days"`
	History         []string   `json:"history"`
	Modifiers       []Modifier `json:"modifiers"`
}

func NewManager() Manager {
	return Manager{
		NextEventInDays: 3 + (1 % 5),
		History:         []string{},
		Modifiers:       []Modifier{},
	}
}

// TickReport describes what the manager did during one daily tick.
type TickReport struct {
	EndedModifiers []Modifier
	// AutoResolved is set when a pending choice ran past its deadline.
	AutoResolved *Outcome
	Fired        *Event
	// Applied is set when the fired event resolved on its own.
	Applied *Outcome
}

// Tick ages modifiers, force-resolves an overdue choice and fires the next
// event when its countdown is up.
func (m *Manager) Tick(day int) TickReport {
	var rep TickReport
	rep.EndedModifiers = m.ageModifiers()

	if m.Pending != nil && day >= m.ChoiceDeadline {
		o := m.resolvePending(0)
		rep.AutoResolved = &o
	}

	if m.Pending != nil {
		return rep
	}
	if m.NextEventInDays > 0 {
		m.NextEventInDays--
		return rep
	}

	e := ForDay(day)
	m.NextEventInDays = 7 + day%14
	m.History = append(m.History, fmt.Sprintf("Day %d: %s", day, e.Title))
	if len(m.History) > historyLimit {
		m.History = m.History[len(m.History)-historyLimit:]
	}
	rep.Fired = &e

	if e.AutoResolve {
		o := e.Resolve(0)
		m.Modifiers = append(m.Modifiers, o.Modifiers...)
		rep.Applied = &o
		return rep
	}
	m.Pending = &e
	m.ChoiceDeadline = day + ChoiceWindowDays
	return rep
}

// MakeChoice resolves the pending event with the given choice.
func (m *Manager) MakeChoice(choice int) (Outcome, bool) {
	if m.Pending == nil {
		return Outcome{}, false
	}
	return m.resolvePending(choice), true
}

func (m *Manager) resolvePending(choice int) Outcome {
	o := m.Pending.Resolve(choice)
	m.Modifiers = append(m.Modifiers, o.Modifiers...)
	m.Pending = nil
	m.ChoiceDeadline = 0
	return o
}

func (m *Manager) ageModifiers() []Modifier {
	var ended []Modifier
	kept := m.Modifiers[:0]
	for _, mod := range m.Modifiers {
		if mod.RemainingDays > 0 {
			mod.RemainingDays--
		}
		if mod.Expired() {
			ended = append(ended, mod)
			continue
		}
		kept = append(kept, mod)
	}
	m.Modifiers = kept
	return ended
}

func (m Manager) PriceMultiplier() float64 {
	p := 1.0
	for _, mod := range m.Modifiers {
		p *= mod.PriceMultiplier
	}
	return p
}

func (m Manager) DemandMultiplier() float64 {
	d := 1.0
	for _, mod := range m.Modifiers {
		d *= mod.DemandMultiplier
	}
	return d
}

