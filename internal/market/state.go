package market

// State is the market side of the simulation: the current season and the
// scheduled events that move prices and demand.
type State struct {
	Season             Season  `json:"season"`
	ActiveEvents       []Event `json:"active_events"`
	BaseDemandModifier float64 `json:"base_demand_modifier"`
	NextEventInDays    int     `json:"next_event_in_days"`
}

func NewState() State {
	return State{
		Season:             Spring,
		ActiveEvents:       []Event{},
		BaseDemandModifier: Spring.DemandModifier(),
		NextEventInDays:    3 + (1 % 7),
	}
}

// DayReport describes what changed in the market during one daily tick.
type DayReport struct {
	SeasonChanged bool
	Ended         []Event
	Started       *Event
}

// UpdateSeason recomputes the season for day and reports whether it changed.
func (s *State) UpdateSeason(day int) bool {
	next := SeasonForDay(day)
	if next == s.Season {
		return false
	}
	s.Season = next
	s.BaseDemandModifier = next.DemandModifier()
	return true
}

// AgeEvents decrements every active event and drops the ones that ran out.
func (s *State) AgeEvents() []Event {
	var ended []Event
	kept := s.ActiveEvents[:0]
	for _, e := range s.ActiveEvents {
		if e.RemainingDays > 0 {
			e.RemainingDays--
		}
		if e.Expired() {
			ended = append(ended, e)
			continue
		}
		kept = append(kept, e)
	}
	s.ActiveEvents = kept
	return ended
}

// ProcessDay runs the market portion of the daily tick.
func (s *State) ProcessDay(day int) DayReport {
	var rep DayReport
	rep.SeasonChanged = s.UpdateSeason(day)
	rep.Ended = s.AgeEvents()

	if s.NextEventInDays > 0 {
		s.NextEventInDays--
		return rep
	}
	e := s.StartEvent(day)
	rep.Started = &e
	s.NextEventInDays = 5 + (day % 10)
	return rep
}

// StartEvent activates the palette event for day.
func (s *State) StartEvent(day int) Event {
	e := EventForDay(day)
	s.ActiveEvents = append(s.ActiveEvents, e)
	return e
}

func (s State) PriceMultiplier(r Retailer) float64 {
	m := s.Season.RetailerBonus(r)
	for _, e := range s.ActiveEvents {
		if e.Affects(r) {
			m *= e.PriceMultiplier
		}
	}
	return m
}

func (s State) DemandMultiplier(r Retailer) float64 {
	m := s.BaseDemandModifier * s.Season.RetailerBonus(r)
	for _, e := range s.ActiveEvents {
		if e.Affects(r) {
			m *= e.DemandMultiplier
		}
	}
	return m
}
