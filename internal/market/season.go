package market

type Season string

const (
	Spring Season = "Spring"
	Summer Season = "Summer"
	Fall   Season = "Fall"
	Winter Season = "Winter"
)

const (
	daysPerSeason = 90
	daysPerYear   = 360
)

// SeasonForDay maps a 1-based game day onto a 360-day year of four 90-day seasons.
func SeasonForDay(day int) Season {
	if day < 1 {
		return Spring
	}
	switch ((day - 1) % daysPerYear) / daysPerSeason {
	case 0:
		return Spring
	case 1:
		return Summer
	case 2:
		return Fall
	default:
		return Winter
	}
}

func (s Season) Valid() bool {
	switch s {
	case Spring, Summer, Fall, Winter:
		return true
	}
	return false
}

// DemandModifier is the seasonal baseline applied to all order demand.
func (s Season) DemandModifier() float64 {
	switch s {
	case Summer:
		return 1.1
	case Fall:
		return 0.9
	case Winter:
		return 1.4
	default:
		return 1.0
	}
}

// RetailerBonus scales both price and demand for a retailer in this season.
func (s Season) RetailerBonus(r Retailer) float64 {
	switch s {
	case Summer:
		switch r {
		case Target:
			return 1.2
		case Walmart:
			return 1.1
		}
	case Fall:
		switch r {
		case ITunes:
			return 1.3
		case Amazon:
			return 1.2
		}
	case Winter:
		switch r {
		case Amazon:
			return 1.5
		case Starbucks:
			return 1.3
		case ITunes:
			return 1.4
		default:
			return 1.2
		}
	}
	return 1.0
}
