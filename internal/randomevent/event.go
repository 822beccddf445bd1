package randomevent

import "cardempire/internal/market"

type Type string

const (
	LoyalCustomer     Type = "LoyalCustomer"
	SupplierDiscount  Type = "SupplierDiscount"
	MediaAttention    Type = "MediaAttention"
	LuckyFind         Type = "LuckyFind"
	TechGlitch        Type = "TechGlitch"
	CardTheft         Type = "CardTheft"
	CustomerComplaint Type = "CustomerComplaint"
	SupplierIssue     Type = "SupplierIssue"
	MarketCrash       Type = "MarketCrash"
	RegulationChange  Type = "RegulationChange"
	BusinessOffer     Type = "BusinessOffer"
	CharityRequest    Type = "CharityRequest"
	InventoryAudit    Type = "InventoryAudit"
	CompetitorMeeting Type = "CompetitorMeeting"
	CustomerSurvey    Type = "CustomerSurvey"
)

// InventoryImpact changes the holdings of one retailer; negative removes cards.
type InventoryImpact struct {
	Retailer market.Retailer `json:"retailer"`
	Quantity int             `json:"quantity"`
}

// Event is a narrative event. Auto events resolve the moment they fire;
// the rest wait for the player to pick one of Choices.
type Event struct {
	Type             Type              `json:"type"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Choices          []string          `json:"choices,omitempty"`
	AutoResolve      bool              `json:"auto_resolve"`
	CashImpact       int               `json:"cash_impact"`
	ReputationImpact int               `json:"reputation_impact"`
	InventoryImpact  []InventoryImpact `json:"inventory_impact,omitempty"`
	DurationDays     int               `json:"duration_days"`
	Active           bool              `json:"active"`
}

// Modifier is a temporary global effect left behind by an event.
type Modifier struct {
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	PriceMultiplier      float64 `json:"price_multiplier"`
	DemandMultiplier     float64 `json:"demand_multiplier"`
	ReputationProtection bool    `json:"reputation_protection"`
	RemainingDays        int     `json:"remaining_days"`
}

func (m Modifier) Expired() bool { return m.RemainingDays <= 0 }

// Outcome is what resolving an event does to the business.
type Outcome struct {
	Title           string            `json:"title"`
	CashDelta       int               `json:"cash_delta"`
	ReputationDelta int               `json:"reputation_delta"`
	InventoryImpact []InventoryImpact `json:"inventory_impact,omitempty"`
	Modifiers       []Modifier        `json:"modifiers,omitempty"`
}

func auto(t Type, title, description string, cash, reputation, duration int) Event {
	return Event{
		Type:             t,
		Title:            title,
		Description:      description,
		AutoResolve:      true,
		CashImpact:       cash,
		ReputationImpact: reputation,
		DurationDays:     duration,
		Active:           true,
	}
}

func choice(t Type, title, description string, choices ...string) Event {
	return Event{
		Type:         t,
		Title:        title,
		Description:  description,
		Choices:      choices,
		DurationDays: 1,
		Active:       true,
	}
}

// ForDay picks from the fifteen-entry palette by day mod 15.
func ForDay(day int) Event {
	switch day % 15 {
	case 0:
		return auto(LoyalCustomer, "Loyal Customer Returns",
			"A satisfied customer wants to buy $2000 worth of gift cards at premium prices!", 2000, 1, 1)
	case 1:
		return auto(SupplierDiscount, "Supplier Discount",
			"Your supplier offers 15% off your next 3 purchases due to good relationship!", 0, 0, 1)
	case 2:
		return auto(MediaAttention, "Positive Media Coverage",
			"Local news features your business! Reputation increases and more customers arrive.", 500, 1, 3)
	case 3:
		return auto(LuckyFind, "Inventory Audit Bonus",
			"During inventory count, you discover some cards are worth more than expected!", 800, 0, 1)
	case 4:
		return auto(TechGlitch, "Competitor System Down",
			"Major online competitor experiences technical issues. Customers flock to you!", 0, 0, 2)
	case 5:
		return auto(CardTheft, "Security Incident",
			"Unfortunately, some inventory was stolen. Insurance covers part of the loss.", -300, -1, 1)
	case 6:
		return auto(CustomerComplaint, "Customer Complaint",
			"An unsatisfied customer posts negative reviews. You compensate to maintain reputation.", -400, -1, 1)
	case 7:
		return auto(SupplierIssue, "Supplier Price Increase",
			"Your main supplier raises prices due to increased demand. Costs go up temporarily.", 0, 0, 5)
	case 8:
		return auto(MarketCrash, "Market Downturn",
			"Economic uncertainty affects gift card values. Customer demand drops temporarily.", 0, 0, 4)
	case 9:
		return auto(RegulationChange, "New Regulations",
			"Government introduces new gift card regulations. Compliance costs required.", -600, 0, 1)
	case 10:
		return choice(BusinessOffer, "Partnership Proposal",
			"Another gift card business proposes a partnership. Split costs but share profits.",
			"Accept partnership (-$1000, get purchase discount)",
			"Decline and stay independent (+reputation)")
	case 11:
		return choice(CharityRequest, "Charity Fundraiser",
			"Local charity asks for donation. Good for reputation but costs money or inventory.",
			"Donate $500 cash (++reputation)",
			"Donate 2 Amazon cards (+reputation)",
			"Politely decline (-reputation)")
	case 12:
		return auto(InventoryAudit, "Surprise Inventory Check",
			"Accounting review reveals minor discrepancies. Small penalty but processes improved.", -200, 0, 1)
	case 13:
		return choice(CompetitorMeeting, "Competitor Conference",
			"Industry meeting with other gift card sellers. Choose your approach.",
			"Collaborate for mutual benefit (+demand)",
			"Compete aggressively (price war)")
	default:
		return auto(CustomerSurvey, "Customer Feedback Survey",
			"Customer survey results show satisfaction with your service. Reputation boost!", 0, 1, 1)
	}
}

// ApplyChoice is the effect table for choice events. Any other event or
// choice index has no effect.
func ApplyChoice(t Type, choice int) Outcome {
	var o Outcome
	switch {
	case t == BusinessOffer && choice == 0:
		o.CashDelta = -1000
		o.Modifiers = []Modifier{{
			Name:             "Business Partnership",
			Description:      "10% discount on purchases",
			PriceMultiplier:  0.9,
			DemandMultiplier: 1.0,
			RemainingDays:    14,
		}}
	case t == BusinessOffer && choice == 1:
		o.ReputationDelta = 1
	case t == CharityRequest && choice == 0:
		o.CashDelta = -500
		o.ReputationDelta = 2
	case t == CharityRequest && choice == 1:
		o.ReputationDelta = 1
		o.InventoryImpact = []InventoryImpact{{Retailer: market.Amazon, Quantity: -2}}
	case t == CharityRequest && choice == 2:
		o.ReputationDelta = -1
	case t == CompetitorMeeting && choice == 0:
		o.Modifiers = []Modifier{{
			Name:             "Market Collaboration",
			Description:      "Increased customer demand",
			PriceMultiplier:  1.0,
			DemandMultiplier: 1.3,
			RemainingDays:    10,
		}}
	case t == CompetitorMeeting && choice == 1:
		o.CashDelta = -200
		o.Modifiers = []Modifier{{
			Name:             "Price War",
			Description:      "Cheaper purchases but lower demand",
			PriceMultiplier:  0.85,
			DemandMultiplier: 0.8,
			RemainingDays:    7,
		}}
	}
	return o
}

func autoModifier(t Type) (Modifier, bool) {
	switch t {
	case SupplierDiscount:
		return Modifier{Name: "Supplier Discount", Description: "15% off wholesale purchases",
			PriceMultiplier: 0.85, DemandMultiplier: 1.0, RemainingDays: 3}, true
	case MediaAttention:
		return Modifier{Name: "Media Buzz", Description: "More customers for a few days",
			PriceMultiplier: 1.0, DemandMultiplier: 1.2, RemainingDays: 3}, true
	case TechGlitch:
		return Modifier{Name: "Competitor Outage", Description: "Customers flock to you",
			PriceMultiplier: 1.0, DemandMultiplier: 1.3, RemainingDays: 2}, true
	case SupplierIssue:
		return Modifier{Name: "Supplier Price Increase", Description: "Wholesale costs up 10%",
			PriceMultiplier: 1.1, DemandMultiplier: 1.0, RemainingDays: 5}, true
	case MarketCrash:
		return Modifier{Name: "Market Downturn", Description: "Customer demand drops",
			PriceMultiplier: 1.0, DemandMultiplier: 0.8, RemainingDays: 4}, true
	}
	return Modifier{}, false
}

// Resolve returns the outcome of the event. Auto events ignore choice.
func (e Event) Resolve(choice int) Outcome {
	if !e.AutoResolve {
		o := ApplyChoice(e.Type, choice)
		o.Title = e.Title
		return o
	}
	o := Outcome{
		Title:           e.Title,
		CashDelta:       e.CashImpact,
		ReputationDelta: e.ReputationImpact,
		InventoryImpact: e.InventoryImpact,
	}
	if m, ok := autoModifier(e.Type); ok {
		o.Modifiers = []Modifier{m}
	}
	return o
}
