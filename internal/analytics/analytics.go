package analytics

const (
	// WindowDays is how many daily revenue buckets are kept.
	WindowDays = 30
	recentDays = 7
)

// Business accumulates lifetime totals and a rolling window of daily revenue.
// The last entry of DailyRevenues is today.
type Business struct {
	TotalRevenue    int       `json:"total_revenue"`
	TotalPurchases  int       `json:"total_purchases"`
	OrdersCompleted int       `json:"orders_completed"`
	OrdersExpired   int       `json:"orders_expired"`
	BestDayRevenue  int       `json:"best_day_revenue"`
	CardsSold       int       `json:"cards_sold"`
	CardsExpired    int       `json:"cards_expired"`
	DailyRevenues   []int     `json:"daily_revenues"`
	ProfitMargins   []float64 `json:"profit_margins"`
}

func New() Business {
	return Business{DailyRevenues: []int{0}, ProfitMargins: []float64{}}
}

func (b *Business) RecordPurchase(amount int) {
	b.TotalPurchases += amount
}

// RecordSale books a fulfilled order.
func (b *Business) RecordSale(revenue, cost, cards int) {
	b.TotalRevenue += revenue
	b.OrdersCompleted++
	b.CardsSold += cards
	if revenue > 0 {
		b.ProfitMargins = append(b.ProfitMargins, float64(revenue-cost)/float64(revenue)*100)
	}
	b.addToday(revenue)
}

// RecordDirectSale books cards sold straight from inventory. It does not
// count as an order and adds no margin sample.
func (b *Business) RecordDirectSale(revenue, cards int) {
	b.TotalRevenue += revenue
	b.CardsSold += cards
	b.addToday(revenue)
}

func (b *Business) addToday(revenue int) {
	if len(b.DailyRevenues) == 0 {
		b.DailyRevenues = []int{0}
	}
	last := len(b.DailyRevenues) - 1
	b.DailyRevenues[last] += revenue
	b.BestDayRevenue = max(b.BestDayRevenue, b.DailyRevenues[last])
}

func (b *Business) RecordExpiredOrder() {
	b.OrdersExpired++
}

func (b *Business) RecordExpiredCards(count int) {
	b.CardsExpired += count
}

// StartNewDay opens an empty revenue bucket and trims the window.
func (b *Business) StartNewDay() {
	b.DailyRevenues = append(b.DailyRevenues, 0)
	if len(b.DailyRevenues) > WindowDays {
		b.DailyRevenues = b.DailyRevenues[len(b.DailyRevenues)-WindowDays:]
	}
}

func (b Business) AverageProfitMargin() float64 {
	if len(b.ProfitMargins) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range b.ProfitMargins {
		sum += m
	}
	return sum / float64(len(b.ProfitMargins))
}

// RecentDailyAverage averages up to the last seven daily buckets.
func (b Business) RecentDailyAverage() float64 {
	if len(b.DailyRevenues) <= 1 {
		return 0
	}
	n := min(len(b.DailyRevenues), recentDays)
	sum := 0
	for _, r := range b.DailyRevenues[len(b.DailyRevenues)-n:] {
		sum += r
	}
	return float64(sum) / float64(n)
}

// TotalProfit is revenue minus wholesale spend.
func (b Business) TotalProfit() int {
	return b.TotalRevenue - b.TotalPurchases
}

// SuccessRate is the share of resolved orders that were fulfilled.
func (b Business) SuccessRate() float64 {
	total := b.OrdersCompleted + b.OrdersExpired
	if total == 0 {
		return 0
	}
	return float64(b.OrdersCompleted) / float64(total)
}

func (b Business) Clone() Business {
	c := b
	c.DailyRevenues = append([]int(nil), b.DailyRevenues...)
	c.ProfitMargins = append([]float64(nil), b.ProfitMargins...)
	return c
}
