// Package server exposes a game session over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"cardempire/internal/analytics"
	"cardempire/internal/game"
	"cardempire/internal/httpmw"
	"cardempire/internal/market"
	"cardempire/internal/randomevent"
	"cardempire/internal/store"
	"cardempire/internal/telemetry"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// MaxPurchaseQuantity caps one purchase request.
const MaxPurchaseQuantity = 100

type Options struct {
	Session   *Session
	Telemetry telemetry.Repository
	Logger    *log.Logger
}

type API struct {
	session   *Session
	telemetry telemetry.Repository
	log       *log.Logger
	routes    *RouteRegistry
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    http.StatusText(status),
			"code":    status,
		},
	})
}

// decodeBody treats an empty body as an empty request.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func lastActivity(g *game.Game) string {
	if a := g.Activity(); len(a) > 0 {
		return a[0]
	}
	return ""
}

func indexParam(r *http.Request) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	return i, err == nil && i >= 0
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Session == nil {
		return nil, errors.New("session is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	a := &API{
		session:   opts.Session,
		telemetry: opts.Telemetry,
		log:       opts.Logger,
		routes:    &RouteRegistry{},
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(httpmw.AccessLog(opts.Logger))
	r.Use(httpmw.Recover(opts.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "cardempire",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.Route("/api", func(r chi.Router) {
		Handle(r, a.routes, "GET /routes", "List API routes", "", a.listRoutes)
		Handle(r, a.routes, "GET /state", "Headline numbers", "", a.getState)
		Handle(r, a.routes, "GET /inventory", "Held card lots", "", a.getInventory)
		Handle(r, a.routes, "GET /orders", "Open customer orders", "", a.getOrders)
		Handle(r, a.routes, "GET /market", "Season, events and quotes", "", a.getMarket)
		Handle(r, a.routes, "GET /achievements", "Achievement progress", "", a.getAchievements)
		Handle(r, a.routes, "GET /analytics", "Business metrics", "", a.getAnalytics)
		Handle(r, a.routes, "GET /events/pending", "Random event awaiting a choice", "", a.getPendingEvent)
		Handle(r, a.routes, "GET /activity", "Recent activity", "", a.getActivity)
		Handle(r, a.routes, "GET /telemetry/stats", "Telemetry rollup", "", a.getTelemetryStats)
		Handle(r, a.routes, "POST /clock/advance", "Advance the clock", `{"minutes":60}`, a.advanceClock)
		Handle(r, a.routes, "POST /market/purchase", "Buy cards", `{"retailer":"amazon","quantity":2}`, a.purchase)
		Handle(r, a.routes, "POST /orders/{index}/fulfill", "Fulfill an order", "", a.fulfill)
		Handle(r, a.routes, "POST /inventory/{index}/sell", "Sell an inventory lot", "", a.sell)
		Handle(r, a.routes, "POST /events/choice", "Answer the pending event", `{"choice":0}`, a.choose)
		Handle(r, a.routes, "POST /save", "Save to the session slot", "", a.save)
		Handle(r, a.routes, "POST /load", "Load the session slot", "", a.load)
		Handle(r, a.routes, "POST /pause", "Pause or resume real time", `{"paused":true}`, a.pause)
	})
	return r, nil
}

func (a *API) listRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.routes.List())
}

type stateView struct {
	Day                   int           `json:"day"`
	Time                  string        `json:"time"`
	Season                market.Season `json:"season"`
	Cash                  int           `json:"cash"`
	Reputation            int           `json:"reputation"`
	ReputationStars       string        `json:"reputation_stars"`
	ReputationDescription string        `json:"reputation_description"`
	InventoryCards        int           `json:"inventory_cards"`
	InventoryValue        int           `json:"inventory_value"`
	OpenOrders            int           `json:"open_orders"`
	PendingChoice         bool          `json:"pending_choice"`
	Paused                bool          `json:"paused"`
	Slot                  string        `json:"slot"`
}

func (a *API) getState(w http.ResponseWriter, r *http.Request) {
	v := stateView{Paused: a.session.Paused(), Slot: a.session.Slot()}
	a.session.Do(func(g *game.Game) {
		inv := g.Inventory()
		_, _, pending := g.PendingChoice()
		v.Day = g.Day()
		v.Time = g.TimeDisplay()
		v.Season = g.Market().Season
		v.Cash = g.Cash()
		v.Reputation = g.Reputation()
		v.ReputationStars = g.ReputationStars()
		v.ReputationDescription = g.ReputationDescription()
		v.InventoryCards = inv.Count()
		v.InventoryValue = inv.TotalValue()
		v.OpenOrders = len(g.Orders())
		v.PendingChoice = pending
	})
	writeJSON(w, http.StatusOK, v)
}

func (a *API) getInventory(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	a.session.Do(func(g *game.Game) {
		inv := g.Inventory()
		body = map[string]any{
			"entries":       inv,
			"total_cards":   inv.Count(),
			"total_value":   inv.TotalValue(),
			"total_cost":    inv.TotalCost(),
			"expiring_soon": inv.ExpiringSoon(),
		}
	})
	writeJSON(w, http.StatusOK, body)
}

func (a *API) getOrders(w http.ResponseWriter, r *http.Request) {
	var out []map[string]any
	a.session.Do(func(g *game.Game) {
		for i, o := range g.Orders() {
			out = append(out, map[string]any{
				"index":         i,
				"order":         o,
				"total_offered": o.TotalOffered(),
				"can_fulfill":   g.CanFulfill(i),
			})
		}
	})
	if out == nil {
		out = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getMarket(w http.ResponseWriter, r *http.Request) {
	var sum game.MarketSummary
	a.session.Do(func(g *game.Game) { sum = g.Market() })
	writeJSON(w, http.StatusOK, sum)
}

func (a *API) getAchievements(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	a.session.Do(func(g *game.Game) {
		body = map[string]any{
			"unlocked":      g.UnlockedAchievements(),
			"in_progress":   g.InProgressAchievements(),
			"recent_unlock": g.TakeRecentUnlock(),
		}
	})
	writeJSON(w, http.StatusOK, body)
}

func (a *API) getAnalytics(w http.ResponseWriter, r *http.Request) {
	var b analytics.Business
	a.session.Do(func(g *game.Game) { b = g.Analytics() })
	writeJSON(w, http.StatusOK, map[string]any{
		"business":             b,
		"total_profit":         b.TotalProfit(),
		"average_margin":       b.AverageProfitMargin(),
		"recent_daily_average": b.RecentDailyAverage(),
		"success_rate":         b.SuccessRate(),
	})
}

func (a *API) getPendingEvent(w http.ResponseWriter, r *http.Request) {
	var (
		ev       randomevent.Event
		deadline int
		ok       bool
		history  []string
	)
	a.session.Do(func(g *game.Game) {
		ev, deadline, ok = g.PendingChoice()
		history = g.EventHistory()
	})
	body := map[string]any{"pending": nil, "history": history}
	if ok {
		body["pending"] = map[string]any{"event": ev, "deadline_day": deadline}
	}
	writeJSON(w, http.StatusOK, body)
}

func (a *API) getActivity(w http.ResponseWriter, r *http.Request) {
	var out []string
	a.session.Do(func(g *game.Game) { out = g.Activity() })
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getTelemetryStats(w http.ResponseWriter, r *http.Request) {
	if a.telemetry == nil {
		writeError(w, http.StatusNotFound, "telemetry is disabled")
		return
	}
	since := 0
	if raw := r.URL.Query().Get("since"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(w, http.StatusBadRequest, "since must be a non-negative day")
			return
		}
		since = v
	}
	events, err := a.telemetry.GetEvents(since, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats, err := telemetry.CalculateStats(events, since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *API) advanceClock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Minutes int `json:"minutes"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Minutes < 0 {
		writeError(w, http.StatusUnprocessableEntity, "minutes must be positive")
		return
	}
	if req.Minutes == 0 {
		a.session.Do(func(g *game.Game) { req.Minutes = g.Balance().MinutesPerStep })
	}

	dayEnded, err := a.session.Advance(r.Context(), req.Minutes)
	var day int
	var clock string
	a.session.Do(func(g *game.Game) { day, clock = g.Day(), g.TimeDisplay() })
	if err != nil {
		// The clock has moved; only the save is missing.
		a.log.Printf("advance: %v", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("day %d began but %v", day, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"day_ended": dayEnded, "day": day, "time": clock})
}

func (a *API) purchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index    *int   `json:"index"`
		Retailer string `json:"retailer"`
		Quantity int    `json:"quantity"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 || req.Quantity > MaxPurchaseQuantity {
		writeError(w, http.StatusUnprocessableEntity, "quantity must be between 1 and "+strconv.Itoa(MaxPurchaseQuantity))
		return
	}

	index := -1
	switch {
	case req.Index != nil:
		index = *req.Index
	case req.Retailer != "":
		if rt, ok := market.MatchRetailer(req.Retailer); ok {
			index, _ = market.ListingFor(rt)
		}
	}
	if index < 0 || index >= len(market.Catalog) {
		writeError(w, http.StatusNotFound, "no such listing")
		return
	}

	bought := 0
	var cash int
	var last string
	a.session.Do(func(g *game.Game) {
		for bought < req.Quantity && g.Purchase(index) {
			bought++
		}
		cash = g.Cash()
		last = lastActivity(g)
	})
	if bought == 0 {
		writeError(w, http.StatusConflict, last)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"listing":   market.Catalog[index],
		"purchased": bought,
		"cash":      cash,
	})
}

// command runs a single-index game command and reports its activity line.
func (a *API) command(w http.ResponseWriter, r *http.Request, size func(*game.Game) int, run func(*game.Game, int) bool) {
	index, ok := indexParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "index must be a non-negative integer")
		return
	}
	status := http.StatusOK
	var msg string
	var cash int
	a.session.Do(func(g *game.Game) {
		if index >= size(g) {
			status = http.StatusNotFound
			msg = "nothing at position " + strconv.Itoa(index)
			return
		}
		if !run(g, index) {
			status = http.StatusConflict
		}
		msg = lastActivity(g)
		cash = g.Cash()
	})
	if status != http.StatusOK {
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": msg, "cash": cash})
}

func (a *API) fulfill(w http.ResponseWriter, r *http.Request) {
	a.command(w, r,
		func(g *game.Game) int { return len(g.Orders()) },
		(*game.Game).Fulfill)
}

func (a *API) sell(w http.ResponseWriter, r *http.Request) {
	a.command(w, r,
		func(g *game.Game) int { return len(g.Inventory()) },
		(*game.Game).Sell)
}

func (a *API) choose(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice int `json:"choice"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	status := http.StatusOK
	var out randomevent.Outcome
	a.session.Do(func(g *game.Game) {
		ev, _, ok := g.PendingChoice()
		switch {
		case !ok:
			status = http.StatusConflict
		case req.Choice < 0 || req.Choice >= len(ev.Choices):
			status = http.StatusUnprocessableEntity
		default:
			out, _ = g.ResolveChoice(req.Choice)
		}
	})
	switch status {
	case http.StatusConflict:
		writeError(w, status, "no event is waiting for a choice")
	case http.StatusUnprocessableEntity:
		writeError(w, status, "choice out of range")
	default:
		writeJSON(w, http.StatusOK, out)
	}
}

func (a *API) save(w http.ResponseWriter, r *http.Request) {
	if err := a.session.Save(r.Context()); err != nil {
		a.log.Printf("save: %v", err)
		writeError(w, storeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "slot": a.session.Slot()})
}

func (a *API) load(w http.ResponseWriter, r *http.Request) {
	if err := a.session.Load(r.Context()); err != nil {
		a.log.Printf("load: %v", err)
		writeError(w, storeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "slot": a.session.Slot()})
}

func storeStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInvalidSnapshot):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNoStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) pause(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Paused *bool `json:"paused"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	paused := !a.session.Paused()
	if req.Paused != nil {
		paused = *req.Paused
	}
	a.session.SetPaused(paused)
	writeJSON(w, http.StatusOK, map[string]any{"paused": paused})
}
