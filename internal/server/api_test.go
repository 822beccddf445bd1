package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardempire/internal/game"
	"cardempire/internal/store"
	"cardempire/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	t       *testing.T
	handler http.Handler
	session *Session
	store   *store.MemoryStore
	events  *telemetry.MemoryRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	events := telemetry.NewMemoryRepository()
	saves := store.NewMemoryStore()

	g := game.New(game.Options{Logger: logger, Recorder: events})
	session, err := NewSession(SessionOptions{Game: g, Store: saves, Slot: "test", Logger: logger})
	require.NoError(t, err)

	h, err := NewHandler(Options{Session: session, Telemetry: events, Logger: logger})
	require.NoError(t, err)
	return &testApp{t: t, handler: h, session: session, store: saves, events: events}
}

func (a *testApp) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	res := httptest.NewRecorder()
	a.handler.ServeHTTP(res, req)
	return res
}

func decode[T any](t *testing.T, res *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &v), res.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	res := app.do(http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, true, decode[map[string]any](t, res)["ok"])
}

func TestGetState(t *testing.T) {
	app := newTestApp(t)
	res := app.do(http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, res.Code)

	v := decode[stateView](t, res)
	assert.Equal(t, 1, v.Day)
	assert.Equal(t, "9:00 AM", v.Time)
	assert.Equal(t, 5000, v.Cash)
	assert.Equal(t, 3, v.Reputation)
	assert.Equal(t, 44, v.InventoryCards)
	assert.Equal(t, 2, v.OpenOrders)
	assert.False(t, v.PendingChoice)
	assert.Equal(t, "test", v.Slot)
}

func TestPurchase_ByFuzzyRetailer(t *testing.T) {
	app := newTestApp(t)
	res := app.do(http.MethodPost, "/api/market/purchase", map[string]any{"retailer": "amzn", "quantity": 2})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	body := decode[map[string]any](t, res)
	assert.EqualValues(t, 2, body["purchased"])
	listing := body["listing"].(map[string]any)
	assert.Equal(t, "Amazon", listing["retailer"])
	assert.Less(t, body["cash"].(float64), 5000.0)

	stats := decode[telemetry.Stats](t, app.do(http.MethodGet, "/api/telemetry/stats", nil))
	assert.Equal(t, 2, stats.CardsPurchased)
	assert.Equal(t, 2, stats.PurchasesByRetailer["Amazon"])
}

func TestPurchase_Validation(t *testing.T) {
	app := newTestApp(t)

	res := app.do(http.MethodPost, "/api/market/purchase", map[string]any{"index": 9})
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = app.do(http.MethodPost, "/api/market/purchase", map[string]any{"retailer": "zzzzqqq"})
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = app.do(http.MethodPost, "/api/market/purchase", map[string]any{"index": 0, "quantity": MaxPurchaseQuantity + 1})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/market/purchase", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPurchase_InsufficientFunds(t *testing.T) {
	app := newTestApp(t)
	buy := func() *httptest.ResponseRecorder {
		return app.do(http.MethodPost, "/api/market/purchase", map[string]any{"index": 2, "quantity": MaxPurchaseQuantity})
	}

	res := buy()
	require.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, MaxPurchaseQuantity, decode[map[string]any](t, res)["purchased"])

	res = buy()
	require.Equal(t, http.StatusOK, res.Code)
	assert.Less(t, decode[map[string]any](t, res)["purchased"].(float64), float64(MaxPurchaseQuantity))

	var cash int
	app.session.Do(func(g *game.Game) { cash = g.Cash() })
	res = buy()
	require.Equal(t, http.StatusConflict, res.Code)
	assert.Contains(t, res.Body.String(), "Insufficient funds")
	app.session.Do(func(g *game.Game) { assert.Equal(t, cash, g.Cash()) })
}

func TestFulfillAndSell_IndexErrors(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/api/orders/abc/fulfill", nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/api/orders/-1/fulfill", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodPost, "/api/orders/99/fulfill", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodPost, "/api/inventory/99/sell", nil).Code)
}

func TestSell(t *testing.T) {
	app := newTestApp(t)
	res := app.do(http.MethodPost, "/api/inventory/0/sell", nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	body := decode[map[string]any](t, res)
	assert.Contains(t, body["message"], "Sold")
	assert.Greater(t, body["cash"].(float64), 5000.0)

	activity := decode[[]string](t, app.do(http.MethodGet, "/api/activity", nil))
	assert.Equal(t, body["message"], activity[0])
}

func TestFulfill_StatusMatchesStock(t *testing.T) {
	app := newTestApp(t)
	orders := decode[[]map[string]any](t, app.do(http.MethodGet, "/api/orders", nil))
	require.NotEmpty(t, orders)

	want := http.StatusConflict
	if orders[0]["can_fulfill"].(bool) {
		want = http.StatusOK
	}
	res := app.do(http.MethodPost, "/api/orders/0/fulfill", nil)
	assert.Equal(t, want, res.Code, res.Body.String())
}

func TestChoice_NoPendingEvent(t *testing.T) {
	app := newTestApp(t)
	pending := decode[map[string]any](t, app.do(http.MethodGet, "/api/events/pending", nil))
	assert.Nil(t, pending["pending"])

	res := app.do(http.MethodPost, "/api/events/choice", map[string]any{"choice": 0})
	assert.Equal(t, http.StatusConflict, res.Code)
}

func TestAdvanceClock(t *testing.T) {
	app := newTestApp(t)

	body := decode[map[string]any](t, app.do(http.MethodPost, "/api/clock/advance", nil))
	assert.Equal(t, false, body["day_ended"])
	assert.Equal(t, "9:20 AM", body["time"])

	body = decode[map[string]any](t, app.do(http.MethodPost, "/api/clock/advance", map[string]any{"minutes": 24 * 60}))
	assert.Equal(t, true, body["day_ended"])
	assert.EqualValues(t, 2, body["day"])

	res := app.do(http.MethodPost, "/api/clock/advance", map[string]any{"minutes": -5})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

type brokenStore struct {
	*store.MemoryStore
}

func (brokenStore) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestAdvanceClock_AutosaveFailure(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	session, err := NewSession(SessionOptions{
		Game:     game.New(game.Options{Logger: logger}),
		Store:    brokenStore{store.NewMemoryStore()},
		Slot:     "auto",
		Autosave: true,
		Logger:   logger,
	})
	require.NoError(t, err)
	h, err := NewHandler(Options{Session: session, Logger: logger})
	require.NoError(t, err)
	app := &testApp{t: t, handler: h, session: session}

	res := app.do(http.MethodPost, "/api/clock/advance", map[string]any{"minutes": 24 * 60})
	require.Equal(t, http.StatusInternalServerError, res.Code)
	body := decode[map[string]map[string]any](t, res)
	assert.Contains(t, body["error"]["message"], "autosave: disk full")
	assert.Contains(t, body["error"]["message"], "day 2 began")

	session.Do(func(g *game.Game) { assert.Equal(t, 2, g.Day()) })

	res = app.do(http.MethodPost, "/api/clock/advance", map[string]any{"minutes": 60})
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestSaveAndLoad(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	res := app.do(http.MethodPost, "/api/load", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/save", nil).Code)
	_, err := app.store.Load(ctx, "test")
	require.NoError(t, err)

	app.do(http.MethodPost, "/api/inventory/0/sell", nil)
	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/load", nil).Code)

	v := decode[stateView](t, app.do(http.MethodGet, "/api/state", nil))
	assert.Equal(t, 5000, v.Cash)
	assert.Equal(t, 44, v.InventoryCards)

	require.NoError(t, app.store.Save(ctx, "test", []byte(`{"version":1}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, app.do(http.MethodPost, "/api/load", nil).Code)
}

func TestPause(t *testing.T) {
	app := newTestApp(t)

	body := decode[map[string]any](t, app.do(http.MethodPost, "/api/pause", nil))
	assert.Equal(t, true, body["paused"])
	assert.True(t, app.session.Paused())

	body = decode[map[string]any](t, app.do(http.MethodPost, "/api/pause", map[string]any{"paused": false}))
	assert.Equal(t, false, body["paused"])
}

func TestReadEndpoints(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{
		"/api/inventory", "/api/market", "/api/achievements", "/api/analytics", "/api/routes",
	} {
		res := app.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, res.Code, path)
		assert.Equal(t, "application/json", res.Header().Get("Content-Type"), path)
	}

	routes := decode[[]RouteDoc](t, app.do(http.MethodGet, "/api/routes", nil))
	assert.Len(t, routes, 18)

	market := decode[game.MarketSummary](t, app.do(http.MethodGet, "/api/market", nil))
	assert.Len(t, market.Quotes, 5)
}

func TestTelemetryDisabled(t *testing.T) {
	g := game.New(game.Options{Logger: log.New(io.Discard, "", 0)})
	session, err := NewSession(SessionOptions{Game: g})
	require.NoError(t, err)
	h, err := NewHandler(Options{Session: session, Logger: log.New(io.Discard, "", 0)})
	require.NoError(t, err)

	res := httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/telemetry/stats", nil))
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/save", nil))
	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
}
