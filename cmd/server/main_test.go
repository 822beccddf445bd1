package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cardempire/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardempire.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
difficulty: casual
server:
  store: sqlite
  save_slot: weekend
`), 0o644))
	t.Setenv("CARDEMPIRE_ADDR", ":9999")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	casual, _ := config.Preset("casual")
	assert.Equal(t, casual, cfg.Balance)
	assert.Equal(t, "sqlite", cfg.Server.StoreDriver)
	assert.Equal(t, "weekend", cfg.Server.SaveSlot)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoadConfig_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("DIFFICULTY", "hard")
	t.Setenv("STARTING_CASH", "1234")

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, 1234, cfg.Balance.StartingCash)
	assert.Equal(t, "file", cfg.Server.StoreDriver)
}

func TestBuild_ServesAndResumes(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard, "", 0)
	cfg := &config.Config{Server: config.Server{StoreDriver: "file", DataDir: t.TempDir(), SaveSlot: "it"}}
	cfg.ApplyDefaults()

	a, err := build(ctx, cfg, logger)
	require.NoError(t, err)

	res := httptest.NewRecorder()
	a.handler.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/inventory/0/sell", nil))
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	res = httptest.NewRecorder()
	a.handler.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/save", nil))
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	require.NoError(t, a.store.Close())

	b, err := build(ctx, cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.store.Close() })

	res = httptest.NewRecorder()
	b.handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	require.Equal(t, http.StatusOK, res.Code)
	var state struct {
		Cash           int `json:"cash"`
		InventoryCards int `json:"inventory_cards"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &state))
	assert.Greater(t, state.Cash, 5000)
	assert.Less(t, state.InventoryCards, 44)
}
