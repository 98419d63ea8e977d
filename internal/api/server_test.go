package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralo/citysim/internal/engine"
	"github.com/seralo/citysim/internal/persistence"
)

func newTestServer(t *testing.T, withStore bool) *Server {
	t.Helper()
	srv := &Server{
		Sim:      engine.New(engine.Config{}),
		AdminKey: "sekrit",
	}
	if withStore {
		store, err := persistence.Open(filepath.Join(t.TempDir(), "city.db"))
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		srv.Store = store
	}
	return srv
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleStatus(t *testing.T) {
	srv := newTestServer(t, false)
	srv.Sim.AddMoney(1_000_000)

	rec := httptest.NewRecorder()
	srv.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Y1 M1 W1", body["date"])
	assert.Equal(t, "1,050,000", body["money_display"])
	assert.Equal(t, false, body["paused"])
}

func TestHandleFactions_IncludesBands(t *testing.T) {
	srv := newTestServer(t, false)

	rec := httptest.NewRecorder()
	srv.handleFactions(rec, httptest.NewRequest(http.MethodGet, "/api/v1/factions", nil))

	body := decodeBody(t, rec)
	factions, ok := body["factions"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, factions)
	first := factions[0].(map[string]any)
	assert.Equal(t, "neutral", first["band"], "fresh standings sit at 50")
	assert.Contains(t, body, "combined")
}

func TestAdminOnly_Gatekeeping(t *testing.T) {
	srv := newTestServer(t, false)
	handler := srv.adminOnly(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/advance", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/advance", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advance", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	handler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/advance", nil)
	req.Header.Set("Authorization", "Bearer sekrit")
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminOnly_DisabledWithoutKey(t *testing.T) {
	srv := newTestServer(t, false)
	srv.AdminKey = ""
	handler := srv.adminOnly(func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/advance", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleAdvance_MovesTheClock(t *testing.T) {
	srv := newTestServer(t, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advance", strings.NewReader(`{"weeks":4}`))
	srv.handleAdvance(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Y1 M2 W1", body["date"])
	assert.Equal(t, 4.0, body["week"])
}

func TestHandleAdvance_DefaultsAndCaps(t *testing.T) {
	srv := newTestServer(t, false)

	rec := httptest.NewRecorder()
	srv.handleAdvance(rec, httptest.NewRequest(http.MethodPost, "/api/v1/advance", strings.NewReader("{}")))
	body := decodeBody(t, rec)
	assert.Equal(t, 1.0, body["week"], "missing weeks advances one")

	rec = httptest.NewRecorder()
	srv.handleAdvance(rec, httptest.NewRequest(http.MethodPost, "/api/v1/advance", strings.NewReader(`{"weeks":-3}`)))
	body = decodeBody(t, rec)
	assert.Equal(t, 2.0, body["week"], "negative weeks advances one")
}

func TestHandlePause(t *testing.T) {
	srv := newTestServer(t, false)

	rec := httptest.NewRecorder()
	srv.handlePause(rec, httptest.NewRequest(http.MethodPost, "/api/v1/pause", strings.NewReader(`{"paused":true}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, srv.Sim.Paused())

	rec = httptest.NewRecorder()
	srv.handlePause(rec, httptest.NewRequest(http.MethodPost, "/api/v1/pause", strings.NewReader(`{"paused":false}`)))
	assert.False(t, srv.Sim.Paused())
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	srv := newTestServer(t, true)
	srv.Sim.AddPopulation(200)

	rec := httptest.NewRecorder()
	srv.handleSave(rec, httptest.NewRequest(http.MethodPost, "/api/v1/save", strings.NewReader(`{"slot":"manual"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	srv.Sim.AddPopulation(999)

	rec = httptest.NewRecorder()
	srv.handleLoad(rec, httptest.NewRequest(http.MethodPost, "/api/v1/load", strings.NewReader(`{"slot":"manual"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200, srv.Sim.State().Population)
}

func TestHandleLoad_MissingSlot(t *testing.T) {
	srv := newTestServer(t, true)

	rec := httptest.NewRecorder()
	srv.handleLoad(rec, httptest.NewRequest(http.MethodPost, "/api/v1/load", strings.NewReader(`{"slot":"ghost"}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	srv.handleLoad(rec, httptest.NewRequest(http.MethodPost, "/api/v1/load", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPersistenceEndpoints_DisabledWithoutStore(t *testing.T) {
	srv := newTestServer(t, false)

	rec := httptest.NewRecorder()
	srv.handleSaves(rec, httptest.NewRequest(http.MethodGet, "/api/v1/saves", nil))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec = httptest.NewRecorder()
	srv.handleSave(rec, httptest.NewRequest(http.MethodPost, "/api/v1/save", strings.NewReader(`{"slot":"x"}`)))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestTick_PersistsNotifications(t *testing.T) {
	srv := newTestServer(t, true)
	srv.Sim.AddPopulation(500) // crosses the first level threshold

	srv.Tick()

	events, err := srv.Store.RecentEvents(10)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, "level_up", events[0].Kind)
	assert.Empty(t, srv.Sim.Notifications(), "tick drains the feed")
}
