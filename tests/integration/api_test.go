package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kixhq/kix/internal/catalog"
	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/httpserver/deps"
	"github.com/kixhq/kix/internal/httpserver/routes"
	"github.com/kixhq/kix/internal/kv"
	"github.com/kixhq/kix/internal/lifecycle"
	"github.com/kixhq/kix/internal/logger"
	"github.com/kixhq/kix/internal/telemetry"
)

const adminToken = "integration-token"

// TestAdminToPlayerFlow walks the whole lifecycle an operator and a player
// would drive: seed, create, publish, browse, play, leave.
func TestAdminToPlayerFlow(t *testing.T) {
	srv, cat, store := newServer(t)
	defer srv.Close()

	ctx := context.Background()
	require.NoError(t, cat.EnsureSeeded(ctx, catalog.DemoGames()))

	// The public feed starts with the two seeded demos.
	var feed struct {
		Games []domain.Game `json:"games"`
	}
	doJSON(t, srv, http.MethodGet, "/api/v1/games", nil, "", http.StatusOK, &feed)
	require.Len(t, feed.Games, 2)

	// An admin drafts a third game; the public feed does not change.
	var created struct {
		Game domain.Game `json:"game"`
	}
	doJSON(t, srv, http.MethodPost, "/api/v1/admin/games", map[string]any{
		"title":     "Rocket Run",
		"slug":      "rocket-run",
		"entry_url": "/games/rocket-run/index.html",
	}, adminToken, http.StatusCreated, &created)
	require.Equal(t, domain.StatusDraft, created.Game.Status)

	doJSON(t, srv, http.MethodGet, "/api/v1/games", nil, "", http.StatusOK, &feed)
	require.Len(t, feed.Games, 2)

	// Publishing makes it visible, newest first.
	var published struct {
		Game domain.Game `json:"game"`
	}
	doJSON(t, srv, http.MethodPost, "/api/v1/admin/games/"+created.Game.ID+"/publish",
		nil, adminToken, http.StatusOK, &published)
	require.Equal(t, domain.StatusPublished, published.Game.Status)

	doJSON(t, srv, http.MethodGet, "/api/v1/games", nil, "", http.StatusOK, &feed)
	require.Len(t, feed.Games, 3)
	assert.Equal(t, "rocket-run", feed.Games[0].Slug)

	// A player opens it, the game announces ready, then leaves.
	var play struct {
		Play struct {
			ID       string   `json:"id"`
			State    string   `json:"state"`
			Commands []string `json:"commands"`
		} `json:"play"`
	}
	doJSON(t, srv, http.MethodPost, "/api/v1/play", map[string]any{
		"game_id":    created.Game.ID,
		"session_id": "sess-integration",
	}, "", http.StatusCreated, &play)
	require.Equal(t, "loading", play.Play.State)

	doJSON(t, srv, http.MethodPost, "/api/v1/play/"+play.Play.ID+"/message", map[string]any{
		"type": "ready",
	}, "", http.StatusOK, &play)
	assert.Equal(t, "ready", play.Play.State)
	assert.Contains(t, play.Play.Commands, "start")

	doJSON(t, srv, http.MethodPost, "/api/v1/play/"+play.Play.ID+"/leave",
		nil, "", http.StatusOK, &play)
	assert.Contains(t, play.Play.Commands, "destroy")

	// The play flow recorded game_opened, game_started and game_exit.
	require.Eventually(t, func() bool {
		n, err := store.SetLen(ctx, telemetry.KeyAllEvents)
		return err == nil && n >= 3
	}, 2*time.Second, 20*time.Millisecond)
}

func newServer(t *testing.T) (*httptest.Server, *catalog.Store, kv.Store) {
	t.Helper()

	store := kv.NewMemory()
	log := logger.Nop()
	cat := catalog.New(store, log)

	sink := telemetry.New(store, log, 64)
	sink.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = sink.Stop(ctx)
	})

	sessions := lifecycle.NewRegistry(lifecycle.Config{}, sink, log)
	t.Cleanup(sessions.Close)

	d := deps.Deps{
		Logger:    log,
		StartTime: time.Now(),
		TimeNow:   time.Now,

		Catalog:  cat,
		Sink:     sink,
		Sessions: sessions,

		StoreBackend: "memory",
		AdminToken:   adminToken,

		EventsBurst:       1000,
		EventsPerIPPerMin: 60000,
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	return httptest.NewServer(r), cat, store
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body any, token string, wantStatus int, out any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, wantStatus, resp.StatusCode, "%s %s", method, path)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
}
