package hanablive

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hanabarena/hanab-arena/internal/platform/logging"
	"github.com/hanabarena/hanab-arena/internal/platform/resilience"
)

func newTestClient(t *testing.T, handler http.Handler, mutate func(*ClientConfig)) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := ClientConfig{
		BaseURL:        srv.URL,
		Timeout:        2 * time.Second,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg), srv
}

func TestClient_FetchExport(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/export/12345" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":12345,"players":["alice","bob","carol"],"seed":"p3v0s4a9X2"}`))
	}), nil)

	export, err := client.FetchExport(context.Background(), "12345")
	if err != nil {
		t.Fatalf("fetch export: %v", err)
	}
	if export.MatchID != "12345" || export.Seed != "p3v0s4a9X2" {
		t.Fatalf("export mismatch: %+v", export)
	}
	if len(export.Players) != 3 || export.Players[0] != "alice" {
		t.Fatalf("players mismatch: %v", export.Players)
	}
}

func TestClient_FetchExportLegacyPlayerNames(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"playerNames":["alice","bob"],"seed":"p2v0sxyz"}`))
	}), nil)

	export, err := client.FetchExport(context.Background(), "7")
	if err != nil {
		t.Fatalf("fetch export: %v", err)
	}
	if len(export.Players) != 2 || export.Players[1] != "bob" {
		t.Fatalf("players mismatch: %v", export.Players)
	}
}

func TestClient_FetchExportCachesResult(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"players":["alice"],"seed":"p2v0sabc"}`))
	}), func(cfg *ClientConfig) {
		cfg.ExportCacheTTL = time.Minute
	})

	for i := 0; i < 3; i++ {
		if _, err := client.FetchExport(context.Background(), "42"); err != nil {
			t.Fatalf("fetch export: %v", err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected one upstream hit, got %d", got)
	}
}

func TestClient_FetchExportTimeout(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}), func(cfg *ClientConfig) {
		cfg.Timeout = 50 * time.Millisecond
	})

	_, err := client.FetchExport(context.Background(), "12345")
	if !errors.Is(err, ErrUpstreamTimeout) {
		t.Fatalf("expected ErrUpstreamTimeout, got %v", err)
	}

	var statusErr *UpstreamStatusError
	if errors.As(err, &statusErr) {
		t.Fatal("timeout must not carry an upstream status")
	}
}

func TestClient_FetchExportUpstreamStatus(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}), nil)

	_, err := client.FetchExport(context.Background(), "12345")
	var statusErr *UpstreamStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected UpstreamStatusError, got %v", err)
	}
	if statusErr.Status != http.StatusInternalServerError {
		t.Fatalf("status mismatch: %d", statusErr.Status)
	}
	if errors.Is(err, ErrUpstreamTimeout) {
		t.Fatal("status error must not look like a timeout")
	}
}

func TestClient_FetchExportMalformedBody(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"players":`))
	}), nil)

	if _, err := client.FetchExport(context.Background(), "12345"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClient_FetchHistoryBareArray(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/history-full/alice" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("start") != "12345" || r.URL.Query().Get("end") != "12345" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"id":12345,"score":24,"endCondition":1,"options":{"variantName":"No Variant","deckPlays":true}}]`))
	}), nil)

	games, err := client.FetchHistory(context.Background(), "alice", "12345")
	if err != nil {
		t.Fatalf("fetch history: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected one game, got %d", len(games))
	}
	g := games[0]
	if g.ID != 12345 || g.Score != 24 || g.Variant != "No Variant" {
		t.Fatalf("game mismatch: %+v", g)
	}
	if !g.Options.DeckPlays {
		t.Fatal("deckPlays flag lost in normalization")
	}
}

func TestClient_FetchHistoryWrappedObject(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"games":[{"id":9,"variant":"Rainbow (6 Suits)","score":30}]}`))
	}), nil)

	games, err := client.FetchHistory(context.Background(), "bob", "9")
	if err != nil {
		t.Fatalf("fetch history: %v", err)
	}
	if len(games) != 1 || games[0].Variant != "Rainbow (6 Suits)" {
		t.Fatalf("games mismatch: %+v", games)
	}
}

func TestClient_FetchHistoryEmptyVariants(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`[]`, `{"games":[]}`, `null`} {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		}), nil)

		games, err := client.FetchHistory(context.Background(), "carol", "1")
		if err != nil {
			t.Fatalf("fetch history body %s: %v", body, err)
		}
		if len(games) != 0 {
			t.Fatalf("body %s: expected empty history, got %v", body, games)
		}
	}
}

func TestClient_CircuitBreakerShedsAfterFailures(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}), func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
	})

	for i := 0; i < 2; i++ {
		var statusErr *UpstreamStatusError
		if _, err := client.FetchExport(context.Background(), "1"); !errors.As(err, &statusErr) {
			t.Fatalf("attempt %d: expected status error, got %v", i, err)
		}
	}

	_, err := client.FetchExport(context.Background(), "1")
	if err == nil {
		t.Fatal("expected circuit breaker rejection")
	}
	var statusErr *UpstreamStatusError
	if errors.As(err, &statusErr) {
		t.Fatalf("request reached upstream while circuit open: %v", err)
	}
}
