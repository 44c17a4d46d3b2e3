// Package hanablive talks to the hanab.live game service: match exports and
// per-player match history. Every call carries its own timeout so a slow
// upstream never blocks unrelated requests.
package hanablive

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/hanabarena/hanab-arena/internal/domain/replay"
	"github.com/hanabarena/hanab-arena/internal/platform/cache"
	"github.com/hanabarena/hanab-arena/internal/platform/logging"
	"github.com/hanabarena/hanab-arena/internal/platform/resilience"
	"github.com/hanabarena/hanab-arena/internal/usecase"
)

const (
	defaultBaseURL = "https://hanab.live"
	defaultTimeout = 4 * time.Second
	maxBodyBytes   = 4 << 20
)

var errHanabLiveTransient = crerr.New("hanab.live transient failure")

// ErrUpstreamTimeout reports that the per-call deadline expired before the
// game service answered. Distinct from UpstreamStatusError so operators can
// tell a slow upstream from a broken one.
var ErrUpstreamTimeout = stderrors.New("match service request timed out")

// UpstreamStatusError reports a non-2xx answer from the game service.
type UpstreamStatusError struct {
	Status int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("match service returned status %d", e.Status)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	ExportCacheTTL time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	exports        *cache.Store
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	var exports *cache.Store
	if cfg.ExportCacheTTL > 0 {
		exports = cache.NewStore(cfg.ExportCacheTTL)
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		exports:        exports,
	}
}

// FetchExport loads the export of one match: who played and on which seed.
// Exports are immutable, so results age out of a small cache instead of
// being refetched for every audit.
func (c *Client) FetchExport(ctx context.Context, matchID string) (replay.Export, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return replay.Export{}, fmt.Errorf("match id is required")
	}

	load := func(ctx context.Context) (any, error) {
		raw, err := c.doGET(ctx, "/export/"+url.PathEscape(matchID), nil)
		if err != nil {
			return nil, err
		}

		var payload exportPayload
		if err := sonic.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("decode match export: %w", err)
		}
		return replay.Export{
			MatchID: matchID,
			Players: payload.playerList(),
			Seed:    strings.TrimSpace(payload.Seed),
		}, nil
	}

	var out any
	var err error
	if c.exports != nil {
		out, err = c.exports.GetOrLoad(ctx, "export:"+matchID, load)
	} else {
		out, err = load(ctx)
	}
	if err != nil {
		return replay.Export{}, err
	}

	export, ok := out.(replay.Export)
	if !ok {
		return replay.Export{}, fmt.Errorf("unexpected export payload type %T", out)
	}
	return export, nil
}

// FetchHistory loads one player's match history scoped to a single match id.
// The upstream answers with either a bare array or {games: [...]}; both are
// normalized before returning.
func (c *Client) FetchHistory(ctx context.Context, player, matchID string) ([]replay.HistoryGame, error) {
	player = strings.TrimSpace(player)
	matchID = strings.TrimSpace(matchID)
	if player == "" {
		return nil, fmt.Errorf("player name is required")
	}
	if matchID == "" {
		return nil, fmt.Errorf("match id is required")
	}

	query := url.Values{}
	query.Set("start", matchID)
	query.Set("end", matchID)

	raw, err := c.doGET(ctx, "/api/v1/history-full/"+url.PathEscape(player), query)
	if err != nil {
		return nil, err
	}

	games, err := decodeHistory(raw)
	if err != nil {
		return nil, fmt.Errorf("decode match history: %w", err)
	}

	out := make([]replay.HistoryGame, 0, len(games))
	for _, g := range games {
		out = append(out, g.toDomain())
	}
	return out, nil
}

func (c *Client) doGET(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "hanab.live circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: match service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(rctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
			c.logger.WarnContext(ctx, "hanab.live request timed out", "url", fullURL, "timeout", c.timeout)
			return nil, fmt.Errorf("%w: %s", ErrUpstreamTimeout, fullURL)
		}
		c.logger.WarnContext(ctx, "hanab.live request failed", "url", fullURL, "error", err)
		return nil, fmt.Errorf("%w: send request: %v", errHanabLiveTransient, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %s", ErrUpstreamTimeout, fullURL)
		}
		return nil, fmt.Errorf("%w: read response body: %v", errHanabLiveTransient, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "hanab.live returned non-success status", "url", fullURL, "status", resp.StatusCode)
		return nil, &UpstreamStatusError{Status: resp.StatusCode}
	}
	return raw, nil
}

func isCircuitFailure(err error) bool {
	if stderrors.Is(err, errHanabLiveTransient) || stderrors.Is(err, ErrUpstreamTimeout) {
		return true
	}
	var statusErr *UpstreamStatusError
	if stderrors.As(err, &statusErr) {
		return statusErr.Status == http.StatusTooManyRequests || statusErr.Status >= 500
	}
	return false
}
