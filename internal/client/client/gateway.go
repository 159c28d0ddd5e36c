package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/logging"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	refreshPath = "/api/v1/auth/refresh"
	refreshKey  = "refresh"
)

// TokenStore is where the gateway reads and rotates the token pair.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(ctx context.Context, tokens models.TokenPair) error
	Clear(ctx context.Context) error
}

// Request describes one backend call. Body, when not nil, is sent as JSON.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

type Gateway struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	limiter    *rate.Limiter
	messages   *Messages
	log        logging.Logger

	refreshGroup singleflight.Group

	mu        sync.RWMutex
	onExpired func()
}

type Option func(*Gateway)

func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.httpClient = c }
}

// WithRateLimiter makes every outbound request wait on l.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(g *Gateway) { g.limiter = l }
}

func WithMessages(m *Messages) Option {
	return func(g *Gateway) { g.messages = m }
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

func NewGateway(baseURL string, tokens TokenStore, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		messages:   defaultMessages,
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// OnSessionExpired registers the hook run after a failed refresh has
// cleared the stored session.
func (g *Gateway) OnSessionExpired(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onExpired = fn
}

func (g *Gateway) Messages() *Messages {
	return g.messages
}

// Do sends r with the current access token. A 401 on a request that
// carried a token triggers one shared refresh and a single retry.
func (g *Gateway) Do(ctx context.Context, r Request) (*http.Response, error) {
	body, err := encodeBody(r.Body)
	if err != nil {
		return nil, err
	}

	token := g.tokens.AccessToken()
	resp, err := g.send(ctx, r, body, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || token == "" {
		return resp, nil
	}
	drain(resp)

	pair, err := g.refresh(ctx)
	if err != nil {
		return nil, err
	}

	return g.send(ctx, r, body, pair.AccessToken)
}

// DoPublic sends r without credentials and never refreshes.
func (g *Gateway) DoPublic(ctx context.Context, r Request) (*http.Response, error) {
	body, err := encodeBody(r.Body)
	if err != nil {
		return nil, err
	}
	return g.send(ctx, r, body, "")
}

func (g *Gateway) refresh(ctx context.Context) (models.TokenPair, error) {
	// the refresh outlives the first caller so the other waiters still get it
	ctx = context.WithoutCancel(ctx)

	v, err, shared := g.refreshGroup.Do(refreshKey, func() (any, error) {
		g.log.Debug(ctx, "refreshing access token")

		pair, err := g.doRefresh(ctx)
		if err != nil {
			g.log.Warn(ctx, "token refresh failed", "error", err)
			return nil, g.expire(ctx, err)
		}
		return pair, nil
	})
	if err != nil {
		return models.TokenPair{}, err
	}

	g.log.Debug(ctx, "access token refreshed", "shared", shared)
	return v.(models.TokenPair), nil
}

func (g *Gateway) doRefresh(ctx context.Context) (models.TokenPair, error) {
	refreshToken := g.tokens.RefreshToken()
	if refreshToken == "" {
		return models.TokenPair{}, ErrNoRefreshToken
	}

	r := Request{
		Method: http.MethodPost,
		Path:   refreshPath,
		Body:   models.RefreshTokenRequest{RefreshToken: refreshToken},
	}
	resp, err := g.DoPublic(ctx, r)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	pair, err := Decode[*models.TokenPair](resp, g.messages)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	if pair == nil || pair.AccessToken == "" {
		return models.TokenPair{}, fmt.Errorf("%w: empty token data", ErrRefreshFailed)
	}

	if err := g.tokens.SetTokens(ctx, *pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return *pair, nil
}

// expire clears the local session, fires the hook and builds the error
// every waiter of the failed refresh receives.
func (g *Gateway) expire(ctx context.Context, cause error) error {
	if err := g.tokens.Clear(ctx); err != nil {
		g.log.Error(ctx, "failed to clear session", "error", err)
	}

	g.mu.RLock()
	hook := g.onExpired
	g.mu.RUnlock()
	if hook != nil {
		hook()
	}

	return &APIError{
		Status:  http.StatusUnauthorized,
		Message: g.messages.SessionExpired(),
		cause:   errors.Join(ErrSessionExpired, cause),
	}
}

func (g *Gateway) send(ctx context.Context, r Request, body []byte, token string) (*http.Response, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u := g.baseURL + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp, nil
}

func encodeBody(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return b, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
