package api

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
	"time"

	"github.com/dmitrijs2005/mindhaven/internal/common"
	"github.com/dmitrijs2005/mindhaven/internal/logging"
	"github.com/google/uuid"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodySize    = 4 << 20
	retryHint      = ". Please try again."
)

// TokenSource supplies the current credential token. An empty string means
// "not logged in"; requests are then sent without auth headers.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Client talks to the remote API. It holds no per-user state besides the
// TokenSource and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     logging.Logger
	schema     *schema
	requestID  func() string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (its Timeout included).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout on a copy of the current
// *http.Client, so a shared client passed to WithHTTPClient is not mutated.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRequestIDFunc overrides the X-Request-ID generator (uuid by default).
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) { c.requestID = fn }
}

// New builds a Client for baseURL, e.g. "https://psyco.onrender.com".
// The "/api" prefix is added per request.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if tokens == nil {
		tokens = TokenFunc(func(context.Context) (string, error) { return "", nil })
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     tokens,
		logger:     logging.Nop(),
		schema:     defaultSchema,
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// endpoint describes one request. fallback is the operation's default
// failure text, e.g. "Failed to get journal entries"; offline, when set,
// replaces it for transport failures. errorFirst reads the "error" key of
// a failure body before "message".
type endpoint struct {
	op         string
	method     string
	path       string
	query      url.Values
	body       any
	public     bool
	fallback   string
	offline    string
	errorFirst bool
}

func (e endpoint) serverError(status int, msg string) *Error {
	if msg == "" {
		msg = e.fallback
	}
	return &Error{Op: e.op, Kind: KindServer, Status: status, Message: msg}
}

func (e endpoint) transportError(cause error) *Error {
	text := e.fallback
	if e.offline != "" {
		text = e.offline
	}
	return &Error{Op: e.op, Kind: KindTransport, Message: text + retryHint, cause: cause}
}

func (e endpoint) validationError(cause error) *Error {
	return &Error{Op: e.op, Kind: KindValidation, Message: cause.Error(), cause: cause}
}

// checkInput validates a request payload before anything is sent.
func (c *Client) checkInput(e endpoint, payload any) error {
	if err := c.schema.check(payload); err != nil {
		return e.validationError(err)
	}
	return nil
}

// requireID builds "<base>/<id>" after rejecting blank ids.
func requireID(e *endpoint, name, id string, format string) error {
	if strings.TrimSpace(id) == "" {
		return e.validationError(fmt.Errorf("%s is required", name))
	}
	e.path = fmt.Sprintf(format, url.PathEscape(id))
	return nil
}

// call performs e and decodes a successful body into T. It is the single
// place where outcomes are normalised; it never returns a non-*Error error.
func call[T any](ctx context.Context, c *Client, e endpoint) (T, error) {
	var zero T

	req, err := c.newRequest(ctx, e)
	if err != nil {
		return zero, e.transportError(err)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "api request failed", "op", e.op, "method", e.method, "path", e.path, "error", err)
		return zero, e.transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return zero, e.transportError(fmt.Errorf("read body: %w", err))
	}

	c.logger.Debug(ctx, "api request finished",
		"op", e.op,
		"method", e.method,
		"path", e.path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get(common.RequestIDHeaderName),
		"elapsed", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, e.serverError(resp.StatusCode, serverMessage(body, e.errorFirst))
	}

	out, err := decode[T](body)
	if err != nil {
		return zero, e.transportError(fmt.Errorf("decode %s response: %w", e.op, err))
	}
	if err := c.schema.check(out); err != nil {
		return zero, e.transportError(fmt.Errorf("%s response: %w", e.op, err))
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, e endpoint) (*http.Request, error) {
	u := c.baseURL + common.APIPrefix + e.path
	if len(e.query) > 0 {
		u += "?" + e.query.Encode()
	}

	var body io.Reader
	if e.body != nil {
		b, err := json.Marshal(e.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", e.op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, e.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", e.op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, c.requestID())

	if !e.public {
		c.authorize(ctx, req)
	}
	return req, nil
}

// authorize attaches both auth header schemes. A token that cannot be read
// is treated like no token at all.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.Warn(ctx, "token unavailable, sending request without auth", "error", err)
		return
	}
	if token == "" {
		return
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	req.Header.Set(common.AuthTokenHeaderName, token)
}

func decode[T any](body []byte) (T, error) {
	var out T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return out, errors.New("empty body")
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return out, errors.New("null body")
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return out, err
	}
	return out, nil
}

// serverMessage extracts the human readable text of an error body, from
// "message" then "error", or the other way round when errorFirst is set.
func serverMessage(body []byte, errorFirst bool) string {
	var eb struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	keys := []json.RawMessage{eb.Message, eb.Error}
	if errorFirst {
		keys[0], keys[1] = keys[1], keys[0]
	}
	for _, raw := range keys {
		var s string
		if len(raw) > 0 && json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func pageQuery(page, limit int) url.Values {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(limit))
	return q
}
