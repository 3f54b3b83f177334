package remote

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the hosted backend: table-scoped CRUD under /rest/v1 and
// identity under /auth/v1. Every read and write is one network round trip;
// the client holds no data beyond the current auth session.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	auth    *Auth
}

type Config struct {
	BaseURL string
	AnonKey string
	Timeout time.Duration

	// HTTPClient overrides the default instrumented client (used in tests).
	HTTPClient *http.Client
}

func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		anonKey: cfg.AnonKey,
		http:    hc,
	}
	c.auth = newAuth(c)
	return c
}

// Auth exposes the identity endpoints and the current session.
func (c *Client) Auth() *Auth {
	return c.auth
}

// From starts a query against one backend table.
func (c *Client) From(table string) *Query {
	return &Query{c: c, table: table}
}

// token is what goes into the Authorization header: the signed-in user's
// access token, or the anon key when nobody is signed in.
func (c *Client) token() string {
	if s := c.auth.Session(); s != nil {
		return s.AccessToken
	}
	return c.anonKey
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.token())
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
}

// decodeError turns a non-2xx backend response into *Error.
func decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Code    string `json:"code"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Msg
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = resp.Status
	}
	return &Error{Status: resp.StatusCode, Code: body.Code, Message: msg}
}
