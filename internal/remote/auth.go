package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// User is the backend's auth identity. Its ID is shared with the
// "profiles" table.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is a signed-in identity plus the tokens that authorize
// table reads and writes on its behalf.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

// Auth wraps the backend's identity endpoints and holds the current
// session. State changes fan out to registered listeners.
type Auth struct {
	c *Client

	mu      sync.RWMutex
	session *Session
	subs    map[int]func(*Session)
	nextSub int
}

func newAuth(c *Client) *Auth {
	return &Auth{c: c, subs: make(map[int]func(*Session))}
}

// Session returns the current session, or nil when signed out.
func (a *Auth) Session() *Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// OnChange registers fn to run on every auth state change (sign-in gets
// the new session, sign-out gets nil). The returned func unsubscribes.
func (a *Auth) OnChange(fn func(*Session)) func() {
	a.mu.Lock()
	id := a.nextSub
	a.nextSub++
	a.subs[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.subs, id)
		a.mu.Unlock()
	}
}

func (a *Auth) setSession(s *Session) {
	a.mu.Lock()
	a.session = s
	fns := make([]func(*Session), 0, len(a.subs))
	for _, fn := range a.subs {
		fns = append(fns, fn)
	}
	a.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// SignIn exchanges a credential pair for a session.
func (a *Auth) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	err := a.post(ctx, "/auth/v1/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	}, &s)
	if err != nil {
		return nil, err
	}

	a.setSession(&s)
	return &s, nil
}

// SignUp registers a credential pair. Metadata travels with the identity
// ("data" in the sign-up payload); profile rows are the caller's concern.
func (a *Auth) SignUp(ctx context.Context, email, password string, metadata map[string]string) (*Session, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}
	if len(metadata) > 0 {
		payload["data"] = metadata
	}

	var s Session
	if err := a.post(ctx, "/auth/v1/signup", payload, &s); err != nil {
		return nil, err
	}

	if s.AccessToken != "" {
		a.setSession(&s)
	}
	return &s, nil
}

// SignOut revokes the current session. The local session is cleared even
// if the revoke call fails.
func (a *Auth) SignOut(ctx context.Context) error {
	err := a.post(ctx, "/auth/v1/logout", nil, nil)
	a.setSession(nil)
	return err
}

func (a *Auth) post(ctx context.Context, path string, payload, dest any) error {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal auth payload: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build auth request: %w", err)
	}
	a.c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("decode auth response: %w", err)
		}
	}
	return nil
}
