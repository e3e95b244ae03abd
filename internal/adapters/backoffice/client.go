// internal/adapters/backoffice/client.go
package backoffice

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hoteldesk/internal/adapters/observability"
	"hoteldesk/internal/domain"
)

// Client is the single configured transport shared by all backoffice API
// modules. It injects the persisted bearer token into every outgoing request
// and reacts to authentication failures by clearing the token and notifying
// the composition root; everything else passes through to the caller.
type Client struct {
	base   string
	hc     *http.Client
	tokens domain.TokenStore
	rl     *rate.Limiter

	// onAuthFailure is invoked after the stored token has been cleared,
	// once per failing response. The navigation decision lives with the
	// owner of this hook, not here.
	onAuthFailure func()
}

func New(base string, tokens domain.TokenStore, onAuthFailure func(), timeout time.Duration, rps int) (*Client, error) {
	if tokens == nil {
		return nil, fmt.Errorf("token store is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base:          strings.TrimRight(base, "/"),
		hc:            &http.Client{Timeout: timeout},
		tokens:        tokens,
		rl:            rate.NewLimiter(rate.Limit(rps), rps),
		onAuthFailure: onAuthFailure,
	}, nil
}

// ---- Internals ----

func (c *Client) newRequest(ctx context.Context, method, u string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hoteldesk/1.0")

	// request-time read: login/logout may have changed the token since the
	// client was built
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("token read failed, sending unauthenticated")
	} else if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

// handleResponse decodes a 2xx body into out, or builds the *APIError for
// anything else. A 401 clears the stored token and fires the auth-failure
// hook before the error is returned, so the caller still sees the rejection.
func (c *Client) handleResponse(ctx context.Context, resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	apiErr := &APIError{Status: resp.StatusCode}
	var payload struct {
		Detail ErrorDetail `json:"detail"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(b, &payload); err == nil {
		apiErr.Detail = payload.Detail
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// clear first, notify second: the hook may trigger navigation and
		// must observe storage without a token
		if err := c.tokens.Clear(ctx); err != nil {
			log.Warn().Err(err).Msg("token clear after 401 failed")
		}
		observability.ObserveSession("auth_failure")
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
	}
	return apiErr
}

// get performs a GET with client-side rate limiting and retries on 429 and
// transient 5xx, honoring Retry-After when provided. Reads are the only
// retried requests: the backend has no idempotency keys, so mutations go out
// exactly once.
func (c *Client) get(ctx context.Context, op, path string, q url.Values, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := c.newRequest(ctx, http.MethodGet, u, nil, "")
		if err != nil {
			return err
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveExternal("backoffice", op, 0, time.Since(start))
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("backoffice", op, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = &APIError{Status: resp.StatusCode}
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		default:
			return c.handleResponse(ctx, resp, out)
		}
	}
	return lastErr
}

// send issues a single-attempt request with a JSON body (or none).
func (c *Client) send(ctx context.Context, op, method, path string, body, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var rdr io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, c.base+path, rdr, contentType)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		observability.ObserveExternal("backoffice", op, 0, time.Since(start))
		return err
	}
	observability.ObserveExternal("backoffice", op, resp.StatusCode, time.Since(start))
	return c.handleResponse(ctx, resp, out)
}

// postForm issues a single-attempt application/x-www-form-urlencoded POST
// (the login endpoint takes form credentials, not JSON).
func (c *Client) postForm(ctx context.Context, op, path string, form url.Values, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.base+path,
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		observability.ObserveExternal("backoffice", op, 0, time.Since(start))
		return err
	}
	observability.ObserveExternal("backoffice", op, resp.StatusCode, time.Since(start))
	return c.handleResponse(ctx, resp, out)
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to
// +50% concurrency-safe jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
