// Package api implements the HTTP collaborators for the remote catalog
// service: authentication, books, genres, reviews, shelves, tutorials and
// user administration. The remote service owns all persistence; this
// package only moves JSON across the wire and classifies failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the bearer credential attached to outgoing
// requests. Token reports ok=false when no credential is available, in
// which case the request is sent unauthenticated.
type TokenSource interface {
	Token() (token string, ok bool)
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func() (string, bool)

// Token implements TokenSource.
func (f TokenFunc) Token() (string, bool) { return f() }

// Client talks to the remote catalog API.
type Client struct {
	base string
	http *http.Client
}

// New constructs a Client for the API rooted at baseURL. Every request
// carries "Authorization: Bearer <token>" whenever src yields a token.
func New(baseURL string, src TokenSource) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: &bearerTransport{src: src, next: http.DefaultTransport},
		},
	}
}

type ctxKey struct{}

// WithToken returns a context carrying an explicit bearer credential.
// A context token takes precedence over the client's TokenSource, which
// lets request-scoped sessions share one Client.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// TokenFromContext extracts a bearer credential set by WithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(ctxKey{}).(string)
	return token, ok && token != ""
}

// bearerTransport injects the bearer credential into each request, the
// request-interceptor pattern of the original client.
type bearerTransport struct {
	src  TokenSource
	next http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, ok := TokenFromContext(req.Context())
	if !ok && t.src != nil {
		token, ok = t.src.Token()
	}
	if ok {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.next.RoundTrip(req)
}

// do performs one JSON round trip. body and out may be nil. Non-2xx
// responses are classified into the package error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classify(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}
