// Package store is the client SDK for the hosted record/auth service that
// backs the storefront. The service exposes plain CRUD over named record
// collections with per-call atomicity only: no multi-record transactions,
// no server-side joins. Everything the storefront persists goes through
// this client.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain"
)

// Collection names understood by the record service.
const (
	CollectionProducts   = "products"
	CollectionCartItems  = "cartItems"
	CollectionOrders     = "orders"
	CollectionOrderItems = "orderItems"
)

// Client talks to one record service. It is safe for concurrent use; the
// embedded http.Client owns all transport timeouts, the SDK adds none.
type Client struct {
	baseURL string
	apiKey  string
	token   string
	httpc   *http.Client
}

// New builds a Client for the service at baseURL authenticating with apiKey.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// WithToken returns a shallow copy of the client that also sends the given
// user bearer token, for calls made on behalf of a signed-in user.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Query narrows a List call. Where matches fields for equality; OrderBy
// names a field, optionally suffixed " desc"; Limit caps the result when
// positive.
type Query struct {
	Where   map[string]string
	OrderBy string
	Limit   int
}

func (q Query) encode() string {
	v := url.Values{}
	keys := make([]string, 0, len(q.Where))
	for k := range q.Where {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set("where."+k, q.Where[k])
	}
	if q.OrderBy != "" {
		v.Set("orderBy", q.OrderBy)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v.Encode()
}

type listEnvelope[T any] struct {
	Items []T `json:"items"`
}

func list[T any](ctx context.Context, c *Client, collection string, q Query) ([]T, error) {
	path := "/v1/records/" + collection
	if enc := q.encode(); enc != "" {
		path += "?" + enc
	}
	var env listEnvelope[T]
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

func (c *Client) create(ctx context.Context, collection string, record any) error {
	return c.do(ctx, http.MethodPost, "/v1/records/"+collection, record, nil)
}

func (c *Client) update(ctx context.Context, collection, id string, patch any) error {
	return c.do(ctx, http.MethodPatch, "/v1/records/"+collection+"/"+url.PathEscape(id), patch, nil)
}

// deleteRecord is idempotent: the service answers 204 whether or not the
// id existed.
func (c *Client) deleteRecord(ctx context.Context, collection, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/records/"+collection+"/"+url.PathEscape(id), nil, nil)
}

// Me returns the identity behind the client's bearer token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/v1/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Ping checks service liveness.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrStoreUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return domain.ErrUnauthenticated
	default:
		return fmt.Errorf("%w: %s %s: status %d", domain.ErrStoreUnavailable, method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", domain.ErrStoreUnavailable, method, path, err)
	}
	return nil
}
