package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	"github.com/ariefcatur/nexus-admin/internal/config"
	"github.com/google/uuid"
	"io"
	"net/http"
	"time"
)

const HeaderIdempotencyKey = "Idempotency-Key"

// Client talks to the catalog REST API. Calls are single-shot: no retries and
// no cancellation beyond what the caller's context carries.
type Client struct {
	env     config.Environment
	hc      *http.Client
	timeout time.Duration
	newKey  func() string
}

type Option func(*Client)

// WithTimeout bounds each request. Zero means no limit.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

// WithKeyFunc replaces the idempotency key generator.
func WithKeyFunc(f func() string) Option { return func(c *Client) { c.newKey = f } }

func New(env config.Environment, hc *http.Client, opts ...Option) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	c := &Client{env: env, hc: hc, newKey: uuid.NewString}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Environment() config.Environment { return c.env }

func (c *Client) Products() *Service[catalog.Product, catalog.ProductFields] {
	return NewService[catalog.Product, catalog.ProductFields](c, catalog.ResourceProducts)
}

func (c *Client) Users() *Service[catalog.User, catalog.UserFields] {
	return NewService[catalog.User, catalog.UserFields](c, catalog.ResourceUsers)
}

func (c *Client) Stores() *Service[catalog.Store, catalog.StoreFields] {
	return NewService[catalog.Store, catalog.StoreFields](c, catalog.ResourceStores)
}

func (c *Client) Orders() *Service[catalog.Order, catalog.OrderFields] {
	return NewService[catalog.Order, catalog.OrderFields](c, catalog.ResourceOrders)
}

func (c *Client) collectionURL(resource string) string {
	return fmt.Sprintf("%s/api/%s/", c.env.BaseURL, resource)
}

func (c *Client) itemURL(resource string, id int64) string {
	return fmt.Sprintf("%s/api/%s/%d/", c.env.BaseURL, resource, id)
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// do sends one request and decodes a 2xx body into out (when out is non-nil).
// Non-2xx responses come back as the status plus the decoded error body.
func (c *Client) do(ctx context.Context, method, url string, header http.Header, in, out any) (int, errorBody, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, errorBody{}, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, errorBody{}, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, errorBody{}, &NetworkError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &eb) != nil || eb.Error == "" {
			eb.Error = string(bytes.TrimSpace(raw))
		}
		return resp.StatusCode, eb, nil
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, errorBody{}, &ServerError{Status: resp.StatusCode, Message: "decode response: " + err.Error()}
		}
	}
	return resp.StatusCode, errorBody{}, nil
}
