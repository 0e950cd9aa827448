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
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hasmiknersesyan/DummyJSON/internal/config"
	"github.com/hasmiknersesyan/DummyJSON/internal/model"
)

// ErrTransport marks failures where the request never completed
// (DNS, timeout, connection reset). A completed call with a non-2xx
// status is NOT an error: it comes back as a normal Response.
var ErrTransport = errors.New("transport failure")

// Response is the uniform envelope produced for every call.
type Response struct {
	StatusCode int
	Status     string
	OK         bool // 2xx
	Header     http.Header
	Body       []byte
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// Decode decodes the response body into T.
func Decode[T any](r *Response) (T, error) {
	var out T
	err := r.JSON(&out)
	return out, err
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

func New(cfg config.Config) *Client {
	tr := &http.Transport{
		MaxIdleConns:        128,
		MaxIdleConnsPerHost: 64,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	tmo := cfg.Timeout
	if tmo <= 0 {
		tmo = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Transport: tr},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    tmo,
	}
}

// ---- Operations ----

func (c *Client) ListProducts(ctx context.Context, limit, skip int) (*Response, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	return c.do(ctx, http.MethodGet, "/products", q, nil)
}

func (c *Client) GetProduct(ctx context.Context, id int) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/products/"+strconv.Itoa(id), nil, nil)
}

// SearchProducts forwards the query as-is; empty, special-character
// and oversized terms get nothing beyond standard parameter encoding.
func (c *Client) SearchProducts(ctx context.Context, query string) (*Response, error) {
	q := url.Values{}
	q.Set("q", query)
	return c.do(ctx, http.MethodGet, "/products/search", q, nil)
}

func (c *Client) ListCategories(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/products/categories", nil, nil)
}

// ListByCategory accepts either a bare-string or structured category
// and resolves it to the canonical identifier before issuing the call.
func (c *Client) ListByCategory(ctx context.Context, cat model.Category) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/products/category/"+url.PathEscape(cat.Canonical()), nil, nil)
}

// Mutations are simulated by the remote service: a success response
// does not imply durable storage.

func (c *Client) CreateProduct(ctx context.Context, payload any) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/products/add", nil, payload)
}

func (c *Client) ReplaceProduct(ctx context.Context, id int, payload any) (*Response, error) {
	return c.do(ctx, http.MethodPut, "/products/"+strconv.Itoa(id), nil, payload)
}

func (c *Client) PatchProduct(ctx context.Context, id int, payload any) (*Response, error) {
	return c.do(ctx, http.MethodPatch, "/products/"+strconv.Itoa(id), nil, payload)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) (*Response, error) {
	return c.do(ctx, http.MethodDelete, "/products/"+strconv.Itoa(id), nil, nil)
}

// ---- HTTP core ----

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, method, u, rdr)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, u, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	log.Debug().
		Str("method", method).
		Str("url", u).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request complete")

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
