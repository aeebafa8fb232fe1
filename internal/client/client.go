package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	api "github.com/flightctl/romannumeral/api/v1"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// maxResponseBytes caps decoded bodies; a full range response is well below it.
const maxResponseBytes = 1 << 20

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	api.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s (%d %s)", e.Message, e.StatusCode, e.ErrorCode)
}

type Client struct {
	server *url.URL
	http   *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithTimeout sets a per request timeout, 0 disables it.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.http.Timeout = d
	}
}

func NewClient(server string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(server, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing server url: %w", err)
	}
	c := &Client{
		server: u,
		http:   &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Convert requests the numeral for n.
func (c *Client) Convert(ctx context.Context, n int) (*api.ConversionResponse, error) {
	q := url.Values{}
	q.Set(api.QueryParamValue, strconv.Itoa(n))

	var out api.ConversionResponse
	if err := c.getJSON(ctx, api.ServerUrlConvert, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConvertRange requests the numerals for every integer in [min, max].
func (c *Client) ConvertRange(ctx context.Context, min, max int) (*api.RangeConversionResponse, error) {
	q := url.Values{}
	q.Set(api.QueryParamMin, strconv.Itoa(min))
	q.Set(api.QueryParamMax, strconv.Itoa(max))

	var out api.RangeConversionResponse
	if err := c.getJSON(ctx, api.ServerUrlConvertRange, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Version returns the server build information.
func (c *Client) Version(ctx context.Context) (*api.Version, error) {
	var out api.Version
	if err := c.getJSON(ctx, api.ServerUrlVersion, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health calls the liveness endpoint and returns its body.
func (c *Client) Health(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, api.ServerUrlHealthcheck, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}

// Ready reports whether the readiness endpoint answered 200.
func (c *Client) Ready(ctx context.Context) error {
	resp, err := c.do(ctx, api.ServerUrlReadyz, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, path, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// do issues a GET and turns non-2xx responses into *APIError.
func (c *Client) do(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u := c.server.JoinPath(path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(middleware.RequestIDHeader, uuid.NewString())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = json.Unmarshal(body, &apiErr.ErrorResponse)
	return nil, apiErr
}
