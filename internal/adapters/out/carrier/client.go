package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/cenkalti/backoff/v5"
)

const (
	maxErrorBody       = 2048
	defaultLabelTries  = 3
	defaultLabelWaitLo = 500 * time.Millisecond
	defaultLabelWaitHi = 5 * time.Second
)

// Client is the HTTP client of one carrier. Booking is never retried; label downloads
// are retried on 5xx and transport errors only.
type Client struct {
	name         string
	mode         Mode
	endpoint     Endpoint
	shaper       Shaper
	http         *http.Client
	labelTries   uint
	labelBackoff func() backoff.BackOff
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithLabelRetry sets the number of label download attempts and the first wait between them.
func WithLabelRetry(tries uint, initial time.Duration) Option {
	if tries == 0 {
		tries = 1
	}
	return func(cl *Client) {
		cl.labelTries = tries
		cl.labelBackoff = func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = initial
			bo.MaxInterval = 10 * initial
			return bo
		}
	}
}

// NewClient selects the endpoint for mode once; it cannot be switched afterwards.
func NewClient(name string, mode Mode, creds Credentials, shaper Shaper, opts ...Option) (*Client, error) {
	endpoint := creds.forMode(mode)
	if _, err := url.ParseRequestURI(endpoint.BaseURL); err != nil {
		return nil, fmt.Errorf("carrier %s %s base url: %w", name, mode, err)
	}

	c := &Client{
		name:       name,
		mode:       mode,
		endpoint:   Endpoint{BaseURL: strings.TrimRight(endpoint.BaseURL, "/"), APIKey: endpoint.APIKey},
		shaper:     shaper,
		http:       &http.Client{Timeout: 30 * time.Second},
		labelTries: defaultLabelTries,
		labelBackoff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = defaultLabelWaitLo
			bo.MaxInterval = defaultLabelWaitHi
			return bo
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Name() string {
	return c.name
}

// Mode returns the environment chosen at construction.
func (c *Client) Mode() Mode {
	return c.mode
}

type bookingResponse struct {
	Reference string `json:"reference"`
	ID        string `json:"id"`
}

// Book sends one booking request. Failures are reported in the result, never as an error.
func (c *Client) Book(ctx context.Context, req ports.BookingRequest) ports.BookingResult {
	body, err := json.Marshal(c.shaper.Payload(req))
	if err != nil {
		return ports.BookingResult{Error: err.Error()}
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, c.shaper.Path(), bytes.NewReader(body))
	if err != nil {
		return ports.BookingResult{Error: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.OrderID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return ports.BookingResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ports.BookingResult{Error: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ports.BookingResult{Error: failureText(resp, raw)}
	}

	var decoded bookingResponse
	if len(raw) > 0 {
		if err = json.Unmarshal(raw, &decoded); err != nil {
			return ports.BookingResult{Error: fmt.Sprintf("decode booking response: %v", err)}
		}
	}
	ref := decoded.Reference
	if ref == "" {
		ref = decoded.ID
	}
	return ports.BookingResult{Success: true, CarrierReference: ref}
}

// FetchLabel downloads the PDF label of a booking.
func (c *Client) FetchLabel(ctx context.Context, carrierReference string) ([]byte, error) {
	path := "/v1/labels/" + url.PathEscape(carrierReference)

	return backoff.Retry(ctx, func() ([]byte, error) {
		label, err := c.fetchOnce(ctx, path)
		if err != nil && !IsTemporary(err) {
			return nil, backoff.Permanent(err)
		}
		return label, err
	},
		backoff.WithBackOff(c.labelBackoff()),
		backoff.WithMaxTries(c.labelTries),
	)
}

func (c *Client) fetchOnce(ctx context.Context, path string) ([]byte, error) {
	httpReq, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/pdf")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: trimBody(raw)}
	}
	return raw, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.endpoint.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.endpoint.APIKey)
	}
	return req, nil
}

// failureText is the trimmed response body, or the status line when the body is empty.
func failureText(resp *http.Response, raw []byte) string {
	if text := trimBody(raw); text != "" {
		return text
	}
	return resp.Status
}

func trimBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return text
}
