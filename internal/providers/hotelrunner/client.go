package hotelrunner

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
	"time"

	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/obs"
	"github.com/alex-user-go/eywa/internal/ratelimit"
)

// DefaultBaseURL is the HotelRunner apps API root.
const DefaultBaseURL = "https://app.hotelrunner.com/api/v2/apps"

const reservationsPageSize = 50

// ErrRateLimited is returned when the account quota denies a call.
// No request is sent in that case.
var ErrRateLimited = errors.New("RATE_LIMIT_EXCEEDED")

// StatusError is a non-2xx response from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HotelRunner API error: %d - %s", e.StatusCode, e.Body)
}

// Credentials authenticate one HotelRunner property account.
type Credentials struct {
	Token     string
	AccountID string
}

// RequestOptions customise one API call.
type RequestOptions struct {
	Method string
	Query  url.Values
	Body   any
}

// Client calls the HotelRunner REST API under per-account rate limits.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	metrics    *obs.Metrics
	logger     *zap.Logger
}

// NewClient creates a new Client.
func NewClient(baseURL string, timeout time.Duration, limiter *ratelimit.Limiter, metrics *obs.Metrics, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
		metrics: metrics,
		logger:  logger,
	}
}

// Do performs one authenticated call and decodes the JSON response into out.
// The token and hr_id query parameters always come from creds.
func (c *Client) Do(ctx context.Context, endpoint string, creds Credentials, opts RequestOptions, out any) error {
	if !c.limiter.Allow(creds.AccountID) {
		c.metrics.IncRateLimited(creds.AccountID)
		c.metrics.IncSupplierRequest(endpoint, "rate_limited")
		c.logger.Warn("hotelrunner rate limit reached",
			zap.String("hr_id", creds.AccountID),
			zap.String("endpoint", endpoint))
		return ErrRateLimited
	}

	ctx, span := obs.StartSpan(ctx, "hotelrunner"+endpoint)
	defer span.End()

	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	for key, values := range opts.Query {
		q[key] = values
	}
	q.Set("token", creds.Token)
	q.Set("hr_id", creds.AccountID)
	u.RawQuery = q.Encode()

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil && method != http.MethodGet {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncSupplierRequest(endpoint, "transport_error")
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		c.metrics.IncSupplierRequest(endpoint, strconv.Itoa(resp.StatusCode))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	c.metrics.IncSupplierRequest(endpoint, "ok")

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Rooms lists the room and rate plan catalog of a property.
func (c *Client) Rooms(ctx context.Context, creds Credentials) ([]Room, error) {
	var resp roomsResponse
	if err := c.Do(ctx, "/rooms", creds, RequestOptions{}, &resp); err != nil {
		return nil, err
	}
	return resp.Rooms, nil
}

// ReservationFilter narrows a reservations listing.
type ReservationFilter struct {
	ReservationNumber string
	FromDate          string
	Undelivered       *bool
}

// Reservations lists reservations of a property, one page of up to 50.
func (c *Client) Reservations(ctx context.Context, creds Credentials, filter ReservationFilter) ([]Reservation, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(reservationsPageSize))
	if filter.FromDate != "" {
		q.Set("from_date", filter.FromDate)
	}
	if filter.Undelivered != nil {
		q.Set("undelivered", strconv.FormatBool(*filter.Undelivered))
	}
	if filter.ReservationNumber != "" {
		q.Set("reservation_number", filter.ReservationNumber)
	}

	var resp reservationsResponse
	if err := c.Do(ctx, "/reservations", creds, RequestOptions{Query: q}, &resp); err != nil {
		return nil, err
	}
	return resp.Reservations, nil
}
