package bookingclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/dto/responses"
	"rehab-service/internal/pkg/exceptions"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultRetryAttempts  = 3
	defaultRetryBaseDelay = 200 * time.Millisecond
)

var ErrUnauthorized = errors.New("bookingclient: unauthorized")

// APIError is a non-2xx answer from the booking service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bookingclient: status %d: %s", e.StatusCode, e.Message)
}

func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// Client talks to the booking service on behalf of the widget and the admin
// dashboard. It holds at most one admin token and drops it on any 401.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	log            *zap.Logger
	retryAttempts  int
	retryBaseDelay time.Duration

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

func WithRetry(attempts int, baseDelay time.Duration) Option {
	return func(c *Client) {
		c.retryAttempts = attempts
		c.retryBaseDelay = baseDelay
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: defaultTimeout},
		log:            zap.NewNop(),
		retryAttempts:  defaultRetryAttempts,
		retryBaseDelay: defaultRetryBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retryAttempts < 1 {
		c.retryAttempts = 1
	}
	return c
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// GetSlots returns the slots of one date.
func (c *Client) GetSlots(ctx context.Context, date string) ([]responses.Slot, error) {
	var days []responses.DaySlots
	err := c.withRetry(ctx, func() error {
		return c.do(ctx, http.MethodGet, "/slots?date="+url.QueryEscape(date), nil, "", &days)
	})
	if err != nil {
		return nil, err
	}
	for _, day := range days {
		if day.Date == date {
			return day.Slots, nil
		}
	}
	if len(days) > 0 {
		return days[0].Slots, nil
	}
	return []responses.Slot{}, nil
}

// NextAvailability never fails; any error yields the fixed fallback text.
func (c *Client) NextAvailability(ctx context.Context) string {
	var result responses.NextAvailability
	err := c.withRetry(ctx, func() error {
		return c.do(ctx, http.MethodGet, "/next-availability", nil, "", &result)
	})
	if err != nil || result.Display == "" {
		c.log.Debug("bookingclient.NextAvailability falling back", zap.Error(err))
		return constvars.NextAvailabilityFallbackDisplay
	}
	return result.Display
}

// CreateOrder validates the patient details locally and only then calls the
// service.
func (c *Client) CreateOrder(ctx context.Context, request *requests.CreateOrder) (*responses.CreateOrder, error) {
	details := PatientDetails{Name: request.Name, Email: request.Email, Phone: request.Phone}
	if err := ValidateDetails(details); err != nil {
		return nil, err
	}

	result := new(responses.CreateOrder)
	if err := c.postJSON(ctx, "/create-order", request, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) VerifyPayment(ctx context.Context, request *requests.VerifyPayment) (*responses.VerifyPayment, error) {
	result := new(responses.VerifyPayment)
	if err := c.postJSON(ctx, "/verify-payment", request, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	result := new(responses.AdminLogin)
	err := c.do(ctx, http.MethodPost, "/admin/login", strings.NewReader(form.Encode()), constvars.MIMEApplicationForm, result)
	if err != nil {
		return err
	}
	if result.AccessToken == "" {
		return ErrUnauthorized
	}
	c.setToken(result.AccessToken)
	return nil
}

// Logout forgets the token even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	if c.Token() == "" {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/admin/logout", nil, "", nil)
	c.setToken("")
	return err
}

func (c *Client) ListBookings(ctx context.Context, date string) ([]responses.Booking, error) {
	path := "/admin/bookings"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}

	var bookings []responses.Booking
	err := c.withRetry(ctx, func() error {
		return c.do(ctx, http.MethodGet, path, nil, "", &bookings)
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) ResendEmail(ctx context.Context, bookingID int64) error {
	return c.do(ctx, http.MethodPost, "/admin/resend-email/"+strconv.FormatInt(bookingID, 10), nil, "", nil)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), constvars.MIMEApplicationJSON, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set(constvars.HeaderContentType, contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && path != "/admin/login" {
		c.setToken("")
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	envelope := new(exceptions.CustomError)
	if err := json.Unmarshal(raw, envelope); err == nil && envelope.ClientMessage != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.ClientMessage}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
}

// withRetry retries idempotent reads on transport errors and 5xx answers with
// exponential backoff. 4xx answers and ErrUnauthorized return immediately.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	delay := c.retryBaseDelay
	var err error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		err = fn()
		if err == nil || !retryable(err) || attempt == c.retryAttempts {
			return err
		}
		c.log.Debug("bookingclient retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return err
}

func retryable(err error) bool {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
