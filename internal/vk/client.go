package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "vkgraph/pkg/errors"
	"vkgraph/pkg/logger"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the VK API endpoint prefix.
	DefaultBaseURL = "https://api.vk.com/method"
	// APIVersion is the fixed protocol version sent with every request.
	APIVersion = "5.131"

	// errCodePrivateProfile is the API error code VK reports for a
	// profile the requesting token cannot see. It is a data outcome,
	// not a failure.
	errCodePrivateProfile = 30

	defaultRetries    = 3
	defaultRetryDelay = 2 * time.Second
)

// Credential selects which access token a call is made with.
type Credential int

const (
	// CredentialUser is the primary user access token.
	CredentialUser Credential = iota
	// CredentialService is the secondary service token used for bulk
	// group metadata lookups.
	CredentialService
)

// Result is the outcome of a successful API call. Private marks the
// private-profile sentinel: Payload is empty and callers must branch
// on it instead of decoding.
type Result struct {
	Private bool
	Payload json.RawMessage
}

// Decode unmarshals the payload into v, reporting a shape error when
// the payload does not match.
func (r Result) Decode(method string, v interface{}) error {
	if err := json.Unmarshal(r.Payload, v); err != nil {
		return apperrors.NewUnexpectedShape(method, "payload did not decode", err)
	}
	return nil
}

type apiEnvelope struct {
	Response json.RawMessage `json:"response"`
	Error    *apiError       `json:"error"`
}

type apiError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// Client issues authenticated requests to the VK API with bounded
// retry. It is safe for sequential use; the crawler is single-threaded
// by construction.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	userToken    string
	serviceToken string
	retries      int
	retryDelay   time.Duration
	logger       *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint prefix. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetry overrides the retry budget and the fixed delay between
// attempts.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.retries = attempts
		c.retryDelay = delay
	}
}

// NewClient creates a VK API client for the given token pair.
func NewClient(userToken, serviceToken string, opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		baseURL:      DefaultBaseURL,
		userToken:    userToken,
		serviceToken: serviceToken,
		retries:      defaultRetries,
		retryDelay:   defaultRetryDelay,
		logger:       logger.Get(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call issues one API method with the selected credential, retrying
// transport failures and non-sentinel API errors up to the retry
// budget. The private-profile sentinel is returned immediately as a
// successful Result with Private set.
func (c *Client) Call(ctx context.Context, method string, params url.Values, cred Credential) (Result, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			c.logger.Info("retrying VK request",
				zap.String("method", method),
				zap.Int("attempt", attempt),
				zap.Duration("delay", c.retryDelay),
			)
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		res, err := c.do(ctx, method, params, cred)
		if err == nil {
			return res, nil
		}
		lastErr = err
		c.logger.Error("VK request failed",
			zap.String("method", method),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return Result{}, apperrors.NewAPIRequestFailed(method, c.retries, lastErr)
}

func (c *Client) do(ctx context.Context, method string, params url.Values, cred Credential) (Result, error) {
	query := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	if cred == CredentialService && c.serviceToken != "" {
		query.Set("access_token", c.serviceToken)
	} else {
		query.Set("access_token", c.userToken)
	}
	query.Set("v", APIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+method, nil)
	if err != nil {
		return Result{}, err
	}
	req.URL.RawQuery = query.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Result{}, fmt.Errorf("malformed response body: %w", err)
	}

	if envelope.Error != nil {
		if envelope.Error.Code == errCodePrivateProfile {
			c.logger.Warn("profile is private",
				zap.String("method", method),
				zap.String("user_id", params.Get("user_id")),
			)
			return Result{Private: true}, nil
		}
		return Result{}, envelope.Error
	}

	return Result{Payload: envelope.Response}, nil
}
