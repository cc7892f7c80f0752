package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://api.callmebot.com"
	responseBodyReadLimit int64 = 1024
)

var errDestinationRequired = errors.New("notification destination phone is required")

// Client sends WhatsApp text messages through the CallMeBot gateway.
// Delivery is best effort; callers own swallowing failures.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured gateway base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds the CallMeBot client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client
}

// Send delivers a pre-formatted text message to the destination phone.
func (c *Client) Send(ctx context.Context, phone, apiKey, message string) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "notify client not configured")
	}
	if strings.TrimSpace(phone) == "" {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errDestinationRequired, "missing destination")
	}
	if strings.TrimSpace(apiKey) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification api key is required")
	}

	query := url.Values{}
	query.Set("phone", phone)
	query.Set("text", message)
	query.Set("apikey", apiKey)
	endpoint := fmt.Sprintf("%s/whatsapp.php?%s", strings.TrimRight(c.baseURL, "/"), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build notification request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute notification request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), "notification request failed")
	}

	return nil
}
