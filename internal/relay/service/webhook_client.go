package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/storyboard-studio/storyboard-relay/internal/metrics"
)

// HTTPError is returned when the webhook answers with a status >= 400. The
// relay hands status and body back to its caller unchanged.
type HTTPError struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("webhook returned status %d", e.StatusCode)
}

// WebhookClient handles communication with the remote automation webhook
type WebhookClient struct {
	url        string
	httpClient *http.Client
}

// NewWebhookClient creates a new webhook client. A non-positive timeout
// falls back to WebhookTimeout.
func NewWebhookClient(webhookURL string, timeout time.Duration) *WebhookClient {
	if timeout <= 0 {
		timeout = WebhookTimeout
	}
	return &WebhookClient{
		url: webhookURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// URL returns the webhook endpoint.
func (c *WebhookClient) URL() string {
	return c.url
}

// Get forwards a GET with the caller's raw query string appended verbatim.
func (c *WebhookClient) Get(ctx context.Context, rawQuery string) ([]byte, error) {
	reqURL := c.url
	if rawQuery != "" {
		reqURL += "?" + rawQuery
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.do(ctx, "get_webhook", req)
}

// Post forwards body unmodified as application/json.
func (c *WebhookClient) Post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, "post_webhook", req)
}

func (c *WebhookClient) do(ctx context.Context, operation string, req *http.Request) ([]byte, error) {
	logger := NewLogger(ctx)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.LogError(operation, err)
		metrics.RecordWebhookCall(req.Method, time.Since(start), err)
		return nil, fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		logger.LogError(operation, err)
		metrics.RecordWebhookCall(req.Method, duration, err)
		return nil, fmt.Errorf("read webhook response: %w", err)
	}

	if resp.StatusCode >= 400 {
		httpErr := &HTTPError{
			StatusCode:  resp.StatusCode,
			Body:        body,
			ContentType: resp.Header.Get("Content-Type"),
		}
		logger.LogWarnf(operation, "webhook returned status %d", resp.StatusCode)
		metrics.RecordWebhookCall(req.Method, duration, httpErr)
		return nil, httpErr
	}

	logger.LogInfof(operation, "webhook answered status=%d bytes=%d in %s", resp.StatusCode, len(body), duration)
	metrics.RecordWebhookCall(req.Method, duration, nil)
	return body, nil
}
