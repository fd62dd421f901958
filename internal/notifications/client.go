package notifications

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hsn_validator/internal/hsn"
	"hsn_validator/internal/retry"

	"github.com/rs/zerolog/log"
)

const maxCodesToShow = 10

type Client struct {
	httpClient *http.Client
	baseURL    string
	topic      string
	enabled    bool
	priority   string
	retry      retry.Config
}

type NotificationError struct {
	Type       string
	StatusCode int
	Underlying error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failed [%s]: %v", e.Type, e.Underlying)
}

func (e *NotificationError) IsRetryable() bool {
	switch e.Type {
	case "network", "server", "rate_limit":
		return true
	case "auth", "client":
		return false
	default:
		return e.StatusCode >= 500
	}
}

func NewClient(baseURL, topic string, enabled bool, priority string, retryConfig retry.Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		topic:    topic,
		enabled:  enabled,
		priority: priority,
		retry:    retryConfig,
	}
}

// Enabled reports whether messages are actually sent.
func (c *Client) Enabled() bool {
	return c.enabled
}

func (c *Client) SendNotification(ctx context.Context, message string) error {
	if !c.enabled {
		log.Debug().Msg("Notifications disabled, skipping")
		return nil
	}

	_, err := retry.WithRetry(ctx, c.retry, func(ctx context.Context) (struct{}, error) {
		err := c.sendSingleNotification(ctx, message)
		if notifErr, ok := err.(*NotificationError); ok && !notifErr.IsRetryable() {
			return struct{}{}, retry.Permanent(err)
		}
		return struct{}{}, err
	})
	if err != nil {
		log.Warn().Err(err).Str("topic", c.topic).Msg("Notification failed")
		return err
	}
	return nil
}

func (c *Client) sendSingleNotification(ctx context.Context, message string) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, c.topic)

	log.Debug().
		Str("url", url).
		Str("message", message).
		Msg("Sending notification")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(message))
	if err != nil {
		return &NotificationError{Type: "client", Underlying: err}
	}

	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Title", "HSN validation")
	if c.priority != "" {
		req.Header.Set("Priority", c.priority)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NotificationError{Type: "network", Underlying: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &NotificationError{
			Type:       categorizeHTTPError(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Underlying: fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status),
		}
	}

	log.Debug().Int("status_code", resp.StatusCode).Msg("Notification sent successfully")
	return nil
}

// NotifyValidationSummary posts one message listing the codes that did not
// validate. Nothing is sent when every code is valid.
func (c *Client) NotifyValidationSummary(ctx context.Context, results []hsn.ValidationResult) error {
	if !c.enabled {
		return nil
	}

	var failed []hsn.ValidationResult
	for _, r := range results {
		if !r.Valid() {
			failed = append(failed, r)
		}
	}
	if len(failed) == 0 {
		log.Debug().Int("checked", len(results)).Msg("All codes valid, no notification needed")
		return nil
	}

	log.Info().
		Int("checked", len(results)).
		Int("failed", len(failed)).
		Msg("Sending validation summary notification")
	return c.SendNotification(ctx, formatSummary(failed, len(results)))
}

func formatSummary(failed []hsn.ValidationResult, checked int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("HSN check: %d of %d codes failed validation\n", len(failed), checked))

	shown := min(len(failed), maxCodesToShow)
	for _, r := range failed[:shown] {
		sb.WriteString(fmt.Sprintf("• %s (%s): %s\n", r.Code, r.Status, r.Message))
	}
	if len(failed) > shown {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(failed)-shown))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func categorizeHTTPError(statusCode int) string {
	switch {
	case statusCode == 401 || statusCode == 403:
		return "auth"
	case statusCode == 429:
		return "rate_limit"
	case statusCode >= 400 && statusCode < 500:
		return "client"
	case statusCode >= 500:
		return "server"
	default:
		return "unknown"
	}
}
