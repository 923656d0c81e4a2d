package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/baletrack/bizpulse/internal/domain/models"
)

// Client exposes the digest notification operation used by the scheduler.
type Client interface {
	SendDigest(ctx context.Context, digest models.ReportDigest) error
}

// WebhookClient is a resty-backed implementation of Client that POSTs
// digests to a configured operator webhook.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds a webhook notification client.
func NewClient(webhookURL string) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: webhookURL,
	}
}

// webhookError represents the receiver's error payload, when it sends one.
type webhookError struct {
	Message string `json:"message"`
}

// SendDigest delivers one monthly digest to the webhook.
func (c *WebhookClient) SendDigest(ctx context.Context, digest models.ReportDigest) error {
	apiErr := new(webhookError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(digest).
		SetError(apiErr).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send digest webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("digest webhook error: status=%d, message=%s", resp.StatusCode(), apiErr.Message)
	}

	return nil
}
