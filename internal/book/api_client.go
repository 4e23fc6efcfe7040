package book

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

// APIClient implements Repository against a remote book service over HTTP.
type APIClient struct {
	client     *resty.Client
	maxRetries uint
}

// APIClientConfig configures the remote book service client.
type APIClientConfig struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
}

// NewAPIClient creates a new APIClient.
func NewAPIClient(cfg APIClientConfig) *APIClient {
	client := resty.New().SetBaseURL(cfg.BaseURL)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
	maxRetries := uint(3)
	if cfg.MaxRetries > 0 {
		maxRetries = uint(cfg.MaxRetries)
	}
	return &APIClient{client: client, maxRetries: maxRetries}
}

// List fetches all books from the remote service, retrying transient
// failures with backoff.
func (c *APIClient) List(ctx context.Context) ([]Book, error) {
	var books []Book
	err := retry.Do(
		func() error {
			res, err := c.client.R().
				SetContext(ctx).
				Get("/books")
			if err != nil {
				return fmt.Errorf("client.R().Get(/books) > %w", err)
			}
			if res.StatusCode() != http.StatusOK {
				return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
			}
			if err := json.Unmarshal(res.Body(), &books); err != nil {
				return retry.Unrecoverable(fmt.Errorf("json.Unmarshal > %w", err))
			}
			return nil
		},
		retry.Attempts(c.maxRetries),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("retry.Do > %w", err)
	}
	return books, nil
}
