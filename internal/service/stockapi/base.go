package stockapi

import (
	"context"
	"fmt"
	"time"

	"StockLens/pkg/config"
	xhttp "StockLens/pkg/http"
)

// HTTPServiceBase provides a DRY foundation for the upstream stock-backend
// clients. It centralizes client construction and JSON GET request handling.
type HTTPServiceBase struct {
	baseURL  string
	client   *xhttp.Client
	attempts int
}

// NewHTTPServiceBase builds an HTTP client with timeout and base URL from config.
func NewHTTPServiceBase(cfg *config.Config) *HTTPServiceBase {
	timeout := cfg.Upstream.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	attempts := cfg.Upstream.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &HTTPServiceBase{
		baseURL:  cfg.Upstream.BaseURL,
		client:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
		attempts: attempts,
	}
}

// GetJSON issues a GET against `path` under baseURL and decodes JSON into dest.
func (b *HTTPServiceBase) GetJSON(ctx context.Context, path string, params map[string]string, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("upstream http client not initialized")
	}
	query := make(map[string][]string, len(params))
	for k, v := range params {
		query[k] = []string{v}
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         b.baseURL + path,
		QueryParams: query,
	}, dest)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return nil
}

// GetJSONWithRetry issues the GET with up to the configured number of
// attempts. The default configuration makes a single attempt; retries are
// opt-in because the view treats a failed fetch as a displayable outcome.
func (b *HTTPServiceBase) GetJSONWithRetry(ctx context.Context, path string, params map[string]string, dest interface{}) error {
	if b.attempts <= 1 {
		return b.GetJSON(ctx, path, params, dest)
	}
	var err error
	for i := 1; i <= b.attempts; i++ {
		err = b.GetJSON(ctx, path, params, dest)
		if err == nil {
			return nil
		}
		select {
		case <-time.After(time.Duration(i) * 50 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
