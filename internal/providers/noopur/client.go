package noopur

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/coregate/internal/core"
	"github.com/sandevgo/coregate/pkg/retry"
)

// Client talks to the Noopur content service. Requests run through a
// retrier and a circuit breaker so a flapping service degrades to local
// fallbacks instead of stalling dispatch.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	retrier *retry.Retrier
	breaker *retry.Breaker
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		retrier: retry.NewDefaultRetrier(),
		breaker: retry.NewDefaultBreaker(),
	}
}

func (c *Client) Generate(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var result map[string]any
	err := c.call(ctx, http.MethodPost, "/core/generate", payload, &result)
	return result, err
}

func (c *Client) Feedback(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var result map[string]any
	err := c.call(ctx, http.MethodPost, "/core/feedback", payload, &result)
	return result, err
}

func (c *Client) History(ctx context.Context) ([]map[string]any, error) {
	var result []map[string]any
	err := c.call(ctx, http.MethodGet, "/core/history", nil, &result)
	return result, err
}

func (c *Client) call(ctx context.Context, method, path string, body any, out any) error {
	return c.breaker.Call(func() error {
		return c.retrier.Do(ctx, func() error {
			return c.doRequest(ctx, method, path, body, out)
		})
	})
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.CoregateUserAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	}
	return nil
}
