package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/kreyollingua/pale/internal/token"
)

const (
	defaultTimeout = 30 * time.Second

	// responseLimit caps how much of a reply we are willing to read;
	// analysis responses are small
	responseLimit = 1 << 20
)

// ErrEmptyText is returned when there is nothing to analyze
var ErrEmptyText = errors.New("text is empty")

// Client talks to the analysis service. A circuit breaker sits around the
// round-trip so a down service fails fast instead of piling up timeouts.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// analyzeRequest is the wire format of the /analyze request body
type analyzeRequest struct {
	Text string `json:"text"`
}

// healthResponse is the wire format of the service's root endpoint
type healthResponse struct {
	Message string `json:"message"`
	Engine  string `json:"engine"`
}

// NewClient creates a client for the analysis service at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "analysis",
			Timeout: 15 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

// Analyze submits text to POST /analyze and returns the parsed result.
// Empty or whitespace-only text returns ErrEmptyText without a request.
func (c *Client) Analyze(ctx context.Context, text string) (*token.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doAnalyze(ctx, text)
	})
	if err != nil {
		return nil, err
	}

	return result.(*token.Result), nil
}

func (c *Client) doAnalyze(ctx context.Context, text string) (*token.Result, error) {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, responseLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analysis service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return token.ParseResponse(data)
}

// Health checks the service's root endpoint and returns the engine
// version banner
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}

	var health healthResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, responseLimit)).Decode(&health); err != nil {
		return "", fmt.Errorf("failed to decode health response: %w", err)
	}

	return health.Engine, nil
}
