package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/spotme/internal/models"
)

// HTTPClient implements DataSource by calling the SpotMe REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, int, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("httpclient: read body: %w", err)
	}

	return body, resp.StatusCode, nil
}

func (c *HTTPClient) getOK(ctx context.Context, path string, params url.Values) ([]byte, error) {
	body, status, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, status, body)
	}
	return body, nil
}

func (c *HTTPClient) FetchRecentWorkouts(ctx context.Context, days int) ([]models.Workout, error) {
	params := url.Values{}
	params.Set("days", strconv.Itoa(days))

	body, err := c.getOK(ctx, "/api/v1/workouts", params)
	if err != nil {
		return nil, err
	}

	var workouts []models.Workout
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return workouts, nil
}

func (c *HTTPClient) FetchAllWorkouts(ctx context.Context) ([]models.Workout, error) {
	body, err := c.getOK(ctx, "/api/v1/workouts", nil)
	if err != nil {
		return nil, err
	}

	var workouts []models.Workout
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return workouts, nil
}

func (c *HTTPClient) FetchPersonalRecords(ctx context.Context, name string) ([]models.Exercise, error) {
	params := url.Values{}
	params.Set("exercise", name)

	body, err := c.getOK(ctx, "/api/v1/records", params)
	if err != nil {
		return nil, err
	}

	var records []models.Exercise
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("httpclient: decode records: %w", err)
	}
	return records, nil
}

func (c *HTTPClient) FetchLastExercise(ctx context.Context, name string) (*models.Exercise, error) {
	params := url.Values{}
	params.Set("name", name)

	body, status, err := c.get(ctx, "/api/v1/exercises/last", params)
	if err != nil {
		return nil, err
	}
	// The server answers 404 for names that were never logged. That maps to
	// the nil, nil contract of the local store.
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("httpclient: /api/v1/exercises/last returned %d: %s", status, body)
	}

	var ex models.Exercise
	if err := json.Unmarshal(body, &ex); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercise: %w", err)
	}
	return &ex, nil
}
