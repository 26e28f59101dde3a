package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/claude/gymtracker/internal/models"
	"github.com/claude/gymtracker/internal/tracker"
)

// HTTPClient implements DataSource by calling the gymtracker REST API.
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

// do sends a request and decodes a 2xx JSON response into out. Error
// statuses are mapped back onto the domain errors the server produced them from.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func statusError(path string, status int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg = e.Error
	}

	switch {
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", models.ErrMalformedInput, msg)
	case status == http.StatusNotFound && strings.HasPrefix(msg, "no sets"):
		return fmt.Errorf("%w: %s", tracker.ErrNoSets, path)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", models.ErrUnknownExercise, path)
	}
	return fmt.Errorf("httpclient: %s returned %d: %s", path, status, msg)
}

func exercisePath(id int64, suffix string) string {
	return "/api/v1/exercises/" + strconv.FormatInt(id, 10) + suffix
}

func (c *HTTPClient) Exercises(ctx context.Context) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := c.do(ctx, http.MethodGet, "/api/v1/exercises", nil, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (c *HTTPClient) Exercise(ctx context.Context, id int64) (*models.Exercise, error) {
	var ex models.Exercise
	if err := c.do(ctx, http.MethodGet, exercisePath(id, ""), nil, &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

func (c *HTTPClient) AddExercise(ctx context.Context, name string, isAssisted bool, description string) (*tracker.AddExerciseResult, error) {
	in := map[string]any{"name": name, "is_assisted": isAssisted, "description": description}
	var result tracker.AddExerciseResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/exercises", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) History(ctx context.Context, exerciseID int64) (*tracker.History, error) {
	var history tracker.History
	if err := c.do(ctx, http.MethodGet, exercisePath(exerciseID, "/history"), nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

func (c *HTTPClient) BestSet(ctx context.Context, exerciseID int64) (*models.ExerciseSet, error) {
	var best models.ExerciseSet
	if err := c.do(ctx, http.MethodGet, exercisePath(exerciseID, "/best"), nil, &best); err != nil {
		return nil, err
	}
	return &best, nil
}

func (c *HTTPClient) LogSet(ctx context.Context, exerciseID int64, in models.SetInput) (*tracker.LoggedSet, error) {
	body := map[string]any{"weight": in.Weight, "unit": in.Unit, "reps": in.Reps}
	var logged tracker.LoggedSet
	if err := c.do(ctx, http.MethodPost, exercisePath(exerciseID, "/sets"), body, &logged); err != nil {
		return nil, err
	}
	return &logged, nil
}
