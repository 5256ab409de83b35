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

	"github.com/meltforce/gymcontrol/internal/models"
	"github.com/meltforce/gymcontrol/internal/storage"
)

// HTTPClient implements DataSource by calling the GymControl REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the server (typically reached over Tailscale).
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

// errNotFound marks a 404 from the API; Get* methods translate it to the
// store's (nil, nil) convention.
var errNotFound = fmt.Errorf("not found")

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	body, err := c.get(ctx, "/api/v1/workouts", nil)
	if err != nil {
		return nil, err
	}

	var workouts []models.Workout
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return workouts, nil
}

func (c *HTTPClient) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	body, err := c.get(ctx, "/api/v1/workouts/"+strconv.FormatInt(id, 10), nil)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp struct {
		Workout *models.Workout `json:"workout"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode workout: %w", err)
	}
	return resp.Workout, nil
}

func (c *HTTPClient) ListWorkoutExercises(ctx context.Context, workoutID int64) ([]models.Exercise, error) {
	body, err := c.get(ctx, "/api/v1/workouts/"+strconv.FormatInt(workoutID, 10)+"/exercises", nil)
	if err != nil {
		return nil, err
	}

	var exercises []models.Exercise
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return exercises, nil
}

func (c *HTTPClient) ListSessions(ctx context.Context) ([]models.Session, error) {
	return c.listSessions(ctx, nil)
}

func (c *HTTPClient) ListWorkoutSessions(ctx context.Context, workoutID int64) ([]models.Session, error) {
	params := url.Values{}
	params.Set("workout_id", strconv.FormatInt(workoutID, 10))
	return c.listSessions(ctx, params)
}

func (c *HTTPClient) listSessions(ctx context.Context, params url.Values) ([]models.Session, error) {
	body, err := c.get(ctx, "/api/v1/sessions", params)
	if err != nil {
		return nil, err
	}

	var sessions []models.Session
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("httpclient: decode sessions: %w", err)
	}
	return sessions, nil
}

func (c *HTTPClient) GetSession(ctx context.Context, id int64) (*models.Session, error) {
	body, err := c.get(ctx, "/api/v1/sessions/"+strconv.FormatInt(id, 10), nil)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp struct {
		Session *models.Session `json:"session"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode session: %w", err)
	}
	return resp.Session, nil
}

func (c *HTTPClient) ListSessionExercises(ctx context.Context, sessionID int64) ([]models.SessionExercise, error) {
	body, err := c.get(ctx, "/api/v1/sessions/"+strconv.FormatInt(sessionID, 10), nil)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp struct {
		Exercises []models.SessionExercise `json:"exercises"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode session exercises: %w", err)
	}
	return resp.Exercises, nil
}

func (c *HTTPClient) GetStats(ctx context.Context) (*storage.DataStats, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}
