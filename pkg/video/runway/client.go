// Package runway is a small client for Runway's image-to-video task API.
package runway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"xeriscape-be/pkg/upstream"
)

const (
	DefaultBaseURL  = "https://api.dev.runwayml.com/v1"
	DefaultModel    = "gen4.5"
	DefaultRatio    = "16:9"
	DefaultDuration = 8
	APIVersion      = "2024-11-06"

	providerName = "runway"
)

type TaskStatus string

const (
	StatusPending   TaskStatus = "PENDING"
	StatusThrottled TaskStatus = "THROTTLED"
	StatusRunning   TaskStatus = "RUNNING"
	StatusSucceeded TaskStatus = "SUCCEEDED"
	StatusFailed    TaskStatus = "FAILED"
	StatusCancelled TaskStatus = "CANCELLED"
)

// Terminal reports whether the task will not change status anymore.
func (s TaskStatus) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed || s == StatusCancelled
}

type Task struct {
	ID       string     `json:"id"`
	Status   TaskStatus `json:"status"`
	Output   []string   `json:"output,omitempty"`
	Failure  string     `json:"failure,omitempty"`
	Progress float64    `json:"progress,omitempty"`
}

// VideoURL is the first output of a succeeded task.
func (t *Task) VideoURL() string {
	if len(t.Output) == 0 {
		return ""
	}
	return t.Output[0]
}

// TaskFailedError is returned by WaitForTask when the task ends without output.
type TaskFailedError struct {
	TaskID  string
	Status  TaskStatus
	Failure string
}

func (e *TaskFailedError) Error() string {
	if e.Failure != "" {
		return fmt.Sprintf("runway task %s %s: %s", e.TaskID, strings.ToLower(string(e.Status)), e.Failure)
	}
	return fmt.Sprintf("runway task %s %s", e.TaskID, strings.ToLower(string(e.Status)))
}

type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	Ratio        string
	Duration     int
	PollInterval time.Duration
	HTTPClient   *http.Client
}

type Client struct {
	cfg Config
}

type imageToVideoRequest struct {
	Model       string `json:"model"`
	PromptImage string `json:"promptImage"`
	PromptText  string `json:"promptText,omitempty"`
	Ratio       string `json:"ratio"`
	Duration    int    `json:"duration"`
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Ratio == "" {
		cfg.Ratio = DefaultRatio
	}
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = upstream.NewHTTPClient(60 * time.Second)
	}
	return &Client{cfg: cfg}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create runway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("X-Runway-Version", APIVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// CreateImageToVideo starts a task and returns its id.
func (c *Client) CreateImageToVideo(ctx context.Context, promptImage, promptText string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", upstream.ErrMissingAPIKey
	}

	payload, err := json.Marshal(imageToVideoRequest{
		Model:       c.cfg.Model,
		PromptImage: promptImage,
		PromptText:  promptText,
		Ratio:       c.cfg.Ratio,
		Duration:    c.cfg.Duration,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal runway request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/image_to_video", payload)
	if err != nil {
		return "", err
	}
	body, err := upstream.DoJSON(c.cfg.HTTPClient, providerName, req)
	if err != nil {
		return "", err
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", upstream.ErrInvalidJSON
	}
	if created.ID == "" {
		return "", upstream.ErrEmptyResponse
	}
	return created.ID, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	if c.cfg.APIKey == "" {
		return nil, upstream.ErrMissingAPIKey
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	body, err := upstream.DoJSON(c.cfg.HTTPClient, providerName, req)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := json.Unmarshal(body, &task); err != nil {
		return nil, upstream.ErrInvalidJSON
	}
	if task.ID == "" {
		task.ID = id
	}
	return &task, nil
}

// WaitForTask polls until the task is terminal or ctx is done.
func (c *Client) WaitForTask(ctx context.Context, id string) (*Task, error) {
	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		task, err := c.GetTask(ctx, id)
		if err != nil {
			return nil, err
		}
		if task.Status.Terminal() {
			if task.Status != StatusSucceeded || task.VideoURL() == "" {
				return task, &TaskFailedError{TaskID: id, Status: task.Status, Failure: task.Failure}
			}
			return task, nil
		}

		select {
		case <-ctx.Done():
			return task, ctx.Err()
		case <-ticker.C:
		}
	}
}
