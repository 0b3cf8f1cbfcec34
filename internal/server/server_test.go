package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"xeriscape-be/internal/bootstrap"
	"xeriscape-be/internal/config"
	"xeriscape-be/internal/pkg/logger"
	"xeriscape-be/pkg/imagegen"
	"xeriscape-be/pkg/llm"
	"xeriscape-be/pkg/upstream"
	"xeriscape-be/pkg/video/runway"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockImageProvider struct {
	calls int32
	last  imagegen.Request
	resp  json.RawMessage
	err   error
}

func (m *mockImageProvider) Name() string { return "mock-image" }

func (m *mockImageProvider) Generate(_ context.Context, req imagegen.Request) (json.RawMessage, error) {
	atomic.AddInt32(&m.calls, 1)
	m.last = req
	return m.resp, m.err
}

type mockVisionProvider struct {
	calls   int32
	history []llm.Message
	resp    string
	err     error
}

func (m *mockVisionProvider) Name() string { return "mock-vision" }

func (m *mockVisionProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	atomic.AddInt32(&m.calls, 1)
	m.history = history
	return m.resp, m.err
}

func (m *mockVisionProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return m.Chat(ctx, []llm.Message{llm.TextMessage(llm.RoleUser, prompt)}, options...)
}

type mockVideoClient struct {
	created int32
	task    *runway.Task
	waitErr error
}

func (m *mockVideoClient) CreateImageToVideo(context.Context, string, string) (string, error) {
	atomic.AddInt32(&m.created, 1)
	return "task-1", nil
}

func (m *mockVideoClient) GetTask(context.Context, string) (*runway.Task, error) {
	return m.task, nil
}

func (m *mockVideoClient) WaitForTask(context.Context, string) (*runway.Task, error) {
	return m.task, m.waitErr
}

func newTestApp(t *testing.T, p bootstrap.Providers) *fiber.App {
	t.Helper()
	cfg := &config.Config{App: config.AppConfig{
		Port:               "3000",
		Environment:        "test",
		CorsAllowedOrigins: "*",
		BodyLimitMB:        25,
	}}
	container := bootstrap.NewContainerWithProviders(logger.NewNop(), p)
	return New(cfg, container).GetApp()
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func errorMessage(t *testing.T, raw []byte) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.False(t, body.Success)
	return body.Error
}

func pngBase64(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 90, G: 140, B: 60, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestGenerate(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		mock := &mockImageProvider{}
		app := newTestApp(t, bootstrap.Providers{Image: mock})

		resp, raw := do(t, app, http.MethodPost, "/api/generate", "{not json")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid request", errorMessage(t, raw))
		assert.Equal(t, int32(0), atomic.LoadInt32(&mock.calls))
	})

	t.Run("missing prompt makes no provider call", func(t *testing.T) {
		mock := &mockImageProvider{}
		app := newTestApp(t, bootstrap.Providers{Image: mock})

		resp, raw := do(t, app, http.MethodPost, "/api/generate", `{"isEdit":false,"aspect":"16:9","n":1}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Missing prompt", errorMessage(t, raw))
		assert.Equal(t, int32(0), atomic.LoadInt32(&mock.calls))
	})

	t.Run("edit without image", func(t *testing.T) {
		mock := &mockImageProvider{}
		app := newTestApp(t, bootstrap.Providers{Image: mock})

		resp, _ := do(t, app, http.MethodPost, "/api/generate", `{"prompt":"yard","isEdit":true,"imageBase64":null}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, int32(0), atomic.LoadInt32(&mock.calls))
	})

	t.Run("n out of range", func(t *testing.T) {
		mock := &mockImageProvider{}
		app := newTestApp(t, bootstrap.Providers{Image: mock})

		resp, _ := do(t, app, http.MethodPost, "/api/generate", `{"prompt":"yard","n":9}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, int32(0), atomic.LoadInt32(&mock.calls))
	})

	t.Run("no key configured", func(t *testing.T) {
		app := newTestApp(t, bootstrap.Providers{})

		resp, raw := do(t, app, http.MethodPost, "/api/generate", `{"prompt":"yard"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "API key missing", errorMessage(t, raw))
	})

	t.Run("provider json relayed unchanged", func(t *testing.T) {
		mock := &mockImageProvider{resp: json.RawMessage(`{"data":[{"url":"X"}]}`)}
		app := newTestApp(t, bootstrap.Providers{Image: mock})

		body := `{"prompt":"native plants","isEdit":true,"imageBase64":"` + pngBase64(t) + `","aspect":"16:9","n":3}`
		resp, raw := do(t, app, http.MethodPost, "/api/generate", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `{"data":[{"url":"X"}]}`, string(raw))

		assert.Equal(t, int32(1), atomic.LoadInt32(&mock.calls))
		assert.Equal(t, "native plants", mock.last.Prompt)
		assert.Equal(t, 3, mock.last.N)
		assert.Equal(t, "16:9", mock.last.Aspect)
		require.NotNil(t, mock.last.Seed)
		assert.Equal(t, "image/png", mock.last.Seed.MIMEType)
	})

	t.Run("upstream status passthrough", func(t *testing.T) {
		mock := &mockImageProvider{err: &upstream.Error{Provider: "xai", StatusCode: http.StatusTooManyRequests, Body: "rate limited"}}
		app := newTestApp(t, bootstrap.Providers{Image: mock})

		resp, raw := do(t, app, http.MethodPost, "/api/generate", `{"prompt":"yard"}`)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, "rate limited", errorMessage(t, raw))
	})
}

func TestDesignsAndPrompt(t *testing.T) {
	mock := &mockImageProvider{resp: json.RawMessage(`{"data":[{"url":"A"},{"url":"B"}]}`)}
	app := newTestApp(t, bootstrap.Providers{Image: mock})

	resp, raw := do(t, app, http.MethodPost, "/api/designs", `{"options":{"nativePlanting":true,"rainGarden":true},"aspect":"16:9","n":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var designs struct {
		Prompt  string `json:"prompt"`
		Designs []struct {
			URL        string `json:"url"`
			PromptUsed string `json:"promptUsed"`
		} `json:"designs"`
	}
	require.NoError(t, json.Unmarshal(raw, &designs))
	require.Len(t, designs.Designs, 2)
	assert.Equal(t, "A", designs.Designs[0].URL)
	assert.Equal(t, designs.Prompt, designs.Designs[1].PromptUsed)
	assert.Contains(t, designs.Prompt, "rain garden")
	assert.False(t, mock.last.IsEdit)

	resp, raw = do(t, app, http.MethodPost, "/api/prompt", `{"options":{"hardscape":true,"hardscapeMaterial":"pavers"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prompt struct {
		Prompt   string   `json:"prompt"`
		Features []string `json:"features"`
	}
	require.NoError(t, json.Unmarshal(raw, &prompt))
	assert.Contains(t, prompt.Prompt, "paver walkway")
	assert.Len(t, prompt.Features, 1)

	resp, _ = do(t, app, http.MethodPost, "/api/prompt", `{"options":{"hardscape":true,"hardscapeType":"bridge"}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = do(t, app, http.MethodPost, "/api/designs/plan", `{"options":{}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing conceptUrl", errorMessage(t, raw))
}

func TestDesigns_EmptyProviderResult(t *testing.T) {
	mock := &mockImageProvider{resp: json.RawMessage(`{"data":[]}`)}
	app := newTestApp(t, bootstrap.Providers{Image: mock})

	resp, raw := do(t, app, http.MethodPost, "/api/designs", `{"options":{"nativePlanting":true}}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, upstream.ErrEmptyResponse.Error(), errorMessage(t, raw))
}

func TestBreakdown(t *testing.T) {
	t.Run("missing image", func(t *testing.T) {
		mock := &mockVisionProvider{resp: "x"}
		app := newTestApp(t, bootstrap.Providers{Vision: mock})

		resp, raw := do(t, app, http.MethodPost, "/api/breakdown", `{"tier":"Premium"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Missing imageUrl", errorMessage(t, raw))
		assert.Equal(t, int32(0), atomic.LoadInt32(&mock.calls))
	})

	t.Run("no key configured", func(t *testing.T) {
		app := newTestApp(t, bootstrap.Providers{})

		resp, raw := do(t, app, http.MethodPost, "/api/breakdown", `{"imageUrl":"https://img/x.png"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "No API key configured", errorMessage(t, raw))
	})

	t.Run("empty provider content", func(t *testing.T) {
		mock := &mockVisionProvider{err: upstream.ErrEmptyResponse}
		app := newTestApp(t, bootstrap.Providers{Vision: mock})

		resp, raw := do(t, app, http.MethodPost, "/api/breakdown", `{"imageUrl":"https://img/x.png"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Contains(t, errorMessage(t, raw), "empty response")
	})

	t.Run("markdown returned", func(t *testing.T) {
		mock := &mockVisionProvider{resp: "## Project Summary\nNative plants."}
		app := newTestApp(t, bootstrap.Providers{Vision: mock})

		body := `{"conceptUrl":"https://img/x.png","satelliteUrl":"https://img/sat.png","tier":"Basic","originalImageBase64":"` + pngBase64(t) + `"}`
		resp, raw := do(t, app, http.MethodPost, "/api/breakdown", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out map[string]string
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, "## Project Summary\nNative plants.", out["breakdown"])

		require.Len(t, mock.history, 2)
		assert.Equal(t, llm.RoleSystem, mock.history[0].Role)
		user := mock.history[1]
		require.Len(t, user.Parts, 4)
		assert.Equal(t, "Tier: Basic. Concept design and reference images follow.", user.Parts[0].Text)
		assert.Equal(t, "https://img/x.png", user.Parts[1].ImageURL)
		assert.Equal(t, "https://img/sat.png", user.Parts[2].ImageURL)
		assert.True(t, strings.HasPrefix(user.Parts[3].ImageURL, "data:image/png;base64,"))
	})
}

func TestAnimate(t *testing.T) {
	t.Run("missing image", func(t *testing.T) {
		app := newTestApp(t, bootstrap.Providers{Video: &mockVideoClient{}})
		resp, raw := do(t, app, http.MethodPost, "/api/animate", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Missing imageUrl", errorMessage(t, raw))
	})

	t.Run("no key configured", func(t *testing.T) {
		app := newTestApp(t, bootstrap.Providers{})
		resp, _ := do(t, app, http.MethodPost, "/api/animate", `{"imageUrl":"https://img/x.png"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("blocks until video ready", func(t *testing.T) {
		video := &mockVideoClient{task: &runway.Task{ID: "task-1", Status: runway.StatusSucceeded, Output: []string{"https://video/out.mp4"}}}
		app := newTestApp(t, bootstrap.Providers{Video: video})

		resp, raw := do(t, app, http.MethodPost, "/api/animate", `{"imageUrl":"https://img/x.png"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"videoUrl":"https://video/out.mp4","status":"success"}`, string(raw))
	})

	t.Run("async returns task id", func(t *testing.T) {
		video := &mockVideoClient{task: &runway.Task{ID: "task-1", Status: runway.StatusRunning, Progress: 0.4}}
		app := newTestApp(t, bootstrap.Providers{Video: video})

		resp, raw := do(t, app, http.MethodPost, "/api/animate", `{"imageUrl":"https://img/x.png","async":true}`)
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
		assert.Contains(t, string(raw), `"taskId":"task-1"`)

		resp, raw = do(t, app, http.MethodGet, "/api/animate/task-1", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"taskId":"task-1","status":"RUNNING","progress":0.4}`, string(raw))
	})

	t.Run("failed task surfaces failure", func(t *testing.T) {
		video := &mockVideoClient{
			task:    &runway.Task{ID: "task-1", Status: runway.StatusFailed, Failure: "moderation"},
			waitErr: &runway.TaskFailedError{TaskID: "task-1", Status: runway.StatusFailed, Failure: "moderation"},
		}
		app := newTestApp(t, bootstrap.Providers{Video: video})

		resp, raw := do(t, app, http.MethodPost, "/api/animate", `{"imageUrl":"https://img/x.png"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Contains(t, errorMessage(t, raw), "moderation")
	})
}

func TestMaps(t *testing.T) {
	app := newTestApp(t, bootstrap.Providers{MapsKey: "K"})

	resp, raw := do(t, app, http.MethodGet, "/api/maps?address=123+Main+St%2C+Fort+Collins%2C+CO", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]string
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "123 Main St, Fort Collins, CO", out["address"])
	assert.Contains(t, out["streetViewUrl"], "123+Main+St%2C+Fort+Collins%2C+CO")
	assert.Contains(t, out["streetViewUrl"], "key=K")
	assert.Contains(t, out["satelliteUrl"], "maptype=satellite")

	resp, _ = do(t, app, http.MethodGet, "/api/maps", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, newTestApp(t, bootstrap.Providers{}), http.MethodGet, "/api/maps?address=x", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestReport(t *testing.T) {
	app := newTestApp(t, bootstrap.Providers{})

	body := `{"title":"Backyard","designs":[{"url":"data:image/png;base64,` + pngBase64(t) + `","promptUsed":"native plants"}],"breakdown":"## Cost Estimate\n$8,000"}`
	resp, raw := do(t, app, http.MethodPost, "/api/report", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "landscape-report-")
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, raw = do(t, app, http.MethodPost, "/api/report", `{"designs":[]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, errorMessage(t, raw))
}

func TestHealthAndRequestID(t *testing.T) {
	app := newTestApp(t, bootstrap.Providers{MapsKey: "K", Image: &mockImageProvider{}})

	resp, raw := do(t, app, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var out struct {
		Status    string          `json:"status"`
		Providers map[string]bool `json:"providers"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "ok", out.Status)
	assert.True(t, out.Providers["image"])
	assert.True(t, out.Providers["maps"])
	assert.False(t, out.Providers["breakdown"])
	assert.False(t, out.Providers["animation"])
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t, bootstrap.Providers{})
	resp, raw := do(t, app, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, errorMessage(t, raw))
}
