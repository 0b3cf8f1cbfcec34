package serverutils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"xeriscape-be/pkg/upstream"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestStatusAndMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"app error", BadRequest("Missing prompt"), http.StatusBadRequest, "Missing prompt"},
		{"wrapped app error", fmt.Errorf("ctx: %w", Internal("API key missing", upstream.ErrMissingAPIKey)), http.StatusInternalServerError, "API key missing"},
		{"upstream error", &upstream.Error{Provider: "xai", StatusCode: 429, Body: `{"error":"slow"}`}, 429, `{"error":"slow"}`},
		{"upstream error without body", &upstream.Error{Provider: "xai", StatusCode: 503}, 503, "Service Unavailable"},
		{"gemini sdk error", upstream.FromGenAI("gemini", "gemini chat failed", genai.APIError{Code: 429, Message: "quota", Status: "RESOURCE_EXHAUSTED"}), 429, "quota"},
		{"fiber error", fiber.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"empty response", upstream.ErrEmptyResponse, http.StatusInternalServerError, "empty response from provider"},
		{"anything else", errors.New("boom"), http.StatusInternalServerError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := StatusAndMessage(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

type sampleRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Aspect string `json:"aspect" validate:"omitempty,oneof=1:1 16:9"`
	N      int    `json:"n" validate:"omitempty,min=1,max=4"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Prompt: "p"}))

	err := ValidateRequest(sampleRequest{})
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "Missing prompt", appErr.Message)

	err = ValidateRequest(sampleRequest{Prompt: "p", Aspect: "21:9"})
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Message, "aspect must be one of")

	err = ValidateRequest(sampleRequest{Prompt: "p", N: 5})
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Message, "n is out of range")
}

func TestErrorResponse(t *testing.T) {
	res := ErrorResponse(400, "Invalid request")
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid request", res.Error)
	assert.Equal(t, res.Message, res.Error)

	ok := SuccessResponse("done", map[string]int{"n": 1})
	assert.True(t, ok.Success)
	assert.Empty(t, ok.Error)
}
