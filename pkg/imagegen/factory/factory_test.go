package factory

import (
	"context"
	"testing"

	"xeriscape-be/pkg/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageProvider(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantName string
		wantErr  error
	}{
		{"default is xai", Options{XAIKey: "x", OpenAIKey: "o"}, "xai", nil},
		{"explicit xai", Options{Provider: "xai", XAIKey: "x"}, "xai", nil},
		{"openai", Options{Provider: "openai", OpenAIKey: "o"}, "openai", nil},
		{"gemini", Options{Provider: "gemini", GeminiKey: "g"}, "gemini", nil},
		{"default without xai key", Options{OpenAIKey: "o"}, "", upstream.ErrMissingAPIKey},
		{"openai without key", Options{Provider: "openai", XAIKey: "x"}, "", upstream.ErrMissingAPIKey},
		{"gemini without key", Options{Provider: "gemini", XAIKey: "x"}, "", upstream.ErrMissingAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewImageProvider(context.Background(), tt.opts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestNewImageProvider_Unknown(t *testing.T) {
	_, err := NewImageProvider(context.Background(), Options{Provider: "midjourney", XAIKey: "x"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, upstream.ErrMissingAPIKey)
}
