package factory

import (
	"context"
	"fmt"
	"net/http"

	"xeriscape-be/pkg/imagegen"
	"xeriscape-be/pkg/imagegen/gemini"
	"xeriscape-be/pkg/imagegen/openai"
	"xeriscape-be/pkg/imagegen/xai"
	"xeriscape-be/pkg/upstream"
)

type Options struct {
	Provider  string // "xai", "openai", "gemini"
	Model     string
	BaseURL   string
	SeedField string

	XAIKey    string
	OpenAIKey string
	GeminiKey string

	HTTPClient *http.Client
}

// NewImageProvider returns upstream.ErrMissingAPIKey when the selected provider has no key,
// so the caller can keep serving and answer 500 per request.
func NewImageProvider(ctx context.Context, opts Options) (imagegen.Provider, error) {
	switch opts.Provider {
	case "", "xai":
		if opts.XAIKey == "" {
			return nil, upstream.ErrMissingAPIKey
		}
		return xai.NewProvider(xai.Config{
			APIKey:     opts.XAIKey,
			BaseURL:    opts.BaseURL,
			Model:      opts.Model,
			SeedField:  opts.SeedField,
			HTTPClient: opts.HTTPClient,
		}), nil
	case "openai":
		if opts.OpenAIKey == "" {
			return nil, upstream.ErrMissingAPIKey
		}
		return openai.NewProvider(opts.OpenAIKey, opts.BaseURL, opts.Model, opts.HTTPClient), nil
	case "gemini":
		p, err := gemini.NewProvider(ctx, opts.GeminiKey, opts.Model)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported image provider: %s", opts.Provider)
	}
}
