package factory

import (
	"context"
	"fmt"
	"net/http"

	"xeriscape-be/pkg/llm"
	"xeriscape-be/pkg/llm/gemini"
	"xeriscape-be/pkg/llm/openai"
	"xeriscape-be/pkg/upstream"
)

const (
	DefaultOpenAIVisionModel = "gpt-4o"
	DefaultXAIVisionModel    = "grok-2-vision-1212"
)

type Options struct {
	Provider string // "", "openai", "xai", "gemini"
	Model    string

	OpenAIKey string
	XAIKey    string
	GeminiKey string

	HTTPClient *http.Client
	Resolver   gemini.ImageResolver
}

// NewLLMProvider picks the vision backend. With no explicit provider an OpenAI key
// wins over an xAI key.
func NewLLMProvider(ctx context.Context, opts Options) (llm.LLMProvider, error) {
	switch opts.Provider {
	case "":
		switch {
		case opts.OpenAIKey != "":
			return newOpenAI(opts), nil
		case opts.XAIKey != "":
			return newXAI(opts), nil
		default:
			return nil, upstream.ErrMissingAPIKey
		}
	case "openai":
		if opts.OpenAIKey == "" {
			return nil, upstream.ErrMissingAPIKey
		}
		return newOpenAI(opts), nil
	case "xai":
		if opts.XAIKey == "" {
			return nil, upstream.ErrMissingAPIKey
		}
		return newXAI(opts), nil
	case "gemini":
		p, err := gemini.NewProvider(ctx, opts.GeminiKey, opts.Model, opts.Resolver)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", opts.Provider)
	}
}

func newOpenAI(opts Options) llm.LLMProvider {
	model := opts.Model
	if model == "" {
		model = DefaultOpenAIVisionModel
	}
	return openai.NewProvider("openai", opts.OpenAIKey, openai.OpenAIBaseURL, model, opts.HTTPClient)
}

func newXAI(opts Options) llm.LLMProvider {
	model := opts.Model
	if model == "" {
		model = DefaultXAIVisionModel
	}
	return openai.NewProvider("xai", opts.XAIKey, openai.XAIBaseURL, model, opts.HTTPClient)
}
