// Package gemini generates and edits images with Gemini image models through the genai SDK
// and reshapes the inline results into the OpenAI-style "data" array the UI expects.
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"xeriscape-be/pkg/imagegen"
	"xeriscape-be/pkg/upstream"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash-image"

type Provider struct {
	client *genai.Client
	model  string
}

// NewProvider creates the SDK client once; it is safe for concurrent use.
func NewProvider(ctx context.Context, apiKey, model string) (*Provider, error) {
	if apiKey == "" {
		return nil, upstream.ErrMissingAPIKey
	}
	return newProvider(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model)
}

func newProvider(ctx context.Context, cc *genai.ClientConfig, model string) (*Provider, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Provider{client: client, model: model}, nil
}

func (p *Provider) Name() string { return "gemini" }

func buildParts(req imagegen.Request) []*genai.Part {
	text := req.Prompt
	if req.Aspect != "" {
		text += "\nOutput aspect ratio: " + req.Aspect + "."
	}

	parts := make([]*genai.Part, 0, 3)
	if req.Seed != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: req.Seed.MIMEType, Data: req.Seed.Data},
		})
	}
	if req.Secondary != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: req.Secondary.MIMEType, Data: req.Secondary.Data},
		})
	}
	return append(parts, &genai.Part{Text: text})
}

// Generate runs one GenerateContent call per requested image.
func (p *Provider) Generate(ctx context.Context, req imagegen.Request) (json.RawMessage, error) {
	contents := []*genai.Content{{Role: "user", Parts: buildParts(req)}}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	n := req.N
	if n <= 0 {
		n = 1
	}

	var blobs []*genai.Blob
	for i := 0; i < n; i++ {
		resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
		if err != nil {
			return nil, upstream.FromGenAI(p.Name(), "gemini image generation failed", err)
		}
		blobs = append(blobs, inlineImages(resp)...)
	}
	if len(blobs) == 0 {
		return nil, upstream.ErrEmptyResponse
	}
	return reshape(blobs, time.Now())
}

func inlineImages(resp *genai.GenerateContentResponse) []*genai.Blob {
	var out []*genai.Blob
	if resp == nil {
		return out
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				out = append(out, part.InlineData)
			}
		}
	}
	return out
}

type resultEnvelope struct {
	Created int64             `json:"created"`
	Data    []imagegen.Result `json:"data"`
}

func reshape(blobs []*genai.Blob, now time.Time) (json.RawMessage, error) {
	env := resultEnvelope{Created: now.Unix(), Data: make([]imagegen.Result, 0, len(blobs))}
	for _, b := range blobs {
		encoded := base64.StdEncoding.EncodeToString(b.Data)
		mime := b.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		env.Data = append(env.Data, imagegen.Result{
			URL:     "data:" + mime + ";base64," + encoded,
			B64JSON: encoded,
		})
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode results: %w", err)
	}
	return raw, nil
}
