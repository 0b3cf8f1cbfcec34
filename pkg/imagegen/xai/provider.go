// Package xai talks to OpenAI-compatible JSON image endpoints (xAI by default) that take
// the reference image inline as base64.
package xai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"xeriscape-be/pkg/imagegen"
	"xeriscape-be/pkg/upstream"
)

const (
	DefaultBaseURL = "https://api.x.ai/v1"
	DefaultModel   = "grok-2-image"
)

// Config describes the provider's request schema. Variants disagree on where the seed
// image goes, so the field names are configuration rather than code.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	// SeedField receives the reference image: "image" sends a string, "images" an array.
	SeedField string
	// SecondaryField receives the second reference when present.
	SecondaryField string

	GeneratePath string
	EditPath     string

	HTTPClient *http.Client
}

type Provider struct {
	cfg Config
}

func NewProvider(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.SeedField == "" {
		cfg.SeedField = "image"
	}
	if cfg.SecondaryField == "" {
		cfg.SecondaryField = "mask"
	}
	if cfg.GeneratePath == "" {
		cfg.GeneratePath = "/images/generations"
	}
	if cfg.EditPath == "" {
		cfg.EditPath = "/images/edits"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	return &Provider{cfg: cfg}
}

func (p *Provider) Name() string { return "xai" }

func (p *Provider) endpoint(isEdit bool) string {
	path := p.cfg.GeneratePath
	if isEdit {
		path = p.cfg.EditPath
	}
	return strings.TrimRight(p.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func (p *Provider) buildBody(req imagegen.Request) map[string]interface{} {
	body := map[string]interface{}{
		"model":           p.cfg.Model,
		"prompt":          req.Prompt,
		"n":               req.N,
		"response_format": "url",
	}
	if req.Aspect != "" {
		body["aspect_ratio"] = req.Aspect
	}

	if req.Seed != nil {
		if p.cfg.SeedField == "images" {
			images := []string{req.Seed.Base64()}
			if req.Secondary != nil {
				images = append(images, req.Secondary.Base64())
			}
			body["images"] = images
			return body
		}
		body[p.cfg.SeedField] = req.Seed.Base64()
	}
	if req.Secondary != nil {
		body[p.cfg.SecondaryField] = req.Secondary.Base64()
	}
	return body
}

func (p *Provider) Generate(ctx context.Context, req imagegen.Request) (json.RawMessage, error) {
	if p.cfg.APIKey == "" {
		return nil, upstream.ErrMissingAPIKey
	}

	jsonData, err := json.Marshal(p.buildBody(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(req.IsEdit), bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	body, err := upstream.DoJSON(p.cfg.HTTPClient, p.Name(), httpReq)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
