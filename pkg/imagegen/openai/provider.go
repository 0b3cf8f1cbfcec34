// Package openai implements the OpenAI Images API: JSON for text-to-image, multipart for edits.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"xeriscape-be/pkg/imagegen"
	"xeriscape-be/pkg/imageref"
	"xeriscape-be/pkg/upstream"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-image-1"
)

type Provider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewProvider(apiKey, baseURL, model string, httpClient *http.Client) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Provider{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: httpClient,
	}
}

func (p *Provider) Name() string { return "openai" }

type generationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

func (p *Provider) Generate(ctx context.Context, req imagegen.Request) (json.RawMessage, error) {
	if p.apiKey == "" {
		return nil, upstream.ErrMissingAPIKey
	}

	var (
		httpReq *http.Request
		err     error
	)
	if req.IsEdit && req.Seed != nil {
		httpReq, err = p.editRequest(ctx, req)
	} else {
		httpReq, err = p.generationRequest(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	body, err := upstream.DoJSON(p.httpClient, p.Name(), httpReq)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (p *Provider) generationRequest(ctx context.Context, req imagegen.Request) (*http.Request, error) {
	jsonData, err := json.Marshal(generationRequest{
		Model:  p.model,
		Prompt: req.Prompt,
		N:      req.N,
		Size:   imagegen.SizeFor(req.Aspect),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/images/generations", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

func (p *Provider) editRequest(ctx context.Context, req imagegen.Request) (*http.Request, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"model":  p.model,
		"prompt": req.Prompt,
		"n":      strconv.Itoa(req.N),
		"size":   imagegen.SizeFor(req.Aspect),
	}
	for _, key := range []string{"model", "prompt", "n", "size"} {
		if err := mw.WriteField(key, fields[key]); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	if err := writeImagePart(mw, "image", "reference", req.Seed); err != nil {
		return nil, err
	}
	if req.Secondary != nil {
		if err := writeImagePart(mw, "mask", "mask", req.Secondary); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/images/edits", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	return httpReq, nil
}

func writeImagePart(mw *multipart.Writer, field, name string, img *imageref.Image) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name+img.Extension()))
	h.Set("Content-Type", img.MIMEType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", field, err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return fmt.Errorf("failed to write %s part: %w", field, err)
	}
	return nil
}
