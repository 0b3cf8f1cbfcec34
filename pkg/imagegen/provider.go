package imagegen

import (
	"context"
	"encoding/json"
	"fmt"

	"xeriscape-be/pkg/imageref"
)

// Aspect ratios accepted from the UI.
const (
	AspectSquare    = "1:1"
	AspectWide      = "16:9"
	AspectTall      = "9:16"
	AspectLandscape = "4:3"
	AspectPortrait  = "3:4"
)

const MaxImages = 4

// Request is one generation or edit call.
type Request struct {
	Prompt string
	IsEdit bool
	// Seed is the reference photo used as the edit base.
	Seed *imageref.Image
	// Secondary is an optional second reference (satellite/map capture or mask).
	Secondary *imageref.Image
	Aspect    string
	N         int
}

// Provider forwards a request to an external image model and returns the provider's
// JSON answer untouched.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (json.RawMessage, error)
}

// Result is one entry of the OpenAI-style "data" array.
type Result struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// Location returns something an <img> tag can render: the hosted URL, or a data URL.
func (r Result) Location() string {
	if r.URL != "" {
		return r.URL
	}
	if r.B64JSON != "" {
		if img, err := imageref.Decode(r.B64JSON); err == nil {
			return img.DataURL()
		}
		return "data:image/png;base64," + r.B64JSON
	}
	return ""
}

type resultEnvelope struct {
	Data []Result `json:"data"`
}

// ParseResults extracts the result descriptors from a provider answer.
func ParseResults(raw json.RawMessage) ([]Result, error) {
	var env resultEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode image results: %w", err)
	}
	results := make([]Result, 0, len(env.Data))
	for _, r := range env.Data {
		if r.Location() != "" {
			results = append(results, r)
		}
	}
	return results, nil
}

// SizeFor maps an aspect ratio onto the fixed sizes OpenAI-style endpoints accept.
func SizeFor(aspect string) string {
	switch aspect {
	case AspectWide, AspectLandscape:
		return "1536x1024"
	case AspectTall, AspectPortrait:
		return "1024x1536"
	default:
		return "1024x1024"
	}
}

// ValidAspect reports whether aspect is one of the accepted ratios.
func ValidAspect(aspect string) bool {
	switch aspect {
	case AspectSquare, AspectWide, AspectTall, AspectLandscape, AspectPortrait:
		return true
	}
	return false
}
