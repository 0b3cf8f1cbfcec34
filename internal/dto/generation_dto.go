package dto

import "xeriscape-be/pkg/design"

// GenerateRequest is the raw generation contract used by the browser client.
// The seed may arrive as imageBase64, images[0] or imageUrl; images[1] is the
// secondary reference.
type GenerateRequest struct {
	Prompt      string   `json:"prompt" validate:"required"`
	IsEdit      bool     `json:"isEdit"`
	ImageBase64 *string  `json:"imageBase64"`
	Images      []string `json:"images" validate:"omitempty,max=2"`
	ImageURL    string   `json:"imageUrl"`
	Aspect      string   `json:"aspect" validate:"omitempty,oneof=1:1 16:9 9:16 4:3 3:4"`
	N           int      `json:"n" validate:"omitempty,min=1,max=4"`
}

// SeedRef returns the first non-empty seed reference in precedence order.
func (r *GenerateRequest) SeedRef() string {
	if r.ImageBase64 != nil && *r.ImageBase64 != "" {
		return *r.ImageBase64
	}
	if len(r.Images) > 0 && r.Images[0] != "" {
		return r.Images[0]
	}
	return r.ImageURL
}

func (r *GenerateRequest) SecondaryRef() string {
	if len(r.Images) > 1 {
		return r.Images[1]
	}
	return ""
}

type DesignRequest struct {
	Options     design.DesignOptions `json:"options"`
	ImageBase64 *string              `json:"imageBase64"`
	ImageURL    string               `json:"imageUrl"`
	// SatelliteURL is an optional second reference (map capture).
	SatelliteURL string `json:"satelliteUrl"`
	Aspect       string `json:"aspect" validate:"omitempty,oneof=1:1 16:9 9:16 4:3 3:4"`
	N            int    `json:"n" validate:"omitempty,min=1,max=4"`
}

type PlanRequest struct {
	Options      design.DesignOptions `json:"options"`
	ConceptURL   string               `json:"conceptUrl" validate:"required"`
	SatelliteURL string               `json:"satelliteUrl"`
	Aspect       string               `json:"aspect" validate:"omitempty,oneof=1:1 16:9 9:16 4:3 3:4"`
}

type PromptRequest struct {
	Options design.DesignOptions `json:"options"`
	Plan    bool                 `json:"plan"`
}

type PromptResponse struct {
	Prompt   string   `json:"prompt"`
	Features []string `json:"features"`
}

// GeneratedDesign is one result image together with the prompt that produced it.
type GeneratedDesign struct {
	URL        string `json:"url" validate:"required"`
	PromptUsed string `json:"promptUsed"`
}

type DesignResponse struct {
	Prompt  string            `json:"prompt"`
	Designs []GeneratedDesign `json:"designs"`
}
