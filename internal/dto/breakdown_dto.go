package dto

type BreakdownRequest struct {
	ImageURL string `json:"imageUrl"`
	// ConceptURL is accepted as an alias of imageUrl.
	ConceptURL          string `json:"conceptUrl"`
	SatelliteURL        string `json:"satelliteUrl"`
	Tier                string `json:"tier"`
	OriginalImageBase64 string `json:"originalImageBase64"`
}

// Concept returns the design image to analyse.
func (r *BreakdownRequest) Concept() string {
	if r.ImageURL != "" {
		return r.ImageURL
	}
	return r.ConceptURL
}

type BreakdownResponse struct {
	Breakdown string `json:"breakdown"`
}
