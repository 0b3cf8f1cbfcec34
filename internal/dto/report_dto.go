package dto

type ReportRequest struct {
	Title     string            `json:"title"`
	Address   string            `json:"address"`
	Designs   []GeneratedDesign `json:"designs" validate:"required,min=1,dive"`
	Breakdown string            `json:"breakdown"`
}

type HealthResponse struct {
	Status    string          `json:"status"`
	Providers map[string]bool `json:"providers"`
}
