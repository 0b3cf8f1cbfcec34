package dto

type AnimateRequest struct {
	ImageURL string `json:"imageUrl" validate:"required"`
	Async    bool   `json:"async"`
}

type AnimateResponse struct {
	VideoURL string `json:"videoUrl,omitempty"`
	Status   string `json:"status,omitempty"`
	TaskID   string `json:"taskId,omitempty"`
}

type AnimationTaskResponse struct {
	TaskID   string  `json:"taskId"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress,omitempty"`
	VideoURL string  `json:"videoUrl,omitempty"`
	Failure  string  `json:"failure,omitempty"`
}
