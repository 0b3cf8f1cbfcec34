package service

import (
	"context"
	"encoding/json"

	"xeriscape-be/internal/dto"
	"xeriscape-be/internal/pkg/serverutils"
	"xeriscape-be/pkg/design"
	"xeriscape-be/pkg/imagegen"
	"xeriscape-be/pkg/upstream"
)

type IDesignService interface {
	GenerateDesigns(ctx context.Context, req *dto.DesignRequest) (*dto.DesignResponse, error)
	GeneratePlan(ctx context.Context, req *dto.PlanRequest) (*dto.DesignResponse, error)
	BuildPrompt(req *dto.PromptRequest) (*dto.PromptResponse, error)
}

type designService struct {
	generation IGenerationService
}

func NewDesignService(generation IGenerationService) IDesignService {
	return &designService{generation: generation}
}

// normalizedOptions validates the options as sent, then clears orphan sub-flags.
func normalizedOptions(o design.DesignOptions) (design.DesignOptions, error) {
	if err := o.Validate(); err != nil {
		return o, serverutils.BadRequest(err.Error())
	}
	return o.Normalize(), nil
}

func (s *designService) BuildPrompt(req *dto.PromptRequest) (*dto.PromptResponse, error) {
	opts, err := normalizedOptions(req.Options)
	if err != nil {
		return nil, err
	}

	prompt := design.BuildDesignPrompt(opts)
	if req.Plan {
		prompt = design.BuildPlanPrompt(opts)
	}

	features := make([]string, 0, 4)
	for _, f := range opts.ActiveFeatures() {
		features = append(features, f.String())
	}
	return &dto.PromptResponse{Prompt: prompt, Features: features}, nil
}

// GenerateDesigns builds the prompt from the toggles and edits the seed photo when one is given.
func (s *designService) GenerateDesigns(ctx context.Context, req *dto.DesignRequest) (*dto.DesignResponse, error) {
	opts, err := normalizedOptions(req.Options)
	if err != nil {
		return nil, err
	}
	prompt := design.BuildDesignPrompt(opts)

	seed := req.ImageURL
	if req.ImageBase64 != nil && *req.ImageBase64 != "" {
		seed = *req.ImageBase64
	}

	genReq := &dto.GenerateRequest{Prompt: prompt, Aspect: req.Aspect, N: req.N}
	if seed != "" {
		genReq.IsEdit = true
		genReq.Images = []string{seed}
		if req.SatelliteURL != "" {
			genReq.Images = append(genReq.Images, req.SatelliteURL)
		}
	}

	return s.run(ctx, genReq)
}

// GeneratePlan redraws a finished concept as a top-down site plan.
func (s *designService) GeneratePlan(ctx context.Context, req *dto.PlanRequest) (*dto.DesignResponse, error) {
	if req.ConceptURL == "" {
		return nil, serverutils.BadRequest("Missing conceptUrl")
	}
	opts, err := normalizedOptions(req.Options)
	if err != nil {
		return nil, err
	}

	genReq := &dto.GenerateRequest{
		Prompt: design.BuildPlanPrompt(opts),
		IsEdit: true,
		Images: []string{req.ConceptURL},
		Aspect: req.Aspect,
		N:      1,
	}
	if req.SatelliteURL != "" {
		genReq.Images = append(genReq.Images, req.SatelliteURL)
	}

	return s.run(ctx, genReq)
}

func (s *designService) run(ctx context.Context, genReq *dto.GenerateRequest) (*dto.DesignResponse, error) {
	raw, err := s.generation.Generate(ctx, genReq)
	if err != nil {
		return nil, err
	}
	return toDesignResponse(genReq.Prompt, raw)
}

func toDesignResponse(prompt string, raw json.RawMessage) (*dto.DesignResponse, error) {
	results, err := imagegen.ParseResults(raw)
	if err != nil {
		return nil, serverutils.Internal("Unexpected provider response", err)
	}
	if len(results) == 0 {
		return nil, upstream.ErrEmptyResponse
	}

	designs := make([]dto.GeneratedDesign, 0, len(results))
	for _, r := range results {
		designs = append(designs, dto.GeneratedDesign{URL: r.Location(), PromptUsed: prompt})
	}
	return &dto.DesignResponse{Prompt: prompt, Designs: designs}, nil
}
