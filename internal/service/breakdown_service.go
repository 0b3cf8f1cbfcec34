package service

import (
	"context"

	"xeriscape-be/internal/dto"
	"xeriscape-be/internal/pkg/logger"
	"xeriscape-be/internal/pkg/serverutils"
	"xeriscape-be/pkg/design"
	"xeriscape-be/pkg/imageref"
	"xeriscape-be/pkg/llm"
	"xeriscape-be/pkg/upstream"
)

const (
	breakdownTemperature = 0.7
	breakdownMaxTokens   = 2500
)

type IBreakdownService interface {
	Breakdown(ctx context.Context, req *dto.BreakdownRequest) (*dto.BreakdownResponse, error)
	Configured() bool
}

type breakdownService struct {
	provider llm.LLMProvider // nil when no key is configured
	logger   logger.ILogger
}

func NewBreakdownService(provider llm.LLMProvider, log logger.ILogger) IBreakdownService {
	return &breakdownService{provider: provider, logger: log}
}

func (s *breakdownService) Configured() bool {
	return s.provider != nil
}

func imagePart(field, ref string) (llm.Part, error) {
	u, err := imageref.AsURL(ref)
	if err != nil {
		return llm.Part{}, serverutils.BadRequest("Invalid " + field + ": " + err.Error())
	}
	return llm.ImagePart(u), nil
}

// Breakdown asks the vision model for the cost estimate, plant list and phases as markdown.
func (s *breakdownService) Breakdown(ctx context.Context, req *dto.BreakdownRequest) (*dto.BreakdownResponse, error) {
	concept := req.Concept()
	if concept == "" {
		return nil, serverutils.BadRequest("Missing imageUrl")
	}

	parts := []llm.Part{llm.TextPart(design.BreakdownUserText(req.Tier))}
	refs := []struct{ field, ref string }{
		{"imageUrl", concept},
		{"satelliteUrl", req.SatelliteURL},
		{"originalImageBase64", req.OriginalImageBase64},
	}
	for _, r := range refs {
		if r.ref == "" {
			continue
		}
		part, err := imagePart(r.field, r.ref)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	if s.provider == nil {
		return nil, serverutils.Internal("No API key configured", upstream.ErrMissingAPIKey)
	}

	messages := []llm.Message{
		llm.TextMessage(llm.RoleSystem, design.BreakdownSystemPrompt),
		{Role: llm.RoleUser, Parts: parts},
	}
	content, err := s.provider.Chat(ctx, messages,
		llm.WithTemperature(breakdownTemperature),
		llm.WithMaxTokens(breakdownMaxTokens),
	)
	if err != nil {
		s.logger.Error("BREAKDOWN", "Vision provider call failed", map[string]interface{}{
			"provider": s.provider.Name(),
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Info("BREAKDOWN", "Breakdown generated", map[string]interface{}{
		"provider": s.provider.Name(),
		"tier":     req.Tier,
		"images":   len(parts) - 1,
	})
	return &dto.BreakdownResponse{Breakdown: content}, nil
}
