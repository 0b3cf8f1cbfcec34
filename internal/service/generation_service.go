package service

import (
	"context"
	"encoding/json"
	"strings"

	"xeriscape-be/internal/dto"
	"xeriscape-be/internal/pkg/logger"
	"xeriscape-be/internal/pkg/serverutils"
	"xeriscape-be/pkg/imagegen"
	"xeriscape-be/pkg/imageref"
	"xeriscape-be/pkg/upstream"
)

// ImageResolver loads a reference image from a data URL, bare base64 or http(s) URL.
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) (*imageref.Image, error)
}

type IGenerationService interface {
	// Generate forwards one generation/edit call and returns the provider JSON unchanged.
	Generate(ctx context.Context, req *dto.GenerateRequest) (json.RawMessage, error)
	Configured() bool
}

type generationService struct {
	provider imagegen.Provider // nil when no key is configured
	resolver ImageResolver
	logger   logger.ILogger
}

func NewGenerationService(provider imagegen.Provider, resolver ImageResolver, log logger.ILogger) IGenerationService {
	return &generationService{
		provider: provider,
		resolver: resolver,
		logger:   log,
	}
}

func (s *generationService) Configured() bool {
	return s.provider != nil
}

func (s *generationService) Generate(ctx context.Context, req *dto.GenerateRequest) (json.RawMessage, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, serverutils.BadRequest("Missing prompt")
	}
	seedRef := req.SeedRef()
	if req.IsEdit && seedRef == "" {
		return nil, serverutils.BadRequest("Missing image for edit")
	}
	aspect := req.Aspect
	if aspect == "" {
		aspect = imagegen.AspectSquare
	}
	if !imagegen.ValidAspect(aspect) {
		return nil, serverutils.BadRequest("Unsupported aspect: " + aspect)
	}
	n := req.N
	if n == 0 {
		n = 1
	}
	if n < 1 || n > imagegen.MaxImages {
		return nil, serverutils.BadRequest("n must be between 1 and 4")
	}
	if s.provider == nil {
		return nil, serverutils.Internal("API key missing", upstream.ErrMissingAPIKey)
	}

	seed, err := s.resolve(ctx, seedRef)
	if err != nil {
		return nil, err
	}
	secondary, err := s.resolve(ctx, req.SecondaryRef())
	if err != nil {
		return nil, err
	}

	raw, err := s.provider.Generate(ctx, imagegen.Request{
		Prompt:    req.Prompt,
		IsEdit:    req.IsEdit,
		Seed:      seed,
		Secondary: secondary,
		Aspect:    aspect,
		N:         n,
	})
	if err != nil {
		s.logger.Error("GENERATION", "Image provider call failed", map[string]interface{}{
			"provider": s.provider.Name(),
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Info("GENERATION", "Image generated", map[string]interface{}{
		"provider": s.provider.Name(),
		"is_edit":  req.IsEdit,
		"n":        n,
		"aspect":   aspect,
	})
	return raw, nil
}

func (s *generationService) resolve(ctx context.Context, ref string) (*imageref.Image, error) {
	if ref == "" {
		return nil, nil
	}
	img, err := s.resolver.Resolve(ctx, ref)
	if err != nil {
		return nil, serverutils.BadRequest("Invalid reference image: " + err.Error())
	}
	return img, nil
}
