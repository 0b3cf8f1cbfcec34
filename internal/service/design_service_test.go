package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"xeriscape-be/internal/dto"
	"xeriscape-be/internal/pkg/logger"
	"xeriscape-be/internal/pkg/serverutils"
	"xeriscape-be/pkg/design"
	"xeriscape-be/pkg/imagegen"
	"xeriscape-be/pkg/imageref"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeneration struct {
	last *dto.GenerateRequest
	resp json.RawMessage
}

func (s *stubGeneration) Generate(_ context.Context, req *dto.GenerateRequest) (json.RawMessage, error) {
	s.last = req
	return s.resp, nil
}

func (s *stubGeneration) Configured() bool { return true }

func TestGeneratePlan_SeedsWithConcept(t *testing.T) {
	gen := &stubGeneration{resp: json.RawMessage(`{"data":[{"url":"plan.png"}]}`)}
	svc := NewDesignService(gen)

	res, err := svc.GeneratePlan(context.Background(), &dto.PlanRequest{
		Options:      design.DesignOptions{RainGarden: true},
		ConceptURL:   "https://img/concept.png",
		SatelliteURL: "https://img/sat.png",
	})
	require.NoError(t, err)

	assert.True(t, gen.last.IsEdit)
	assert.Equal(t, []string{"https://img/concept.png", "https://img/sat.png"}, gen.last.Images)
	assert.Equal(t, design.BuildPlanPrompt(design.DesignOptions{RainGarden: true}), gen.last.Prompt)
	require.Len(t, res.Designs, 1)
	assert.Equal(t, "plan.png", res.Designs[0].URL)
}

func TestGenerateDesigns_NormalizesOptions(t *testing.T) {
	gen := &stubGeneration{resp: json.RawMessage(`{"data":[{"url":"a.png"}]}`)}
	svc := NewDesignService(gen)

	seed := "https://img/yard.jpg"
	_, err := svc.GenerateDesigns(context.Background(), &dto.DesignRequest{
		// Culinary without the edible parent toggle is dropped.
		Options:     design.DesignOptions{NativePlanting: true, Culinary: true},
		ImageBase64: &seed,
	})
	require.NoError(t, err)

	assert.True(t, gen.last.IsEdit)
	assert.NotContains(t, gen.last.Prompt, "culinary")
	assert.Equal(t, []string{seed}, gen.last.Images)
}

func TestBuildPrompt_RejectsInvalidOptions(t *testing.T) {
	svc := NewDesignService(&stubGeneration{})

	tests := []struct {
		name string
		opts design.DesignOptions
	}{
		{"negative budget", design.DesignOptions{NativePlanting: true, BudgetUSD: -500}},
		{"unknown hardscape type with hardscape off", design.DesignOptions{HardscapeType: "bogus"}},
		{"unknown material", design.DesignOptions{Hardscape: true, HardscapeMaterial: "marble"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BuildPrompt(&dto.PromptRequest{Options: tt.opts})

			var appErr *serverutils.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
		})
	}

	res, err := svc.BuildPrompt(&dto.PromptRequest{Options: design.DesignOptions{Hardscape: true}})
	require.NoError(t, err)
	assert.Equal(t, []string{design.FeatureHardscape.String()}, res.Features)
}

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, ref string) (*imageref.Image, error) {
	if ref == "bad" {
		return nil, imageref.ErrInvalidBase64
	}
	return &imageref.Image{Data: []byte(ref), MIMEType: "image/png"}, nil
}

type recordingProvider struct {
	last imagegen.Request
}

func (p *recordingProvider) Name() string { return "recording" }

func (p *recordingProvider) Generate(_ context.Context, req imagegen.Request) (json.RawMessage, error) {
	p.last = req
	return json.RawMessage(`{"data":[]}`), nil
}

func TestGenerate_SecondaryReferenceAndDefaults(t *testing.T) {
	provider := &recordingProvider{}
	svc := NewGenerationService(provider, stubResolver{}, logger.NewNop())

	_, err := svc.Generate(context.Background(), &dto.GenerateRequest{
		Prompt: "merge",
		IsEdit: true,
		Images: []string{"design", "satellite"},
	})
	require.NoError(t, err)

	assert.Equal(t, imagegen.AspectSquare, provider.last.Aspect)
	assert.Equal(t, 1, provider.last.N)
	assert.Equal(t, []byte("design"), provider.last.Seed.Data)
	assert.Equal(t, []byte("satellite"), provider.last.Secondary.Data)
}

func TestGenerate_BadReferenceIsClientError(t *testing.T) {
	svc := NewGenerationService(&recordingProvider{}, stubResolver{}, logger.NewNop())

	_, err := svc.Generate(context.Background(), &dto.GenerateRequest{Prompt: "p", IsEdit: true, ImageURL: "bad"})

	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}
