package bootstrap

import (
	"context"

	"xeriscape-be/internal/config"
	"xeriscape-be/internal/controller"
	"xeriscape-be/internal/pkg/logger"
	"xeriscape-be/internal/service"
	"xeriscape-be/pkg/imagegen"
	imagefactory "xeriscape-be/pkg/imagegen/factory"
	"xeriscape-be/pkg/imageref"
	"xeriscape-be/pkg/llm"
	llmfactory "xeriscape-be/pkg/llm/factory"
	"xeriscape-be/pkg/report"
	"xeriscape-be/pkg/upstream"
	"xeriscape-be/pkg/video/runway"
)

// Providers are the upstream clients. A nil field means no key is configured; the
// matching routes then answer 500 per request while the rest keep working.
type Providers struct {
	Image    imagegen.Provider
	Vision   llm.LLMProvider
	Video    service.VideoClient
	Resolver *imageref.Fetcher
	MapsKey  string
}

type Container struct {
	Logger logger.ILogger

	// Controllers
	GenerationController controller.IGenerationController
	DesignController     controller.IDesignController
	BreakdownController  controller.IBreakdownController
	AnimationController  controller.IAnimationController
	LocationController   controller.ILocationController
	ReportController     controller.IReportController
	HealthController     controller.IHealthController
}

func NewContainer(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) *Container {
	return NewContainerWithProviders(sysLogger, BuildProviders(ctx, cfg, sysLogger))
}

// BuildProviders creates every upstream client the configuration allows.
func BuildProviders(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) Providers {
	httpClient := upstream.NewHTTPClient(cfg.App.ProviderTimeout)
	resolver := imageref.NewFetcher(httpClient, 0)
	if cfg.App.AllowPrivateImageHosts {
		resolver.AllowPrivateHosts()
	}

	p := Providers{Resolver: resolver, MapsKey: cfg.Keys.GoogleMaps}

	image, err := imagefactory.NewImageProvider(ctx, imagefactory.Options{
		Provider:   cfg.Ai.ImageProvider,
		Model:      cfg.Ai.ImageModel,
		BaseURL:    cfg.Ai.ImageBaseURL,
		SeedField:  cfg.Ai.ImageSeedField,
		XAIKey:     cfg.Keys.XAI,
		OpenAIKey:  cfg.Keys.OpenAI,
		GeminiKey:  cfg.Keys.GoogleGemini,
		HTTPClient: httpClient,
	})
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Image generation disabled", map[string]interface{}{"provider": cfg.Ai.ImageProvider, "error": err.Error()})
	} else {
		p.Image = image
	}

	vision, err := llmfactory.NewLLMProvider(ctx, llmfactory.Options{
		Provider:   cfg.Ai.VisionProvider,
		Model:      cfg.Ai.VisionModel,
		OpenAIKey:  cfg.Keys.OpenAI,
		XAIKey:     cfg.Keys.XAI,
		GeminiKey:  cfg.Keys.GoogleGemini,
		HTTPClient: httpClient,
		Resolver:   resolver,
	})
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Breakdown disabled", map[string]interface{}{"provider": cfg.Ai.VisionProvider, "error": err.Error()})
	} else {
		p.Vision = vision
	}

	if cfg.Keys.Runway != "" {
		p.Video = runway.NewClient(runway.Config{
			APIKey:       cfg.Keys.Runway,
			BaseURL:      cfg.Video.BaseURL,
			Model:        cfg.Video.Model,
			Ratio:        cfg.Video.Ratio,
			Duration:     cfg.Video.Duration,
			PollInterval: cfg.Video.PollInterval,
			HTTPClient:   httpClient,
		})
	} else {
		sysLogger.Warn("BOOTSTRAP", "Animation disabled, RUNWAY_API_KEY is not set", nil)
	}

	if cfg.Keys.GoogleMaps == "" {
		sysLogger.Warn("BOOTSTRAP", "Map lookup disabled, GOOGLE_MAPS_API_KEY is not set", nil)
	}

	return p
}

func NewContainerWithProviders(sysLogger logger.ILogger, p Providers) *Container {
	resolver := p.Resolver
	if resolver == nil {
		resolver = imageref.NewFetcher(nil, 0)
	}

	// Services
	generationService := service.NewGenerationService(p.Image, resolver, sysLogger)
	designService := service.NewDesignService(generationService)
	breakdownService := service.NewBreakdownService(p.Vision, sysLogger)
	animationService := service.NewAnimationService(p.Video, sysLogger)
	locationService := service.NewLocationService(p.MapsKey)
	reportService := service.NewReportService(report.NewBuilder(resolver, 4), sysLogger)

	providers := map[string]bool{
		"image":     generationService.Configured(),
		"breakdown": breakdownService.Configured(),
		"animation": animationService.Configured(),
		"maps":      locationService.Configured(),
	}

	return &Container{
		Logger: sysLogger,

		GenerationController: controller.NewGenerationController(generationService),
		DesignController:     controller.NewDesignController(designService),
		BreakdownController:  controller.NewBreakdownController(breakdownService),
		AnimationController:  controller.NewAnimationController(animationService),
		LocationController:   controller.NewLocationController(locationService),
		ReportController:     controller.NewReportController(reportService),
		HealthController:     controller.NewHealthController(providers),
	}
}
