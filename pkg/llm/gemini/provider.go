package gemini

import (
	"context"
	"fmt"
	"strings"

	"xeriscape-be/pkg/imageref"
	"xeriscape-be/pkg/llm"
	"xeriscape-be/pkg/upstream"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// ImageResolver turns an image reference (remote URL, data URL or base64) into bytes.
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) (*imageref.Image, error)
}

type Provider struct {
	client   *genai.Client
	model    string
	resolver ImageResolver
}

var _ llm.LLMProvider = (*Provider)(nil)

func NewProvider(ctx context.Context, apiKey, model string, resolver ImageResolver) (*Provider, error) {
	if apiKey == "" {
		return nil, upstream.ErrMissingAPIKey
	}
	return newProvider(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model, resolver)
}

func newProvider(ctx context.Context, cc *genai.ClientConfig, model string, resolver ImageResolver) (*Provider, error) {
	if model == "" {
		model = DefaultModel
	}
	if resolver == nil {
		resolver = imageref.NewFetcher(nil, 0)
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Provider{client: client, model: model, resolver: resolver}, nil
}

func (p *Provider) Name() string { return "gemini" }

// toContents splits system turns into a single system instruction and inlines image parts.
func toContents(ctx context.Context, resolver ImageResolver, history []llm.Message) (*genai.Content, []*genai.Content, error) {
	var system []string
	contents := make([]*genai.Content, 0, len(history))

	for _, m := range history {
		if m.Role == llm.RoleSystem {
			system = append(system, m.Text())
			continue
		}

		role := "user"
		if m.Role == llm.RoleAssistant {
			role = "model"
		}

		parts := make([]*genai.Part, 0, len(m.Parts))
		for _, part := range m.Parts {
			if part.Type != llm.PartImage {
				parts = append(parts, &genai.Part{Text: part.Text})
				continue
			}
			img, err := resolver.Resolve(ctx, part.ImageURL)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to load image for gemini: %w", err)
			}
			parts = append(parts, &genai.Part{
				InlineData: &genai.Blob{MIMEType: img.MIMEType, Data: img.Data},
			})
		}
		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}

	if len(system) == 0 {
		return nil, contents, nil
	}
	return &genai.Content{Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}}}, contents, nil
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.ApplyOptions(p.model, options...)

	system, contents, err := toContents(ctx, p.resolver, history)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{SystemInstruction: system}
	if opts.Temperature > 0 {
		t := float32(opts.Temperature)
		config.Temperature = &t
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}

	resp, err := p.client.Models.GenerateContent(ctx, opts.Model, contents, config)
	if err != nil {
		return "", upstream.FromGenAI(p.Name(), "gemini chat failed", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", upstream.ErrEmptyResponse
	}
	return text, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{llm.TextMessage(llm.RoleUser, prompt)}, options...)
}
