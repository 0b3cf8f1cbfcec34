package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"xeriscape-be/pkg/llm"
	"xeriscape-be/pkg/upstream"
)

const (
	OpenAIBaseURL = "https://api.openai.com/v1"
	XAIBaseURL    = "https://api.x.ai/v1"
)

// Provider speaks the OpenAI chat completions dialect, which xAI also serves.
type Provider struct {
	name       string
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Request Payload Structure (OpenAI Compatible)
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewProvider(name, apiKey, baseURL, model string, httpClient *http.Client) *Provider {
	if baseURL == "" {
		baseURL = OpenAIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Provider{
		name:       name,
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/chat/completions"),
		model:      model,
		httpClient: httpClient,
	}
}

func (p *Provider) Name() string { return p.name }

func toChatMessages(history []llm.Message) []chatMessage {
	out := make([]chatMessage, 0, len(history))
	for _, m := range history {
		if !m.HasImages() {
			out = append(out, chatMessage{Role: m.Role, Content: m.Text()})
			continue
		}
		parts := make([]contentPart, 0, len(m.Parts))
		for _, part := range m.Parts {
			switch part.Type {
			case llm.PartImage:
				parts = append(parts, contentPart{Type: "image_url", ImageURL: &imageURL{URL: part.ImageURL}})
			default:
				parts = append(parts, contentPart{Type: "text", Text: part.Text})
			}
		}
		out = append(out, chatMessage{Role: m.Role, Content: parts})
	}
	return out
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if p.apiKey == "" {
		return "", upstream.ErrMissingAPIKey
	}

	opts := llm.ApplyOptions(p.model, options...)
	reqBody := chatRequest{
		Model:     opts.Model,
		Messages:  toChatMessages(history),
		MaxTokens: opts.MaxTokens,
	}
	if opts.Temperature > 0 {
		t := opts.Temperature
		reqBody.Temperature = &t
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	bodyBytes, err := upstream.Do(p.httpClient, p.name, req)
	if err != nil {
		return "", err
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", upstream.ErrInvalidJSON
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("%s api returned error: %s", p.name, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return "", upstream.ErrEmptyResponse
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{llm.TextMessage(llm.RoleUser, prompt)}, options...)
}
