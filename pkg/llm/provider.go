package llm

import (
	"context"
	"strings"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type PartType string

const (
	PartText  PartType = "text"
	PartImage PartType = "image"
)

// Part is one piece of multimodal message content. ImageURL may be a remote
// URL or a data URL.
type Part struct {
	Type     PartType
	Text     string
	ImageURL string
}

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role  string // "user", "assistant", "system"
	Parts []Part
}

func TextPart(text string) Part { return Part{Type: PartText, Text: text} }

func ImagePart(url string) Part { return Part{Type: PartImage, ImageURL: url} }

func TextMessage(role, text string) Message {
	return Message{Role: role, Parts: []Part{TextPart(text)}}
}

// Text concatenates the text parts of the message.
func (m Message) Text() string {
	var sb strings.Builder
	for _, p := range m.Parts {
		if p.Type == PartText {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

func (m Message) HasImages() bool {
	for _, p := range m.Parts {
		if p.Type == PartImage {
			return true
		}
	}
	return false
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ApplyOptions resolves options on top of the provider's default model.
func ApplyOptions(defaultModel string, options ...Option) Options {
	opts := Options{Model: defaultModel}
	for _, apply := range options {
		apply(&opts)
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	return opts
}

// LLMProvider defines the contract for any chat backend, vision included.
type LLMProvider interface {
	Name() string

	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
