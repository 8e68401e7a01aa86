package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// SEOSuggestion is the model's proposal for the product's SEO fields.
type SEOSuggestion struct {
	SEOTitle       string   `json:"seoTitle"`
	SEODescription string   `json:"seoDescription"`
	Keywords       []string `json:"keywords"`
}

// SEOSuggester drafts SEO copy for a product from its name and description.
type SEOSuggester struct {
	client *openai.Client
	model  string
}

// NewSEOSuggester returns nil when no API key is configured; the endpoint
// then reports itself as disabled.
func NewSEOSuggester(apiKey string) *SEOSuggester {
	if apiKey == "" {
		return nil
	}
	return &SEOSuggester{client: openai.NewClient(apiKey), model: "gpt-4o-mini"}
}

func (s *SEOSuggester) Suggest(ctx context.Context, name, description string) (*SEOSuggestion, error) {
	prompt := fmt.Sprintf(`Write SEO metadata for an online phone store product.

PRODUCT: %s
DESCRIPTION: %s

Reply with JSON only: {"seoTitle": "... (max 60 chars)", "seoDescription": "... (max 160 chars)", "keywords": ["...", "..."]}`, name, description)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You write concise ecommerce SEO copy. Always answer with valid JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.3,
		MaxTokens:   400,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("empty completion")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var sug SEOSuggestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &sug); err != nil {
		return nil, fmt.Errorf("decoding suggestion: %w", err)
	}
	return &sug, nil
}
