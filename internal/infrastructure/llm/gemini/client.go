// Package gemini adapts the Google generative-model API to the pipeline's
// model-invocation contract. All reasoning about raw provider error text is
// confined to ClassifyModelError in this package.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

type Client struct {
	client *genai.Client
}

func New(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client}, nil
}

// Generate performs one generation attempt against the given model: system
// instruction, inline document attachments and the sampling parameters from
// the model's fallback-list entry. Errors come back already classified into
// the domain taxonomy.
func (c *Client) Generate(ctx context.Context, model domain.ModelConfig, req domain.ModelRequest) (string, error) {
	parts := make([]*genai.Part, 0, len(req.Attachments)+1)
	for _, attachment := range req.Attachments {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: attachment.MIMEType,
				Data:     attachment.Data,
			},
		})
	}
	if req.Prompt != "" {
		parts = append(parts, &genai.Part{Text: req.Prompt})
	}
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	temperature := model.Params.Temperature
	topP := model.Params.TopP
	topK := model.Params.TopK
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: model.Params.MaxOutputTokens,
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, model.ID, contents, config)
	if err != nil {
		return "", ClassifyModelError("generate", err)
	}
	if resp == nil {
		return "", domain.WrapError(domain.ErrMalformedResponse, "generate", errors.New("nil response"))
	}
	text := resp.Text()
	if text == "" {
		return "", domain.WrapError(domain.ErrMalformedResponse, "generate", errors.New("no text content in response"))
	}
	return text, nil
}
