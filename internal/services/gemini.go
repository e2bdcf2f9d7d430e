package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type geminiService struct {
	client    *genai.Client
	modelName string
}

// NewGeminiService builds a Gemini backed ChatCompletionService. baseURL is
// optional and only overrides the API endpoint.
func NewGeminiService(ctx context.Context, apiKey, model, baseURL string) (ChatCompletionService, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: model,
	}, nil
}

// Complete implements ChatCompletionService.
func (g *geminiService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

type unavailableChatService struct {
	reason error
}

// NewUnavailableChatService stands in for a provider whose client could not
// be built. Every call fails with reason.
func NewUnavailableChatService(reason error) ChatCompletionService {
	return &unavailableChatService{reason: reason}
}

func (u *unavailableChatService) Complete(context.Context, string) (string, error) {
	return "", u.reason
}
