package namegen

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// openAI handles OpenAI and OpenAI-compatible endpoints.
func (s *Service) openAI(ctx context.Context, prompt string) (string, error) {
	clientConfig := openai.DefaultConfig(s.config.APIKey)
	if s.config.BaseURL != "" {
		clientConfig.BaseURL = s.config.BaseURL
	}
	clientConfig.HTTPClient = s.httpClient
	return s.chatCompletion(ctx, openai.NewClientWithConfig(clientConfig), prompt)
}

// azure uses the deployment named by Model on the BaseURL resource.
func (s *Service) azure(ctx context.Context, prompt string) (string, error) {
	clientConfig := openai.DefaultAzureConfig(s.config.APIKey, s.config.BaseURL)
	clientConfig.HTTPClient = s.httpClient
	return s.chatCompletion(ctx, openai.NewClientWithConfig(clientConfig), prompt)
}

func (s *Service) chatCompletion(ctx context.Context, client *openai.Client, prompt string) (string, error) {
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(s.config.Temperature),
		MaxTokens:   s.config.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *Service) anthropic(ctx context.Context, prompt string) (string, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(s.config.APIKey),
		option.WithHTTPClient(s.httpClient),
	}
	if s.config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.config.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.config.Model),
		MaxTokens: int64(s.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	return content.String(), nil
}

func (s *Service) ollama(ctx context.Context, prompt string) (string, error) {
	base, err := url.Parse(s.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid ollama base URL: %w", err)
	}
	client := api.NewClient(base, s.httpClient)

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: s.config.Model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Options: map[string]any{
			"temperature": s.config.Temperature,
			"num_predict": s.config.MaxTokens,
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}
	return content.String(), nil
}

func (s *Service) gemini(ctx context.Context, prompt string) (string, error) {
	if s.config.APIKey == "" {
		return "", errors.New("gemini requires an api key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     s.config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: s.httpClient,
	})
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}

	temperature := float32(s.config.Temperature)
	resp, err := client.Models.GenerateContent(ctx, s.config.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(s.config.MaxTokens),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
