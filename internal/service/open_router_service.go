package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/talentscout/screening/internal/config"
	"github.com/tidwall/gjson"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterService is the alternative completion backend, speaking the
// OpenAI-style chat-completions protocol.
type OpenRouterService struct {
	APIKey string
	Model  string
	client *resty.Client
}

func NewOpenRouterService() (*OpenRouterService, error) {
	openRouterConfig := config.LoadOpenRouterConfig()
	if openRouterConfig.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}

	return &OpenRouterService{
		APIKey: openRouterConfig.APIKey,
		Model:  openRouterConfig.Model,
		client: resty.New().SetTimeout(60 * time.Second),
	}, nil
}

func (s *OpenRouterService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": "You are a technical interviewer screening job applicants."},
				{"role": "user", "content": prompt},
			},
		}).
		Post(openRouterURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("openrouter: unexpected status %s", resp.Status())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("openrouter: empty completion")
	}
	return text, nil
}
