// Package analyzer describes device screenshots through an OpenAI-compatible
// vision endpoint.
package analyzer

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spance/adbpanel-go/utils"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const defaultPrompt = "Describe this Android screen: the visible app, " +
	"the main interactive elements, and any notable text or state."

type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Prompt  string
}

type Analyzer struct {
	config *Config
	client *openai.Client
}

func New(cfg *Config) *Analyzer {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Prompt == "" {
		cfg.Prompt = defaultPrompt
	}

	openaiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		openaiCfg.BaseURL = cfg.BaseURL
	}

	return &Analyzer{
		config: cfg,
		client: openai.NewClientWithConfig(openaiCfg),
	}
}

// Describe sends the PNG to the vision model and returns its description.
func (a *Analyzer) Describe(ctx context.Context, pngData []byte) (string, error) {
	imageURL := fmt.Sprintf("data:image/png;base64,%s",
		base64.StdEncoding.EncodeToString(pngData))

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: a.config.Prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageURL,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}

	log.Debug().Str("response", utils.JsonString(resp)).Msg("[Describe] model response")

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model %s", a.config.Model)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
