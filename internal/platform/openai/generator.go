// Package openai implements the generation.Generator interface over the
// OpenAI chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ivrit-app/ivrit-api/internal/generation"
)

const defaultModel = openai.GPT4oMini

// systemPrompt constrains the model to a single JSON object so the
// response can be parsed strictly instead of scraped from prose.
const systemPrompt = `You are a Hebrew language tutor. Given a Hebrew word, its English ` +
	`translation and the learner's CEFR level, write one short, natural Hebrew example ` +
	`sentence that uses the word. Respond with a JSON object of the form ` +
	`{"sentence": "..."} and nothing else.`

// Config holds the settings for the OpenAI generator.
type Config struct {
	APIKey string
	Model  string // Defaults to gpt-4o-mini when empty
}

// Generator generates example sentences through OpenAI chat completions.
type Generator struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewGenerator creates a new OpenAI-backed example sentence generator.
// If logger is nil, the default logger is used.
func NewGenerator(cfg Config, logger *slog.Logger) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Generator{
		client: openai.NewClient(cfg.APIKey),
		model:  model,
		logger: logger.With(slog.String("component", "openai_generator")),
	}, nil
}

// Ensure Generator implements generation.Generator
var _ generation.Generator = (*Generator)(nil)

// GenerateExampleSentence implements generation.Generator.
func (g *Generator) GenerateExampleSentence(
	ctx context.Context,
	hebrew, english, level string,
) (string, error) {
	prompt := fmt.Sprintf("Word: %s\nTranslation: %s\nLevel: %s", hebrew, english, level)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	})
	if err != nil {
		g.logger.Warn("chat completion failed",
			slog.String("error", err.Error()),
			slog.String("hebrew", hebrew))
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", generation.ErrGenerationFailed)
	}

	sentence, err := parseSentence(resp.Choices[0].Message.Content)
	if err != nil {
		g.logger.Warn("unusable completion content",
			slog.String("error", err.Error()),
			slog.String("hebrew", hebrew))
		return "", err
	}

	return sentence, nil
}

// parseSentence extracts the sentence from the model's JSON response.
// Malformed content is rejected rather than silently defaulted.
func parseSentence(content string) (string, error) {
	var payload struct {
		Sentence string `json:"sentence"`
	}

	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return "", fmt.Errorf("%w: invalid JSON: %v", generation.ErrGenerationFailed, err)
	}

	sentence := strings.TrimSpace(payload.Sentence)
	if sentence == "" {
		return "", generation.ErrEmptyResult
	}

	return sentence, nil
}
