package smartadd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/sandeepkv93/taskcal/internal/model"
)

type LLMConfig struct {
	BaseURL string
	Model   string
	APIKey  string
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
}

// LLMParser sends one chat completion per request to an OpenAI-compatible
// endpoint and asks for a JSON object matching taskSchema.
type LLMParser struct {
	client *openai.Client
	model  string
	hasKey bool
}

func NewLLMParser(cfg LLMConfig) *LLMParser {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &LLMParser{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		hasKey: strings.TrimSpace(cfg.APIKey) != "",
	}
}

var taskSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"title":    {Type: jsonschema.String, Description: "The task description"},
		"date":     {Type: jsonschema.String, Description: "YYYY-MM-DD format"},
		"time":     {Type: jsonschema.String, Description: "HH:mm format (24h)"},
		"hasAlarm": {Type: jsonschema.Boolean},
	},
	Required: []string{"title", "date", "hasAlarm"},
}

func prompt(text string, reference time.Time) string {
	return fmt.Sprintf(`Parse this task request: "%s". The current date is %s (%s). Return JSON.`,
		text, model.FormatDate(reference), reference.Weekday())
}

func (p *LLMParser) ParseTask(ctx context.Context, text string, reference time.Time) (ParsedTask, error) {
	if !p.hasKey {
		return ParsedTask{}, ErrNoAPIKey
	}
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt(text, reference)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "task",
				Schema: &taskSchema,
			},
		},
	})
	if err != nil {
		return ParsedTask{}, fmt.Errorf("smartadd: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return ParsedTask{}, ErrEmptyResponse
	}

	content := StripFences(resp.Choices[0].Message.Content)
	var parsed ParsedTask
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return ParsedTask{}, fmt.Errorf("smartadd: decode response: %w (response: %s)", err, content)
	}
	return parsed, nil
}
