package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"go.uber.org/zap"

	"github.com/peergrouptools/peergroup-api/pkg/config"
)

// ErrEmptyCompletion is returned when the provider answers without any choice
var ErrEmptyCompletion = errors.New("empty completion from provider")

// OpenAIClient is the Generator backed by the OpenAI chat completions API
type OpenAIClient struct {
	client  openai.Client
	model   string
	timeout time.Duration
	retries uint64
	logger  *zap.Logger
}

// NewOpenAIClient creates a client from config. Retries are driven by backoff,
// so the SDK's own retry loop is disabled.
func NewOpenAIClient(cfg *config.OpenAIConfig, logger *zap.Logger) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.AccessToken),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	return &OpenAIClient{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: timeout,
		retries: cfg.MaxRetries,
		logger:  logger,
	}
}

// Model returns the configured model name
func (c *OpenAIClient) Model() string {
	return c.model
}

// Generate sends one chat completion. Each attempt gets its own timeout; transient
// failures (429, 5xx, network, attempt timeout) are retried with exponential backoff.
func (c *OpenAIClient) Generate(ctx context.Context, req GenerationRequest) (*Generation, error) {
	params, err := c.buildParams(req)
	if err != nil {
		return nil, err
	}

	var out *Generation
	attempt := 0
	op := func() error {
		attempt++
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.Chat.Completions.New(callCtx, params)
		if err != nil {
			if c.logger != nil {
				c.logger.Warn("openai completion failed",
					zap.String("format", req.Format.String()),
					zap.Int("attempt", attempt),
					zap.Error(err),
				)
			}
			if ctx.Err() != nil || !isTransient(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		if len(resp.Choices) == 0 {
			return backoff.Permanent(ErrEmptyCompletion)
		}

		out = &Generation{Text: resp.Choices[0].Message.Content, Model: resp.Model}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 4 * time.Second
	bo.MaxElapsedTime = 0

	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, c.retries), ctx)); err != nil {
		return nil, fmt.Errorf("chat completion (%s): %w", req.Format, err)
	}
	if out.Model == "" {
		out.Model = c.model
	}
	return out, nil
}

func (c *OpenAIClient) buildParams(req GenerationRequest) (openai.ChatCompletionNewParams, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	switch req.Format {
	case FormatJSONSchema:
		if req.Schema == nil {
			return params, errors.New("json_schema format requires a schema")
		}
		schema := shared.ResponseFormatJSONSchemaJSONSchemaParam{
			Name:   req.Schema.Name,
			Schema: req.Schema.Schema,
			Strict: openai.Bool(req.Schema.Strict),
		}
		if req.Schema.Description != "" {
			schema.Description = openai.String(req.Schema.Description)
		}
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{JSONSchema: schema},
		}
	case FormatJSONObject:
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	return params, nil
}

func isTransient(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}
	// attempt timeouts and transport errors
	return true
}
