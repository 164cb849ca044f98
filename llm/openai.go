// api/llm/openai.go
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/sagelms/sage/api/errors"
	logger "github.com/sagelms/sage/api/logging"
)

// OpenAIClient implements Completer against the OpenAI chat completion API.
// Every call is bounded by requestTimeout and made exactly once.
type OpenAIClient struct {
	client         *openai.Client
	model          string
	requestTimeout time.Duration
}

func NewOpenAIClient(apiKey, model string, requestTimeout time.Duration) *OpenAIClient {
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	return &OpenAIClient{
		client:         openai.NewClient(apiKey),
		model:          model,
		requestTimeout: requestTimeout,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.JSONResponse {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		logger.Error("Completion request failed", zap.Error(err), zap.String("model", c.model))
		return "", fmt.Errorf("%w: %v", errors.ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: provider returned no choices", errors.ErrUpstream)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
