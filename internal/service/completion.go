package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"grammarbot/internal/domain"
	"grammarbot/internal/prompts"

	"github.com/sashabaranov/go-openai"
)

// Completion error taxonomy. Handlers match with errors.Is to pick a
// user-facing message; none of these trigger an automatic retry.
var (
	ErrUnauthorized = errors.New("completion: invalid API credentials")
	ErrRateLimited  = errors.New("completion: rate limited")
	ErrTimeout      = errors.New("completion: request timed out")
	ErrMalformed    = errors.New("completion: malformed response")
)

// Completer performs one exchange with the language model
type Completer interface {
	Complete(ctx context.Context, mode domain.Mode, text string) (domain.Completion, error)
}

// chatClient is the slice of the OpenAI client the service needs
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// CompletionService wraps a single chat-completion call with the prompt
// template selected by mode
type CompletionService struct {
	client  chatClient
	prompts *prompts.Set
	model   string
}

// NewCompletionService creates a new completion service
func NewCompletionService(client chatClient, promptSet *prompts.Set, model string) *CompletionService {
	return &CompletionService{
		client:  client,
		prompts: promptSet,
		model:   model,
	}
}

// NewCompletionClient builds the API client against an
// OpenAI-compatible endpoint such as OpenRouter
func NewCompletionClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: 90 * time.Second}
	return openai.NewClientWithConfig(cfg)
}

// Complete sends text to the model under the system prompt for mode.
// A failed call is terminal for this request; the user may resend.
func (s *CompletionService) Complete(ctx context.Context, mode domain.Mode, text string) (domain.Completion, error) {
	template, err := s.prompts.Get(mode)
	if err != nil {
		return domain.Completion{}, err
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: template},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return domain.Completion{}, classify(err)
	}

	if len(resp.Choices) == 0 {
		return domain.Completion{}, fmt.Errorf("%w: no choices returned", ErrMalformed)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return domain.Completion{}, fmt.Errorf("%w: empty completion content", ErrMalformed)
	}

	return domain.Completion{
		Text:       content,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// classify maps transport and API failures onto the error taxonomy
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
		}
		return fmt.Errorf("completion API error: %w", err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return fmt.Errorf("completion request failed: %w", err)
}
