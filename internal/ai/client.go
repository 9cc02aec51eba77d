package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/claude/spotme/internal/models"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Service is the coordinator-facing seam for the model client, so tests can
// substitute fakes.
type Service interface {
	SendMessage(ctx context.Context, text string, recent []models.Workout) (*Response, error)
}

// Response is one model reply: the chat text, the structured payload when one
// was embedded, and follow-up suggestions.
type Response struct {
	Message     string
	WorkoutData *models.WorkoutData
	Suggestions []string
}

// Config holds model endpoint settings.
type Config struct {
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
	APIKey      string
}

// DefaultConfig returns production defaults; the API key still has to come
// from the environment.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		MaxTokens:   150,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
		MaxRetries:  3,
	}
}

// Client talks to a chat-completion endpoint. It holds no conversation state;
// the recent-workout digest passed to SendMessage is the only context.
type Client struct {
	cfg Config
	api openai.Client
	log *slog.Logger
}

var _ Service = (*Client)(nil)

// NewClient validates the endpoint and builds the underlying API client.
// Retries and the request timeout are enforced per attempt by the client;
// retrying is safe because nothing is persisted until a reply returns.
func NewClient(cfg Config, log *slog.Logger) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, cfg.BaseURL)
	}

	api := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(cfg.MaxRetries),
	)

	return &Client{cfg: cfg, api: api, log: log}, nil
}

// SendMessage sends one user message with the recent-workout context and
// returns the parsed reply.
func (c *Client) SendMessage(ctx context.Context, text string, recent []models.Workout) (*Response, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	chat, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt(recent)),
			openai.UserMessage(text),
		},
		MaxTokens:   openai.Int(int64(c.cfg.MaxTokens)),
		Temperature: openai.Float(c.cfg.Temperature),
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return nil, &APIError{Status: apierr.StatusCode, Detail: apierr.Message}
		}
		return nil, fmt.Errorf("calling model endpoint: %w", err)
	}

	if len(chat.Choices) == 0 {
		return nil, ErrInvalidResponse
	}
	content := chat.Choices[0].Message.Content
	if content == "" {
		return nil, ErrInvalidResponse
	}

	data := ExtractWorkoutData(content)
	if data != nil {
		c.log.Debug("structured workout data extracted",
			"exercises", len(data.Exercises), "day_type", data.DayType)
	}

	return &Response{
		Message:     content,
		WorkoutData: data,
		Suggestions: defaultSuggestions(),
	}, nil
}

// defaultSuggestions returns the canned follow-ups shown next to a reply.
func defaultSuggestions() []string {
	return []string{
		"Try increasing weight by 5 lbs",
		"Add one more set",
		"Focus on form",
	}
}
