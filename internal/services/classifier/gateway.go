package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/infra/httpclient"
)

var (
	ErrRateLimitExceeded = errors.New("classifier rate limit exceeded")
	ErrUnavailable       = errors.New("classifier unavailable")
)

const rateKey = "rate:classifier:window"

const systemPrompt = "You are a content moderation assistant for a discussion forum. " +
	"Judge whether the user-submitted text below is safe for public display. " +
	`Answer with a JSON object of the shape {"status":"safe"|"flagged","reason":"...","confidence":0.0-1.0} and nothing else.`

// WindowStore is a fixed-window counter. IncrementWindow bumps the counter
// for key, starting a fresh window of the given length when none is active.
type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Timeout        time.Duration
	CallsPerWindow int
	RateWindow     time.Duration
}

// Gateway wraps the remote classification call behind a fixed-window rate
// limit and a bounded timeout. It never retries: callers treat every error
// as "classifier unavailable" and fall back to the local heuristic.
type Gateway struct {
	client *openai.Client
	store  WindowStore
	cfg    Config
	logger *zap.Logger
}

func NewGateway(store WindowStore, cfg Config, log *zap.Logger) *Gateway {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.CallsPerWindow <= 0 {
		cfg.CallsPerWindow = 60
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Minute
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = httpclient.New(cfg.Timeout)

	return &Gateway{
		client: openai.NewClientWithConfig(clientCfg),
		store:  store,
		cfg:    cfg,
		logger: log,
	}
}

// Classify sends text to the remote classifier and returns the raw reply.
// The reply is free-form text expected to contain an embedded JSON judgment;
// parsing it is the caller's concern.
func (g *Gateway) Classify(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("classify: text is empty")
	}
	if g.store == nil {
		return "", fmt.Errorf("classify: window store is nil")
	}

	count, _, err := g.store.IncrementWindow(ctx, rateKey, g.cfg.RateWindow)
	if err != nil {
		return "", fmt.Errorf("classifier rate window: %w", err)
	}
	if count > int64(g.cfg.CallsPerWindow) {
		return "", ErrRateLimitExceeded
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		if g.logger != nil {
			g.logger.Debug("classifier call failed", zap.Error(err))
		}
		return "", ErrUnavailable
	}
	if len(resp.Choices) == 0 {
		return "", ErrUnavailable
	}

	return resp.Choices[0].Message.Content, nil
}
