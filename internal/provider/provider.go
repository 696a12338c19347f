// Package provider talks to the generative text service. Callers get plain
// text back and must treat it as untrusted; failures come back classified as
// auth, rate limit, timeout or bad response.
package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/apperr"
)

const DefaultModel = "gpt-4o-mini"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Request is one completion call: a system instruction plus the conversation.
// JSON asks the service for a single JSON object.
type Request struct {
	System    string
	Messages  []Message
	JSON      bool
	MaxTokens int
}

// TextProvider returns the raw completion text for a request.
type TextProvider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// User-facing messages; they never carry provider details.
const (
	msgNotConfigured = "AI features are not configured"
	msgAuth          = "The AI service rejected our credentials. Please contact support."
	msgRateLimit     = "The AI service is busy. Please try again in a minute."
	msgResponse      = "The AI service returned an unusable response. Please try again."
	msgTimeout       = "The AI service took too long to respond. Please try again."
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIProvider implements TextProvider over any OpenAI-compatible chat
// completions endpoint.
type OpenAIProvider struct {
	client  openai.Client
	model   string
	timeout time.Duration
	enabled bool
	log     *logrus.Entry
}

func NewOpenAIProvider(cfg Config, log *logrus.Entry) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// at most one call per request; the caller decides whether to retry
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIProvider{
		client:  openai.NewClient(opts...),
		model:   model,
		timeout: cfg.Timeout,
		enabled: cfg.APIKey != "",
		log:     log,
	}
}

func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	if !p.enabled {
		return "", apperr.New(apperr.KindProviderAuth, msgNotConfigured)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: buildMessages(req),
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	started := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		classified := classify(ctx, err)
		p.log.WithFields(logrus.Fields{
			"model":    p.model,
			"kind":     classified.Kind,
			"duration": time.Since(started),
		}).WithError(err).Warn("completion failed")
		return "", classified
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		p.log.WithField("model", p.model).Warn("completion returned no content")
		return "", apperr.New(apperr.KindProviderResponse, msgResponse)
	}

	p.log.WithFields(logrus.Fields{
		"model":    p.model,
		"duration": time.Since(started),
	}).Debug("completion succeeded")
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(req Request) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}
	return msgs
}

// classify maps a client error to one of the provider error kinds. The
// original error is kept for logging only.
func classify(ctx context.Context, err error) *apperr.Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperr.Wrap(apperr.KindProviderTimeout, msgTimeout, err)
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			return apperr.Wrap(apperr.KindProviderAuth, msgAuth, err)
		case apiErr.StatusCode == http.StatusTooManyRequests, apiErr.Code == "insufficient_quota", apiErr.Type == "insufficient_quota":
			return apperr.Wrap(apperr.KindProviderRateLimit, msgRateLimit, err)
		}
	}
	return apperr.Wrap(apperr.KindProviderResponse, msgResponse, err)
}
