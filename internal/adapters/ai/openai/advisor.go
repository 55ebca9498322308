// Package openai adapts a chat-completions model to the advisor port.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
	"github.com/SscSPs/orbit_finance/internal/middleware"
	goopenai "github.com/sashabaranov/go-openai"
)

const (
	DefaultModel   = goopenai.GPT4oMini
	DefaultTimeout = 30 * time.Second
)

const systemPrompt = "You are a concise personal finance coach. Answer in at most three short paragraphs of plain text, no markdown headings."

// Config configures the advisor.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string        // empty means the public OpenAI endpoint
	Timeout time.Duration // per request; zero means DefaultTimeout
}

// Advisor asks a chat model for advice on a workspace's recent transactions.
type Advisor struct {
	client  *goopenai.Client
	model   string
	timeout time.Duration
}

// NewAdvisor returns an OpenAI-backed advisor, or a NoopAdvisor when no API key is set.
func NewAdvisor(cfg Config) portssvc.AdvisorSvc {
	if cfg.APIKey == "" {
		return NoopAdvisor{}
	}
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	a := &Advisor{
		client:  goopenai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
	if a.model == "" {
		a.model = DefaultModel
	}
	if a.timeout <= 0 {
		a.timeout = DefaultTimeout
	}
	return a
}

var _ portssvc.AdvisorSvc = (*Advisor)(nil)

func (a *Advisor) Advise(ctx context.Context, req domain.AdviceRequest) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	prompt, err := buildPrompt(req)
	if err != nil {
		return "", apperrors.NewExternalServiceError("failed to build advice prompt", err)
	}

	// tie the model timeout to the caller's context
	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(reqCtx, goopenai.ChatCompletionRequest{
		Model: a.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		logger.Warn("Advisor request failed", slog.String("model", a.model), slog.String("error", err.Error()))
		return "", apperrors.NewExternalServiceError("advisor request failed", err)
	}
	logger.Debug("Advisor responded",
		slog.String("model", a.model),
		slog.Int("total_tokens", resp.Usage.TotalTokens),
		slog.Duration("latency", time.Since(start)))

	if len(resp.Choices) == 0 {
		return "", apperrors.NewExternalServiceError("advisor returned no choices", nil)
	}
	advice := strings.TrimSpace(resp.Choices[0].Message.Content)
	if advice == "" {
		return "", apperrors.NewExternalServiceError("advisor returned empty advice", nil)
	}
	return advice, nil
}

type promptTransaction struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func buildPrompt(req domain.AdviceRequest) (string, error) {
	rows := make([]promptTransaction, 0, len(req.Transactions))
	for _, t := range req.Transactions {
		rows = append(rows, promptTransaction{
			Date:        t.Date.Format(time.DateOnly),
			Type:        string(t.Type),
			Amount:      t.Amount.String(),
			Category:    t.Category,
			Description: t.Description,
		})
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		`Workspace %q uses the currency symbol %q.
These are its most recent transactions, newest first:
%s

Point out spending patterns worth attention and give two or three practical suggestions.`,
		req.WorkspaceName, req.CurrencySymbol, payload,
	), nil
}

// NoopAdvisor is used when no model is configured. Every call fails, so callers
// serve the fallback advice.
type NoopAdvisor struct{}

var _ portssvc.AdvisorSvc = NoopAdvisor{}

func (NoopAdvisor) Advise(context.Context, domain.AdviceRequest) (string, error) {
	return "", apperrors.NewExternalServiceError("no advisor configured", nil)
}
