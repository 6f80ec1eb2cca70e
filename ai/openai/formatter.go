package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/auditkit/evidenced/ai"
	"github.com/auditkit/evidenced/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var errNoChoices = errors.New("no choices returned from model")

// SummaryFormatter implements ai.SummaryFormatter using OpenAI-compatible
// chat APIs, degrading to the grouped plain-text fallback on failure.
type SummaryFormatter struct {
	client         llms.Model
	fallbackClient llms.Model
	logger         *slog.Logger
}

// newSummaryFormatter is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newSummaryFormatter(config *ai.Config) (*SummaryFormatter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	var fallbackClient llms.Model
	if config.FallbackModel != "" {
		fallbackClient, err = openai.New(
			openai.WithBaseURL(config.Host),
			openai.WithToken(config.Token),
			openai.WithModel(config.FallbackModel),
		)
		if err != nil {
			return nil, err
		}
	}

	return &SummaryFormatter{
		client:         client,
		fallbackClient: fallbackClient,
		logger:         slog.Default().With("component", "openai-formatter"),
	}, nil
}

// NewSummaryFormatter creates a new summary formatter using the provided
// configuration.
//
// Returns ai.SummaryFormatter interface to enforce abstraction.
func NewSummaryFormatter(config *ai.Config) (ai.SummaryFormatter, error) {
	return newSummaryFormatter(config)
}

// Format renders evidence into an audit-friendly summary with the model.
// On failure it returns the deterministic grouped fallback.
func (f *SummaryFormatter) Format(ctx context.Context, evidence []core.EvidenceItem, query string) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Query: %s\n\nEvidence Found:\n", query)
	for _, item := range evidence {
		title := item.Title
		if title == "" {
			title = "Untitled"
		}
		description := item.Description
		if description == "" {
			description = "No description"
		}
		fmt.Fprintf(&sb, "- %s: %s\n", title, description)
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(formatPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(sb.String())},
		},
	}

	response, err := f.client.GenerateContent(ctx, content, llms.WithTemperature(0.2))
	if err != nil && f.fallbackClient != nil {
		f.logger.Debug("primary model unavailable for formatting, trying fallback model", "err", err)
		response, err = f.fallbackClient.GenerateContent(ctx, content, llms.WithTemperature(0.2))
	}
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		f.logger.Warn("ai formatting failed, using fallback", "err", err)
		return ai.FallbackFormat(evidence, query), nil
	}
	if len(response.Choices) < 1 || strings.TrimSpace(response.Choices[0].Content) == "" {
		return ai.FallbackFormat(evidence, query), nil
	}

	return response.Choices[0].Content, nil
}
