// Copyright 2026 Auditkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/auditkit/evidenced/ai"
	"github.com/auditkit/evidenced/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// IntentResolver implements ai.IntentResolver using OpenAI-compatible chat
// APIs. Any model or parse failure degrades to the deterministic keyword
// fallback instead of failing the caller.
type IntentResolver struct {
	client         llms.Model
	fallbackClient llms.Model // nil when no fallback model is configured
	logger         *slog.Logger
}

// resolvedIntent matches the JSON shape the model is instructed to emit.
type resolvedIntent struct {
	QueryType           string         `json:"query_type"`
	Intent              string         `json:"intent"`
	Parameters          map[string]any `json:"parameters"`
	Confidence          float64        `json:"confidence"`
	ClarifyingQuestions []string       `json:"clarifying_questions"`
}

// resolvedFunction matches the JSON shape for GitHub function selection.
type resolvedFunction struct {
	Function   string         `json:"function"`
	Parameters map[string]any `json:"parameters"`
}

// newIntentResolver is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newIntentResolver(config *ai.Config) (*IntentResolver, error) {
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

	return &IntentResolver{
		client:         client,
		fallbackClient: fallbackClient,
		logger:         slog.Default().With("component", "openai-resolver"),
	}, nil
}

// NewIntentResolver creates a new intent resolver using the provided
// configuration.
//
// Returns ai.IntentResolver interface to enforce abstraction.
func NewIntentResolver(config *ai.Config) (ai.IntentResolver, error) {
	return newIntentResolver(config)
}

// Resolve analyzes a free-text query with the model. On any failure it logs
// and returns the keyword fallback analysis; the error return is reserved
// for context cancellation.
func (r *IntentResolver) Resolve(ctx context.Context, query string) (*core.Intent, error) {
	responseText, err := r.generate(ctx, resolvePrompt, query, 0.3)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Warn("intent resolution failed, using keyword fallback", "err", err)
		return ai.FallbackResolve(query), nil
	}

	var resolved resolvedIntent
	if err := unmarshalModelJSON(responseText, &resolved); err != nil {
		r.logger.Warn("error parsing resolver response, using keyword fallback",
			"response", responseText, "err", err)
		return ai.FallbackResolve(query), nil
	}

	if resolved.Parameters == nil {
		resolved.Parameters = make(map[string]any)
	}

	return &core.Intent{
		QueryType:           resolved.QueryType,
		Parameters:          resolved.Parameters,
		Text:                resolved.Intent,
		Confidence:          resolved.Confidence,
		ClarifyingQuestions: resolved.ClarifyingQuestions,
	}, nil
}

// ResolveGitHub selects which version-control read operation the query asks
// for. Same degradation contract as Resolve.
func (r *IntentResolver) ResolveGitHub(ctx context.Context, query string) (*core.Intent, error) {
	responseText, err := r.generate(ctx, resolveGitHubPrompt, query, 0.2)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Warn("github function selection failed, using keyword fallback", "err", err)
		return ai.FallbackResolveGitHub(query), nil
	}

	var resolved resolvedFunction
	if err := unmarshalModelJSON(responseText, &resolved); err != nil {
		r.logger.Warn("error parsing function selection response, using keyword fallback",
			"response", responseText, "err", err)
		return ai.FallbackResolveGitHub(query), nil
	}

	if resolved.Parameters == nil {
		resolved.Parameters = make(map[string]any)
	}

	return &core.Intent{
		QueryType:  core.QueryTypeGitHub,
		Function:   resolved.Function,
		Parameters: resolved.Parameters,
		Text:       "GitHub query: " + query,
		Confidence: 0.8,
	}, nil
}

// generate runs one chat completion, trying the primary model first and the
// configured fallback model second.
func (r *IntentResolver) generate(ctx context.Context, systemPrompt, query string, temperature float64) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(query)},
		},
	}

	response, err := r.client.GenerateContent(ctx, content,
		llms.WithTemperature(temperature), llms.WithJSONMode())
	if err != nil && r.fallbackClient != nil {
		r.logger.Debug("primary model unavailable, trying fallback model", "err", err)
		response, err = r.fallbackClient.GenerateContent(ctx, content,
			llms.WithTemperature(temperature), llms.WithJSONMode())
	}
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", errNoChoices
	}
	return response.Choices[0].Content, nil
}

// unmarshalModelJSON strips markdown code fences, repairs common JSON
// defects, and unmarshals into v.
func unmarshalModelJSON(responseText string, v any) error {
	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	responseText = repairJSON(responseText)

	return json.Unmarshal([]byte(responseText), v)
}
