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
	"log/slog"

	"github.com/auditkit/evidenced/ai"
)

// Provider implements ai.Provider using OpenAI-compatible chat services.
// It manages intent resolver and summary formatter instances.
type Provider struct {
	config    *ai.Config
	resolver  *IntentResolver
	formatter *SummaryFormatter
	logger    *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction and
// prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	resolver, err := newIntentResolver(config)
	if err != nil {
		return nil, err
	}

	formatter, err := newSummaryFormatter(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		resolver:  resolver,
		formatter: formatter,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// IntentResolver returns the query interpretation service.
func (p *Provider) IntentResolver() ai.IntentResolver {
	return p.resolver
}

// SummaryFormatter returns the evidence summary service.
func (p *Provider) SummaryFormatter() ai.SummaryFormatter {
	return p.formatter
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
