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


package mock

import "github.com/auditkit/evidenced/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock resolver and formatter instances.
type MockProvider struct {
	resolver  *MockIntentResolver
	formatter *MockSummaryFormatter
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production
// constructors. Use GetMockResolver()/GetMockFormatter() to access concrete
// types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		resolver:  NewMockIntentResolver(),
		formatter: NewMockSummaryFormatter(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock
// services. This allows full control over the behavior of each service.
func NewMockProviderWithServices(resolver *MockIntentResolver, formatter *MockSummaryFormatter) ai.Provider {
	return &MockProvider{
		resolver:  resolver,
		formatter: formatter,
	}
}

// IntentResolver returns the mock resolver.
func (p *MockProvider) IntentResolver() ai.IntentResolver {
	return p.resolver
}

// SummaryFormatter returns the mock formatter.
func (p *MockProvider) SummaryFormatter() ai.SummaryFormatter {
	return p.formatter
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockResolver returns the underlying mock resolver for test assertions.
func (p *MockProvider) GetMockResolver() *MockIntentResolver {
	return p.resolver
}

// GetMockFormatter returns the underlying mock formatter for test assertions.
func (p *MockProvider) GetMockFormatter() *MockSummaryFormatter {
	return p.formatter
}
