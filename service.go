// Copyright 2026 Auditkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package evidenced

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/auditkit/evidenced/ai"
	"github.com/auditkit/evidenced/ai/openai"
	"github.com/auditkit/evidenced/core"
	"github.com/auditkit/evidenced/corpus"
	"github.com/auditkit/evidenced/dispatch"
	"github.com/auditkit/evidenced/report"
	"github.com/auditkit/evidenced/search"
	"github.com/auditkit/evidenced/storage"
	"github.com/auditkit/evidenced/storage/badger"
	"github.com/auditkit/evidenced/tracker"
	"github.com/auditkit/evidenced/vcs"
)

// Service wires the intent resolver, source handlers, result store, and
// report surfaces into one evidence pipeline.
type Service struct {
	store      storage.ResultStore
	provider   ai.Provider
	dispatcher *dispatch.Dispatcher
	exporter   *report.Exporter
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig     *ai.Config
	aiProvider   ai.Provider
	githubOwner  string
	githubRepo   string
	githubToken  string
	jiraBaseURL  string
	jiraUsername string
	jiraToken    string
	documentsDir string
	poolSize     int
}

// WithAIConfig sets the language model configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider supplies a ready-made provider instead of constructing
// one from the config. Used by tests to inject mocks.
func WithAIProvider(provider ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.aiProvider = provider
	}
}

// WithGitHub configures the version-control source. Without it, GitHub
// queries surface as error evidence.
func WithGitHub(owner, repo, token string) ServiceOption {
	return func(o *serviceOptions) {
		o.githubOwner = owner
		o.githubRepo = repo
		o.githubToken = token
	}
}

// WithJira configures the issue-tracker source. Without it, JIRA queries
// surface as error evidence.
func WithJira(baseURL, username, token string) ServiceOption {
	return func(o *serviceOptions) {
		o.jiraBaseURL = baseURL
		o.jiraUsername = username
		o.jiraToken = token
	}
}

// WithDocumentsDir sets the directory scanned for document evidence.
// Default is <dataDir>/documents.
func WithDocumentsDir(dir string) ServiceOption {
	return func(o *serviceOptions) {
		o.documentsDir = dir
	}
}

// WithPoolSize enables concurrent source fan-out with the given worker
// count. Default is sequential dispatch.
func WithPoolSize(size int) ServiceOption {
	return func(o *serviceOptions) {
		o.poolSize = size
	}
}

// NewService creates a service rooted at dataDir. Results are stored under
// <dataDir>/results and exports written under <dataDir>/exports.
func NewService(dataDir string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	logger := slog.Default().With("component", "service")

	store, err := badger.NewResultStore(filepath.Join(dataDir, "results"))
	if err != nil {
		return nil, err
	}

	provider := options.aiProvider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	documentsDir := options.documentsDir
	if documentsDir == "" {
		documentsDir = filepath.Join(dataDir, "documents")
	}
	corpusProvider, err := corpus.NewDirProvider(documentsDir)
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	searcher, err := search.NewDocumentSearcher(corpusProvider, provider.IntentResolver())
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	var vcsClient *vcs.Client
	if options.githubOwner != "" && options.githubRepo != "" {
		vcsClient, err = vcs.NewClient(options.githubOwner, options.githubRepo,
			vcs.WithToken(options.githubToken))
		if err != nil {
			provider.Close()
			store.Close()
			return nil, err
		}
	}
	trackerClient := tracker.NewClient(options.jiraBaseURL, options.jiraUsername, options.jiraToken)

	handlers := []dispatch.Handler{
		dispatch.NewGitHubHandler(vcsClient, slog.Default()),
		dispatch.NewJiraHandler(trackerClient, slog.Default()),
		dispatch.NewDocumentHandler(searcher, slog.Default()),
	}

	var dispatchOpts []dispatch.Option
	if options.poolSize > 0 {
		dispatchOpts = append(dispatchOpts, dispatch.WithPoolSize(options.poolSize))
	}
	dispatcher, err := dispatch.NewDispatcher(handlers, dispatchOpts...)
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	exporter, err := report.NewExporter(filepath.Join(dataDir, "exports"))
	if err != nil {
		dispatcher.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	return &Service{
		store:      store,
		provider:   provider,
		dispatcher: dispatcher,
		exporter:   exporter,
		logger:     logger,
	}, nil
}

// Close releases the service's resources.
func (s *Service) Close() error {
	s.dispatcher.Release()
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	return s.store.Close()
}

// ProcessQuery runs the full pipeline for one query: resolve the intent,
// dispatch it to the evidence sources, summarize, and store the result.
//
// queryID may be empty, in which case a new one is generated. queryType may
// be empty to let the resolver pick; a non-empty value overrides the
// resolver's choice. Explicit filters take precedence over resolver-derived
// parameters of the same name.
func (s *Service) ProcessQuery(ctx context.Context, queryID, query, queryType string, filters map[string]any) (*core.QueryResult, error) {
	if query == "" {
		return nil, core.ErrEmptyQuery
	}
	if queryID == "" {
		queryID = uuid.NewString()
	}

	resolver := s.provider.IntentResolver()
	intent, err := resolver.Resolve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("resolving intent: %w", err)
	}

	effectiveType := queryType
	if effectiveType == "" {
		effectiveType = intent.QueryType
	}

	// GitHub operations need a concrete function; the generic resolution
	// only picks the source.
	if effectiveType == core.QueryTypeGitHub || effectiveType == core.QueryTypeMixed || effectiveType == "" {
		s.resolveGitHubFunction(ctx, resolver, query, intent)
	}

	s.logger.Info("processing query",
		"query_id", queryID,
		"query_type", effectiveType,
		"fallback", intent.Fallback)

	evidence := s.dispatcher.Dispatch(ctx, effectiveType, intent, filters)

	summary := "No evidence found matching your query."
	if len(evidence) > 0 {
		summary, err = s.provider.SummaryFormatter().Format(ctx, evidence, query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			summary = ai.FallbackFormat(evidence, query)
		}
	}

	result := &core.QueryResult{
		QueryID:  queryID,
		Query:    query,
		Evidence: evidence,
		Summary:  summary,
	}
	if err := s.store.StoreResult(ctx, result); err != nil {
		return nil, fmt.Errorf("storing result: %w", err)
	}

	s.logger.Info("query processed", "query_id", queryID, "evidence_count", result.EvidenceCount)
	return result, nil
}

// resolveGitHubFunction overlays the GitHub-specific resolution onto the
// generic intent: the function always, parameters only where the generic
// resolution has none.
func (s *Service) resolveGitHubFunction(ctx context.Context, resolver ai.IntentResolver, query string, intent *core.Intent) {
	ghIntent, err := resolver.ResolveGitHub(ctx, query)
	if err != nil || ghIntent == nil {
		s.logger.Warn("github function resolution failed", "error", err)
		return
	}

	intent.Function = ghIntent.Function
	if intent.Parameters == nil {
		intent.Parameters = make(map[string]any)
	}
	for k, v := range ghIntent.Parameters {
		if _, exists := intent.Parameters[k]; !exists {
			intent.Parameters[k] = v
		}
	}
}

// Result retrieves a stored query result by ID.
func (s *Service) Result(ctx context.Context, queryID string) (*core.QueryResult, error) {
	return s.store.GetResult(ctx, queryID)
}

// Export writes the evidence of a stored result to the export directory in
// the given format and returns the file path.
func (s *Service) Export(ctx context.Context, queryID, format string) (string, error) {
	result, err := s.store.GetResult(ctx, queryID)
	if err != nil {
		return "", err
	}
	return s.exporter.Export(queryID, result.Evidence, format)
}

// Report renders an audit report for a stored result. Supported formats
// are "txt" and "json".
func (s *Service) Report(ctx context.Context, queryID, format string) ([]byte, error) {
	result, err := s.store.GetResult(ctx, queryID)
	if err != nil {
		return nil, err
	}

	content := report.BuildContent(result)
	switch strings.ToLower(format) {
	case "txt", "text", "":
		return []byte(report.RenderText(content)), nil
	case "json":
		return report.RenderJSON(content)
	default:
		return nil, fmt.Errorf("%w: %s", report.ErrUnsupportedFormat, format)
	}
}

// ReportSummary is one stored result restated for report listings.
type ReportSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	EvidenceCount int       `json:"evidence_count"`
	Sources       []string  `json:"sources"`
	Summary       string    `json:"summary"`
}

// Reports lists every stored result as a report summary, most recent first.
func (s *Service) Reports(ctx context.Context) ([]ReportSummary, error) {
	results, err := s.store.ListResults(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ReportSummary, 0, len(results))
	for _, result := range results {
		content := report.BuildContent(result)

		title := result.Query
		if len(title) > 50 {
			title = title[:50] + "..."
		}

		sources := content.Sources
		if len(sources) == 0 {
			sources = []string{"unknown"}
		}

		summaries = append(summaries, ReportSummary{
			ID:            result.QueryID,
			Title:         title,
			Description:   fmt.Sprintf("Evidence report generated from query: %s", result.Query),
			CreatedAt:     result.CreatedAt,
			EvidenceCount: result.EvidenceCount,
			Sources:       sources,
			Summary:       orDefault(result.Summary, "No summary available"),
		})
	}
	return summaries, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
