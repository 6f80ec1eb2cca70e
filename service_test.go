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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditkit/evidenced/ai"
	"github.com/auditkit/evidenced/ai/mock"
	"github.com/auditkit/evidenced/core"
	"github.com/auditkit/evidenced/report"
	"github.com/auditkit/evidenced/storage"
)

// newTestService builds a service over a temp data dir with a mock AI
// provider and the given document files.
func newTestService(t *testing.T, provider ai.Provider, documents map[string]string) *Service {
	t.Helper()

	dataDir := t.TempDir()
	docsDir := filepath.Join(dataDir, "docs")
	require.NoError(t, os.MkdirAll(docsDir, 0755))
	for name, content := range documents {
		require.NoError(t, os.WriteFile(filepath.Join(docsDir, name), []byte(content), 0644))
	}

	svc, err := NewService(dataDir,
		WithAIProvider(provider),
		WithDocumentsDir(docsDir),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

const assetsCSV = "asset,status,user\n" +
	"MacBook Laptop,assigned,alice\n" +
	"Dell Monitor,in stock,\n"

func TestProcessQueryDocument(t *testing.T) {
	svc := newTestService(t, mock.NewMockProvider(), map[string]string{"assets.csv": assetsCSV})
	ctx := context.Background()

	result, err := svc.ProcessQuery(ctx, "", "laptops assigned to alice", core.QueryTypeDocument, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, result.QueryID)
	assert.Equal(t, "laptops assigned to alice", result.Query)
	assert.False(t, result.CreatedAt.IsZero())

	require.Equal(t, 1, result.EvidenceCount)
	item := result.Evidence[0]
	assert.Equal(t, "Evidence from assets.csv", item.Title)
	assert.Equal(t, core.SourceTypeDocument, item.SourceType)
	assert.Greater(t, item.ConfidenceScore, 0.5)

	assert.Contains(t, result.Summary, "DOCUMENT EVIDENCE (1 items):")
	assert.Contains(t, result.Summary, "Filename: assets.csv")
}

func TestProcessQueryExplicitID(t *testing.T) {
	svc := newTestService(t, mock.NewMockProvider(), nil)
	ctx := context.Background()

	result, err := svc.ProcessQuery(ctx, "audit-42", "laptops assigned to alice", core.QueryTypeDocument, nil)
	require.NoError(t, err)
	assert.Equal(t, "audit-42", result.QueryID)

	stored, err := svc.Result(ctx, "audit-42")
	require.NoError(t, err)
	assert.Equal(t, result.Query, stored.Query)
	assert.Equal(t, result.Summary, stored.Summary)
}

func TestProcessQueryEmptyQuery(t *testing.T) {
	svc := newTestService(t, mock.NewMockProvider(), nil)

	_, err := svc.ProcessQuery(context.Background(), "", "", "", nil)
	assert.Equal(t, core.ErrEmptyQuery, err)
}

func TestProcessQueryMixedSurfacesSourceErrors(t *testing.T) {
	// No GitHub or JIRA configuration and no documents: the mixed fan-out
	// still produces a total result with one item per source.
	svc := newTestService(t, mock.NewMockProvider(), nil)
	ctx := context.Background()

	result, err := svc.ProcessQuery(ctx, "", "evidence for the quarterly audit", "", nil)
	require.NoError(t, err)

	require.Equal(t, 3, result.EvidenceCount)
	assert.Equal(t, "GitHub Integration Error", result.Evidence[0].Title)
	assert.Equal(t, 0.0, result.Evidence[0].ConfidenceScore)
	assert.Equal(t, "JIRA Integration Error", result.Evidence[1].Title)
	assert.Equal(t, "No Matches Found", result.Evidence[2].Title)
}

func TestProcessQuerySummaryFallback(t *testing.T) {
	resolver := mock.NewMockIntentResolver()
	formatter := mock.NewMockSummaryFormatter()
	formatter.FormatFunc = func(ctx context.Context, evidence []core.EvidenceItem, query string) (string, error) {
		return "", errors.New("model unavailable")
	}
	provider := mock.NewMockProviderWithServices(resolver, formatter)

	svc := newTestService(t, provider, map[string]string{"assets.csv": assetsCSV})
	ctx := context.Background()

	result, err := svc.ProcessQuery(ctx, "", "laptops assigned to alice", core.QueryTypeDocument, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, formatter.CallCount())
	assert.Contains(t, result.Summary, "Evidence Summary for: laptops assigned to alice")
}

func TestResultNotFound(t *testing.T) {
	svc := newTestService(t, mock.NewMockProvider(), nil)

	_, err := svc.Result(context.Background(), "missing")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestExport(t *testing.T) {
	svc := newTestService(t, mock.NewMockProvider(), map[string]string{"assets.csv": assetsCSV})
	ctx := context.Background()

	result, err := svc.ProcessQuery(ctx, "", "laptops assigned to alice", core.QueryTypeDocument, nil)
	require.NoError(t, err)

	path, err := svc.Export(ctx, result.QueryID, "json")
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.True(t, strings.HasSuffix(path, ".json"))

	_, err = svc.Export(ctx, "missing", "json")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestReportFormats(t *testing.T) {
	svc := newTestService(t, mock.NewMockProvider(), map[string]string{"assets.csv": assetsCSV})
	ctx := context.Background()

	result, err := svc.ProcessQuery(ctx, "", "laptops assigned to alice", core.QueryTypeDocument, nil)
	require.NoError(t, err)

	t.Run("text", func(t *testing.T) {
		data, err := svc.Report(ctx, result.QueryID, "txt")
		require.NoError(t, err)
		text := string(data)
		assert.Contains(t, text, "Evidence Report: laptops assigned to alice")
		assert.Contains(t, text, "KEY FINDINGS:")
	})

	t.Run("default is text", func(t *testing.T) {
		data, err := svc.Report(ctx, result.QueryID, "")
		require.NoError(t, err)
		assert.Contains(t, string(data), "QUERY:")
	})

	t.Run("json", func(t *testing.T) {
		data, err := svc.Report(ctx, result.QueryID, "json")
		require.NoError(t, err)
		assert.Contains(t, string(data), `"report_metadata"`)
		assert.Contains(t, string(data), `"generated_by": "Evidence-on-Demand Bot"`)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := svc.Report(ctx, result.QueryID, "pdf")
		assert.True(t, errors.Is(err, report.ErrUnsupportedFormat))
	})
}

func TestReports(t *testing.T) {
	svc := newTestService(t, mock.NewMockProvider(), map[string]string{"assets.csv": assetsCSV})
	ctx := context.Background()

	first, err := svc.ProcessQuery(ctx, "", "laptops assigned to alice", core.QueryTypeDocument, nil)
	require.NoError(t, err)

	// Creation timestamps must differ for the listing order to be observable.
	time.Sleep(2 * time.Millisecond)

	longQuery := "documents covering the access review for every contractor in scope"
	second, err := svc.ProcessQuery(ctx, "", longQuery, core.QueryTypeDocument, nil)
	require.NoError(t, err)

	summaries, err := svc.Reports(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Most recent first.
	assert.Equal(t, second.QueryID, summaries[0].ID)
	assert.Equal(t, first.QueryID, summaries[1].ID)

	assert.Equal(t, longQuery[:50]+"...", summaries[0].Title)
	assert.Equal(t, "laptops assigned to alice", summaries[1].Title)
	assert.Contains(t, summaries[1].Description, "laptops assigned to alice")
	assert.Equal(t, []string{"documents"}, summaries[1].Sources)
	assert.Equal(t, 1, summaries[1].EvidenceCount)
	assert.NotEmpty(t, summaries[1].Summary)
}
