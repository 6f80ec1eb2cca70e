package vcs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("acme", "audit", WithBaseURL(server.URL), WithToken("tok"))
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClient(t *testing.T) {
	t.Run("requires owner and repo", func(t *testing.T) {
		_, err := NewClient("", "audit")
		assert.ErrorIs(t, err, ErrNotConfigured)

		_, err = NewClient("acme", "")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("rejects empty base url", func(t *testing.T) {
		_, err := NewClient("acme", "audit", WithBaseURL(""))
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestListPullRequests(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/audit/pulls", r.URL.Path)
		assert.Equal(t, "token tok", r.Header.Get("Authorization"))
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))

		writeJSON(t, w, []map[string]any{
			{
				"number":     42,
				"title":      "Add audit log",
				"state":      "open",
				"user":       map[string]any{"login": "alice"},
				"created_at": "2026-08-20T10:00:00Z",
				"html_url":   "https://example.com/pr/42",
			},
		})
	}))

	prs, err := client.ListPullRequests(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, prs, 1)
	assert.Equal(t, 42, prs[0].Number)
	assert.Equal(t, "alice", prs[0].User)
	assert.Equal(t, "https://example.com/pr/42", prs[0].HTMLURL)
	assert.Nil(t, prs[0].MergedAt)
}

func TestPullRequestDetailsNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.PullRequestDetails(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMergedPullRequests(t *testing.T) {
	now := time.Now().UTC()
	recent := now.Add(-24 * time.Hour)
	ancient := now.AddDate(0, 0, -30)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/acme/audit/pulls" && r.URL.Query().Get("page") == "1":
			writeJSON(t, w, []map[string]any{
				{
					"number": 7, "title": "merged recently", "state": "closed",
					"user":       map[string]any{"login": "bob"},
					"created_at": recent.Add(-time.Hour).Format(time.RFC3339),
					"merged_at":  recent.Format(time.RFC3339),
				},
				{
					"number": 6, "title": "closed unmerged", "state": "closed",
					"user":       map[string]any{"login": "bob"},
					"created_at": recent.Format(time.RFC3339),
				},
				{
					"number": 2, "title": "merged long ago", "state": "closed",
					"user":       map[string]any{"login": "bob"},
					"created_at": ancient.Format(time.RFC3339),
					"merged_at":  ancient.Format(time.RFC3339),
				},
			})
		case r.URL.Path == "/repos/acme/audit/pulls/7/reviews":
			writeJSON(t, w, []map[string]any{
				{"user": map[string]any{"login": "carol"}, "state": "APPROVED", "submitted_at": recent.Format(time.RFC3339)},
				{"user": map[string]any{"login": "carol"}, "state": "APPROVED", "submitted_at": recent.Format(time.RFC3339)},
				{"user": map[string]any{"login": "dave"}, "state": "COMMENTED", "submitted_at": recent.Format(time.RFC3339)},
			})
		default:
			writeJSON(t, w, []map[string]any{})
		}
	}))

	merged, err := client.MergedPullRequests(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, 7, merged[0].Number)
	// Approvals deduplicate by user, non-approving reviews excluded.
	assert.Equal(t, []string{"carol"}, merged[0].Approvers)
}

func TestWaitingForReview(t *testing.T) {
	now := time.Now().UTC()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/acme/audit/pulls" && r.URL.Query().Get("page") == "1":
			writeJSON(t, w, []map[string]any{
				{
					"number": 10, "title": "stale, unreviewed", "state": "open",
					"user":       map[string]any{"login": "alice"},
					"created_at": now.Add(-48 * time.Hour).Format(time.RFC3339),
				},
				{
					"number": 11, "title": "stale, reviewed", "state": "open",
					"user":       map[string]any{"login": "alice"},
					"created_at": now.Add(-48 * time.Hour).Format(time.RFC3339),
				},
				{
					"number": 12, "title": "fresh", "state": "open",
					"user":       map[string]any{"login": "alice"},
					"created_at": now.Format(time.RFC3339),
				},
			})
		case r.URL.Path == "/repos/acme/audit/pulls/11/reviews":
			writeJSON(t, w, []map[string]any{
				{"user": map[string]any{"login": "bob"}, "state": "APPROVED", "submitted_at": now.Format(time.RFC3339)},
			})
		default:
			writeJSON(t, w, []map[string]any{})
		}
	}))

	waiting, err := client.WaitingForReview(context.Background(), 24)
	require.NoError(t, err)
	require.Len(t, waiting, 1)
	assert.Equal(t, 10, waiting[0].Number)
}

func TestGetRequestFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))

	_, err := client.ListPullRequests(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), fmt.Sprint(http.StatusForbidden))
}
