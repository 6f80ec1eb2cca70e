package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/auditkit/evidenced/core"
	"github.com/auditkit/evidenced/vcs"
)

// GitHubHandler answers pull-request intents against a version-control host.
type GitHubHandler struct {
	client *vcs.Client
	logger *slog.Logger
}

// NewGitHubHandler creates a handler backed by the given client. A nil
// client is allowed; the handler then reports ErrClientNotConfigured at
// query time so the failure surfaces as error evidence instead of a
// construction error.
func NewGitHubHandler(client *vcs.Client, logger *slog.Logger) *GitHubHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GitHubHandler{
		client: client,
		logger: logger.With("component", "github_handler"),
	}
}

// SourceType implements Handler.
func (h *GitHubHandler) SourceType() core.SourceType {
	return core.SourceTypeGitHub
}

// Handle implements Handler.
func (h *GitHubHandler) Handle(ctx context.Context, intent *core.Intent) ([]core.EvidenceItem, error) {
	if h.client == nil {
		return nil, fmt.Errorf("github: %w", ErrClientNotConfigured)
	}

	switch intent.Function {
	case core.FunctionMergedPRsLastNDays:
		return h.mergedPRs(ctx, intent)
	case core.FunctionPRsWaitingForReview:
		return h.waitingForReview(ctx, intent)
	case core.FunctionPRDetails:
		return h.prDetails(ctx, intent)
	case core.FunctionListPRs, "":
		return h.listPRs(ctx, intent)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, intent.Function)
	}
}

func (h *GitHubHandler) mergedPRs(ctx context.Context, intent *core.Intent) ([]core.EvidenceItem, error) {
	days, ok := intent.IntParameter("n")
	if !ok {
		days = 7
	}

	merged, err := h.client.MergedPullRequests(ctx, days)
	if err != nil {
		return nil, err
	}

	items := make([]core.EvidenceItem, 0, len(merged))
	for _, pr := range merged {
		pr := pr
		items = append(items, core.EvidenceItem{
			Source:     "github",
			SourceType: core.SourceTypeGitHub,
			Title:      fmt.Sprintf("Merged PR #%d: %s", pr.Number, pr.Title),
			Description: fmt.Sprintf("Merged at: %s, Approvers: %s",
				pr.MergedAt.Format("2006-01-02 15:04"), approverList(pr.Approvers)),
			Data: map[string]any{
				"number":    pr.Number,
				"title":     pr.Title,
				"merged_at": pr.MergedAt,
				"approvers": pr.Approvers,
			},
			ConfidenceScore: 0.9,
			Timestamp:       &pr.MergedAt,
		})
	}

	h.logger.Debug("merged pull requests retrieved", "days", days, "count", len(items))
	return items, nil
}

func (h *GitHubHandler) waitingForReview(ctx context.Context, intent *core.Intent) ([]core.EvidenceItem, error) {
	hours, ok := intent.IntParameter("hours")
	if !ok {
		hours = 24
	}

	waiting, err := h.client.WaitingForReview(ctx, hours)
	if err != nil {
		return nil, err
	}

	items := make([]core.EvidenceItem, 0, len(waiting))
	for _, pr := range waiting {
		pr := pr
		items = append(items, core.EvidenceItem{
			Source:     "github",
			SourceType: core.SourceTypeGitHub,
			Title:      fmt.Sprintf("PR #%d: %s", pr.Number, pr.Title),
			Description: fmt.Sprintf("Created at: %s, Waiting for review",
				pr.CreatedAt.Format("2006-01-02 15:04")),
			Data:            prData(pr),
			ConfidenceScore: 0.8,
			Timestamp:       &pr.CreatedAt,
		})
	}

	h.logger.Debug("waiting pull requests retrieved", "hours", hours, "count", len(items))
	return items, nil
}

// prDetails returns zero items when no pr_number parameter is present; a
// detail request without a target is not an error condition.
func (h *GitHubHandler) prDetails(ctx context.Context, intent *core.Intent) ([]core.EvidenceItem, error) {
	number, ok := intent.IntParameter("pr_number")
	if !ok {
		h.logger.Warn("pr detail requested without pr_number parameter")
		return nil, nil
	}

	pr, err := h.client.PullRequestDetails(ctx, number)
	if err != nil {
		return nil, err
	}

	return []core.EvidenceItem{{
		Source:          "github",
		SourceType:      core.SourceTypeGitHub,
		Title:           fmt.Sprintf("PR #%d: %s", pr.Number, pr.Title),
		Description:     fmt.Sprintf("Status: %s, Author: %s", pr.State, pr.User),
		Data:            prData(*pr),
		ConfidenceScore: 0.95,
		Timestamp:       &pr.CreatedAt,
	}}, nil
}

func (h *GitHubHandler) listPRs(ctx context.Context, intent *core.Intent) ([]core.EvidenceItem, error) {
	opts := vcs.ListOptions{}
	if state, ok := intent.StringParameter("state"); ok {
		opts.State = state
	}
	if sort, ok := intent.StringParameter("sort"); ok {
		opts.Sort = sort
	}
	if direction, ok := intent.StringParameter("direction"); ok {
		opts.Direction = direction
	}
	if perPage, ok := intent.IntParameter("per_page"); ok {
		opts.PerPage = perPage
	}
	if page, ok := intent.IntParameter("page"); ok {
		opts.Page = page
	}

	prs, err := h.client.ListPullRequests(ctx, opts)
	if err != nil {
		return nil, err
	}

	items := make([]core.EvidenceItem, 0, len(prs))
	for _, pr := range prs {
		pr := pr
		items = append(items, core.EvidenceItem{
			Source:     "github",
			SourceType: core.SourceTypeGitHub,
			Title:      fmt.Sprintf("PR #%d: %s", pr.Number, pr.Title),
			Description: fmt.Sprintf("Status: %s, Created: %s",
				pr.State, pr.CreatedAt.Format("2006-01-02 15:04")),
			Data:            prData(pr),
			ConfidenceScore: 0.8,
			Timestamp:       &pr.CreatedAt,
		})
	}

	return items, nil
}

func prData(pr vcs.PullRequest) map[string]any {
	data := map[string]any{
		"number":     pr.Number,
		"title":      pr.Title,
		"state":      pr.State,
		"user":       pr.User,
		"created_at": pr.CreatedAt,
		"url":        pr.HTMLURL,
	}
	if pr.MergedAt != nil {
		data["merged_at"] = *pr.MergedAt
	}
	return data
}

func approverList(approvers []string) string {
	if len(approvers) == 0 {
		return "none"
	}
	return strings.Join(approvers, ", ")
}
