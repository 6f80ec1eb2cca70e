package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/auditkit/evidenced/core"
	"github.com/auditkit/evidenced/tracker"
)

// JiraHandler answers ticket intents against the issue tracker.
type JiraHandler struct {
	client *tracker.Client
	logger *slog.Logger
}

// NewJiraHandler creates a handler backed by the given client. A nil client
// is allowed; credential errors surface at query time as error evidence.
func NewJiraHandler(client *tracker.Client, logger *slog.Logger) *JiraHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &JiraHandler{
		client: client,
		logger: logger.With("component", "jira_handler"),
	}
}

// SourceType implements Handler.
func (h *JiraHandler) SourceType() core.SourceType {
	return core.SourceTypeJira
}

// Handle implements Handler. A ticket_key parameter selects a single-ticket
// lookup; anything else becomes a filtered search.
func (h *JiraHandler) Handle(ctx context.Context, intent *core.Intent) ([]core.EvidenceItem, error) {
	if h.client == nil {
		return nil, fmt.Errorf("jira: %w", ErrClientNotConfigured)
	}

	if key, ok := intent.StringParameter("ticket_key"); ok && key != "" {
		return h.ticket(ctx, key)
	}
	return h.search(ctx, intent)
}

func (h *JiraHandler) ticket(ctx context.Context, key string) ([]core.EvidenceItem, error) {
	t, err := h.client.GetTicket(ctx, key)
	if err != nil {
		return nil, err
	}

	return []core.EvidenceItem{{
		Source:          "jira",
		SourceType:      core.SourceTypeJira,
		Title:           fmt.Sprintf("%s: %s", t.Key, t.Summary),
		Description:     fmt.Sprintf("Status: %s, Assignee: %s", t.Status, orUnassigned(t.Assignee)),
		Data:            ticketData(t),
		ConfidenceScore: 0.95,
		Timestamp:       &t.Created,
	}}, nil
}

func (h *JiraHandler) search(ctx context.Context, intent *core.Intent) ([]core.EvidenceItem, error) {
	filter := tracker.SearchFilter{}
	if project, ok := intent.StringParameter("project"); ok {
		filter.Project = project
	}
	if assignee, ok := intent.StringParameter("assignee"); ok {
		filter.Assignee = assignee
	}
	if status, ok := intent.StringParameter("status"); ok {
		filter.Status = status
	}

	maxResults, ok := intent.IntParameter("max_results")
	if !ok {
		maxResults = 50
	}

	jql := filter.JQL()
	tickets, err := h.client.SearchTickets(ctx, jql, maxResults)
	if err != nil {
		return nil, err
	}

	items := make([]core.EvidenceItem, 0, len(tickets))
	for _, t := range tickets {
		t := t
		items = append(items, core.EvidenceItem{
			Source:          "jira",
			SourceType:      core.SourceTypeJira,
			Title:           fmt.Sprintf("%s: %s", t.Key, t.Summary),
			Description:     fmt.Sprintf("Status: %s, Assignee: %s", t.Status, orUnassigned(t.Assignee)),
			Data:            ticketData(t),
			ConfidenceScore: 0.8,
			Timestamp:       &t.Created,
		})
	}

	h.logger.Debug("ticket search complete", "jql", jql, "count", len(items))
	return items, nil
}

func ticketData(t *tracker.Ticket) map[string]any {
	data := map[string]any{
		"key":      t.Key,
		"summary":  t.Summary,
		"status":   t.Status,
		"assignee": t.Assignee,
		"created":  t.Created,
		"updated":  t.Updated,
	}
	if t.Description != "" {
		data["description"] = t.Description
	}
	if t.Reporter != "" {
		data["reporter"] = t.Reporter
	}
	if t.Priority != "" {
		data["priority"] = t.Priority
	}
	if t.URL != "" {
		data["url"] = t.URL
	}
	if len(t.WorkflowHistory) > 0 {
		data["workflow_history"] = t.WorkflowHistory
	}
	if len(t.Comments) > 0 {
		data["comments"] = t.Comments
	}
	return data
}

func orUnassigned(assignee string) string {
	if assignee == "" {
		return "Unassigned"
	}
	return assignee
}
