package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

// Client is a read-only client for the issue tracker's REST API.
// It is safe for concurrent use. Construction succeeds without credentials;
// calls then fail with ErrMissingCredentials so the source handler can
// isolate the misconfiguration as error evidence.
type Client struct {
	baseURL    string
	username   string
	apiToken   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
// Default is an http.Client with a 30 second timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewClient creates a tracker client. Empty credentials are accepted; every
// call will then return ErrMissingCredentials.
func NewClient(baseURL, username, apiToken string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		username:   username,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default().With("component", "tracker-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) configured() bool {
	return c.baseURL != "" && c.username != "" && c.apiToken != ""
}

// Wire shapes. The tracker nests everything under "fields" and represents
// people as objects with display names.
type issuePayload struct {
	Key    string `json:"key"`
	Fields struct {
		Summary     string       `json:"summary"`
		Description string       `json:"description"`
		Status      namedField   `json:"status"`
		Assignee    *personField `json:"assignee"`
		Reporter    *personField `json:"reporter"`
		Priority    *namedField  `json:"priority"`
		Created     jiraTime     `json:"created"`
		Updated     jiraTime     `json:"updated"`
		Comment     struct {
			Comments []commentPayload `json:"comments"`
		} `json:"comment"`
	} `json:"fields"`
	Changelog struct {
		Histories []historyPayload `json:"histories"`
	} `json:"changelog"`
}

type namedField struct {
	Name string `json:"name"`
}

type personField struct {
	DisplayName string `json:"displayName"`
}

type commentPayload struct {
	ID      string      `json:"id"`
	Author  personField `json:"author"`
	Body    string      `json:"body"`
	Created jiraTime    `json:"created"`
	Updated jiraTime    `json:"updated"`
}

type historyPayload struct {
	Author  personField `json:"author"`
	Created jiraTime    `json:"created"`
	Items   []struct {
		Field      string `json:"field"`
		FromString string `json:"fromString"`
		ToString   string `json:"toString"`
	} `json:"items"`
}

// jiraTime parses the tracker's timestamp format, which is almost but not
// quite RFC 3339.
type jiraTime struct {
	time.Time
}

func (t *jiraTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05.000-0700", time.RFC3339} {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (p *issuePayload) toTicket(baseURL string) *Ticket {
	ticket := &Ticket{
		Key:         p.Key,
		Summary:     p.Fields.Summary,
		Description: p.Fields.Description,
		Status:      p.Fields.Status.Name,
		Created:     p.Fields.Created.Time,
		Updated:     p.Fields.Updated.Time,
		URL:         baseURL + "/browse/" + p.Key,
	}
	if p.Fields.Assignee != nil {
		ticket.Assignee = p.Fields.Assignee.DisplayName
	}
	if p.Fields.Reporter != nil {
		ticket.Reporter = p.Fields.Reporter.DisplayName
	}
	if p.Fields.Priority != nil {
		ticket.Priority = p.Fields.Priority.Name
	} else {
		ticket.Priority = "None"
	}

	for _, history := range p.Changelog.Histories {
		for _, item := range history.Items {
			if item.Field != "status" {
				continue
			}
			ticket.WorkflowHistory = append(ticket.WorkflowHistory, WorkflowTransition{
				FromStatus: item.FromString,
				ToStatus:   item.ToString,
				ChangedBy:  history.Author.DisplayName,
				ChangedAt:  history.Created.Time,
			})
		}
	}
	sort.Slice(ticket.WorkflowHistory, func(i, j int) bool {
		return ticket.WorkflowHistory[i].ChangedAt.Before(ticket.WorkflowHistory[j].ChangedAt)
	})

	for _, comment := range p.Fields.Comment.Comments {
		ticket.Comments = append(ticket.Comments, Comment{
			ID:      comment.ID,
			Author:  comment.Author.DisplayName,
			Body:    comment.Body,
			Created: comment.Created.Time,
			Updated: comment.Updated.Time,
		})
	}
	sort.Slice(ticket.Comments, func(i, j int) bool {
		return ticket.Comments[i].Created.Before(ticket.Comments[j].Created)
	})

	return ticket
}

// GetTicket fetches one ticket by key, enriched with its workflow history
// and comments.
func (c *Client) GetTicket(ctx context.Context, key string) (*Ticket, error) {
	if !c.configured() {
		return nil, ErrMissingCredentials
	}

	path := fmt.Sprintf("%s/rest/api/3/issue/%s?expand=changelog,transitions,comments", c.baseURL, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var payload issuePayload
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return payload.toTicket(c.baseURL), nil
}

// SearchTickets runs a JQL query and returns up to maxResults tickets.
func (c *Client) SearchTickets(ctx context.Context, jql string, maxResults int) ([]*Ticket, error) {
	if !c.configured() {
		return nil, ErrMissingCredentials
	}
	if maxResults <= 0 {
		maxResults = 50
	}

	body, err := json.Marshal(map[string]any{
		"jql":        jql,
		"maxResults": maxResults,
		"fields":     []string{"summary", "status", "assignee", "reporter", "created", "updated", "priority"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/rest/api/3/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var payload struct {
		Issues []issuePayload `json:"issues"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}

	tickets := make([]*Ticket, 0, len(payload.Issues))
	for i := range payload.Issues {
		tickets = append(tickets, payload.Issues[i].toTicket(c.baseURL))
	}

	c.logger.Debug("ticket search complete", "jql", jql, "hits", len(tickets))
	return tickets, nil
}

func (c *Client) do(req *http.Request, v any) error {
	req.SetBasicAuth(c.username, c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, req.URL.Path)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
