package vcs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// Client is a read-only client for the version-control host's REST API.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	owner      string
	repo       string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL overrides the API base URL, e.g. for an enterprise host or a
// test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if baseURL == "" {
			return fmt.Errorf("%w: empty base URL", ErrNotConfigured)
		}
		c.baseURL = baseURL
		return nil
	}
}

// WithToken sets the API token. Unauthenticated access works for public
// repositories, at a lower rate limit.
func WithToken(token string) Option {
	return func(c *Client) error {
		c.token = token
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client.
// Default is http.DefaultClient with a 30 second timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient == nil {
			return fmt.Errorf("%w: nil http client", ErrNotConfigured)
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClient creates a client for one repository.
func NewClient(owner, repo string, opts ...Option) (*Client, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("%w: owner and repo are required", ErrNotConfigured)
	}

	c := &Client{
		baseURL:    defaultBaseURL,
		owner:      owner,
		repo:       repo,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default().With("component", "vcs-client"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// prPayload matches the host's wire shape, where user is a nested object.
type prPayload struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	User   struct {
		Login string `json:"login"`
	} `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	MergedAt  *time.Time `json:"merged_at"`
	HTMLURL   string     `json:"html_url"`
}

func (p *prPayload) toPullRequest() PullRequest {
	return PullRequest{
		Number:    p.Number,
		Title:     p.Title,
		State:     p.State,
		User:      p.User.Login,
		CreatedAt: p.CreatedAt,
		MergedAt:  p.MergedAt,
		HTMLURL:   p.HTMLURL,
	}
}

type reviewPayload struct {
	User struct {
		Login string `json:"login"`
	} `json:"user"`
	State       string    `json:"state"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ListPullRequests lists pull requests, filterable by state, sort order, and
// page.
func (c *Client) ListPullRequests(ctx context.Context, opts ListOptions) ([]PullRequest, error) {
	if opts.State == "" {
		opts.State = "open"
	}
	if opts.Sort == "" {
		opts.Sort = "created"
	}
	if opts.Direction == "" {
		opts.Direction = "desc"
	}
	if opts.PerPage == 0 {
		opts.PerPage = 100
	}
	if opts.Page == 0 {
		opts.Page = 1
	}

	query := url.Values{}
	query.Set("state", opts.State)
	query.Set("sort", opts.Sort)
	query.Set("direction", opts.Direction)
	query.Set("per_page", strconv.Itoa(opts.PerPage))
	query.Set("page", strconv.Itoa(opts.Page))

	path := fmt.Sprintf("/repos/%s/%s/pulls?%s", c.owner, c.repo, query.Encode())

	var payloads []prPayload
	if err := c.get(ctx, path, &payloads); err != nil {
		return nil, err
	}

	prs := make([]PullRequest, 0, len(payloads))
	for i := range payloads {
		prs = append(prs, payloads[i].toPullRequest())
	}
	return prs, nil
}

// PullRequestDetails fetches one pull request by number.
func (c *Client) PullRequestDetails(ctx context.Context, number int) (*PullRequest, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d", c.owner, c.repo, number)

	var payload prPayload
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}

	pr := payload.toPullRequest()
	return &pr, nil
}

// PullRequestReviews fetches the reviews left on one pull request.
func (c *Client) PullRequestReviews(ctx context.Context, number int) ([]Review, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/reviews", c.owner, c.repo, number)

	var payloads []reviewPayload
	if err := c.get(ctx, path, &payloads); err != nil {
		return nil, err
	}

	reviews := make([]Review, 0, len(payloads))
	for _, p := range payloads {
		reviews = append(reviews, Review{
			User:        p.User.Login,
			State:       p.State,
			SubmittedAt: p.SubmittedAt,
		})
	}
	return reviews, nil
}

// MergedPullRequests returns pull requests merged within the last n days,
// with the set of users who approved each. Pages through recently updated
// closed pull requests and stops at the first one merged before the window.
func (c *Client) MergedPullRequests(ctx context.Context, days int) ([]MergedPullRequest, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	var merged []MergedPullRequest
	for page := 1; ; page++ {
		prs, err := c.ListPullRequests(ctx, ListOptions{
			State: "closed", Sort: "updated", Direction: "desc", Page: page,
		})
		if err != nil {
			return nil, err
		}
		if len(prs) == 0 {
			break
		}

		sawOlder := false
		for _, pr := range prs {
			if pr.MergedAt == nil {
				continue
			}
			if pr.MergedAt.Before(since) {
				sawOlder = true
				break
			}

			reviews, err := c.PullRequestReviews(ctx, pr.Number)
			if err != nil {
				return nil, err
			}
			approverSet := make(map[string]bool)
			for _, review := range reviews {
				if review.State == "APPROVED" {
					approverSet[review.User] = true
				}
			}
			approvers := make([]string, 0, len(approverSet))
			for user := range approverSet {
				approvers = append(approvers, user)
			}

			merged = append(merged, MergedPullRequest{
				Number:    pr.Number,
				Title:     pr.Title,
				MergedAt:  *pr.MergedAt,
				Approvers: approvers,
			})
		}
		if sawOlder {
			break
		}
	}

	return merged, nil
}

// WaitingForReview returns open pull requests created more than the given
// number of hours ago that have received no reviews.
func (c *Client) WaitingForReview(ctx context.Context, hours int) ([]PullRequest, error) {
	if hours <= 0 {
		hours = 24
	}
	threshold := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)

	var waiting []PullRequest
	for page := 1; ; page++ {
		prs, err := c.ListPullRequests(ctx, ListOptions{
			State: "open", Sort: "created", Direction: "asc", Page: page,
		})
		if err != nil {
			return nil, err
		}
		if len(prs) == 0 {
			break
		}

		for _, pr := range prs {
			if pr.CreatedAt.After(threshold) {
				continue
			}
			reviews, err := c.PullRequestReviews(ctx, pr.Number)
			if err != nil {
				return nil, err
			}
			if len(reviews) == 0 {
				waiting = append(waiting, pr)
			}
		}
	}

	c.logger.Debug("waiting pull requests", "count", len(waiting), "hours", hours)
	return waiting, nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
