package vcs

import "time"

// PullRequest is one pull request as returned by the host's list and detail
// endpoints.
type PullRequest struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	State     string     `json:"state"`
	User      string     `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`
	HTMLURL   string     `json:"url"`
}

// Review is one review left on a pull request.
type Review struct {
	User        string    `json:"user"`
	State       string    `json:"state"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// MergedPullRequest is a pull request merged within a query window, with the
// users who approved it.
type MergedPullRequest struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	MergedAt  time.Time `json:"merged_at"`
	Approvers []string  `json:"approvers"`
}

// ListOptions filter and page the pull request listing endpoint.
type ListOptions struct {
	State     string // open, closed, all
	Sort      string // created, updated, popularity
	Direction string // asc, desc
	PerPage   int
	Page      int
}
