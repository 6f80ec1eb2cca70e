package tracker

import "time"

// Ticket is one issue-tracker ticket in normalized form.
type Ticket struct {
	Key             string               `json:"key"`
	Summary         string               `json:"summary"`
	Description     string               `json:"description,omitempty"`
	Status          string               `json:"status"`
	Assignee        string               `json:"assignee,omitempty"`
	Reporter        string               `json:"reporter,omitempty"`
	Priority        string               `json:"priority,omitempty"`
	Created         time.Time            `json:"created"`
	Updated         time.Time            `json:"updated"`
	URL             string               `json:"url,omitempty"`
	WorkflowHistory []WorkflowTransition `json:"workflow_history,omitempty"`
	Comments        []Comment            `json:"comments,omitempty"`
}

// WorkflowTransition is one status change extracted from a ticket's
// changelog.
type WorkflowTransition struct {
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  string    `json:"changed_by"`
	ChangedAt  time.Time `json:"changed_at"`
}

// Comment is one comment left on a ticket.
type Comment struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}
