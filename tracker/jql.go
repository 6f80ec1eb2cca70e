package tracker

import (
	"fmt"
	"strings"
)

// SearchFilter holds the structured search criteria extracted from an
// intent. Empty fields are omitted from the generated query.
type SearchFilter struct {
	Project  string
	Assignee string
	Status   string
}

// JQL renders the filter as a query string, joining present clauses with
// logical AND. An empty filter matches everything.
func (f SearchFilter) JQL() string {
	var clauses []string
	if f.Project != "" {
		clauses = append(clauses, fmt.Sprintf("project = %s", f.Project))
	}
	if f.Assignee != "" {
		clauses = append(clauses, fmt.Sprintf("assignee = %s", f.Assignee))
	}
	if f.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = '%s'", f.Status))
	}

	if len(clauses) == 0 {
		return "project is not EMPTY"
	}
	return strings.Join(clauses, " AND ")
}
