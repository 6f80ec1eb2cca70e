package ai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/auditkit/evidenced/core"
)

var (
	lastNDaysRE = regexp.MustCompile(`last (\d+) days`)
	hoursRE     = regexp.MustCompile(`(\d+)\s*hours`)
	prNumberRE  = regexp.MustCompile(`pr\s*#?(\d+)`)
)

// FallbackResolve is the deterministic keyword-based intent analysis used
// when no language model is available. It routes the query type by keyword,
// extracts capitalized words as a person parameter and digits as pr_number
// or ticket_key, and flags assigned/count/list patterns. The result carries
// confidence 0.6 and is marked as a fallback.
func FallbackResolve(query string) *core.Intent {
	queryLower := strings.ToLower(query)

	queryType := core.QueryTypeMixed
	switch {
	case containsAnyWord(queryLower, "github", "pull request", "pr", "commit", "repository"):
		queryType = core.QueryTypeGitHub
	case containsAnyWord(queryLower, "jira", "ticket", "issue", "bug", "task"):
		queryType = core.QueryTypeJira
	case containsAnyWord(queryLower, "document", "file", "upload", "csv", "excel", "pdf"):
		queryType = core.QueryTypeDocument
	}

	parameters := make(map[string]any)

	words := strings.Fields(query)
	var names []string
	var numbers []string
	for _, word := range words {
		r, _ := utf8.DecodeRuneInString(word)
		if unicode.IsUpper(r) && len(word) > 2 {
			names = append(names, word)
		}
		if isDigits(word) {
			numbers = append(numbers, word)
		}
	}
	if len(names) > 0 {
		parameters["person"] = strings.Join(names, " ")
	}
	if len(numbers) > 0 {
		switch queryType {
		case core.QueryTypeGitHub:
			parameters["pr_number"] = numbers[0]
		case core.QueryTypeJira:
			parameters["ticket_key"] = "PROJ-" + numbers[0]
		}
	}

	if strings.Contains(queryLower, "assigned") {
		parameters["assigned"] = true
	}
	if strings.Contains(queryLower, "count") {
		parameters["count"] = true
	}
	if strings.Contains(queryLower, "list") {
		parameters["list"] = true
	}

	return &core.Intent{
		QueryType:  queryType,
		Parameters: parameters,
		Text:       "Find evidence related to: " + query,
		Confidence: 0.6,
		Fallback:   true,
	}
}

// FallbackResolveGitHub selects a version-control read operation from query
// keywords alone: merged-in-last-N-days, waiting-for-review-over-N-hours,
// single PR by number, or a generic PR listing when nothing more specific
// matches.
func FallbackResolveGitHub(query string) *core.Intent {
	queryLower := strings.ToLower(query)

	var function string
	parameters := make(map[string]any)

	switch {
	case strings.Contains(queryLower, "merged") && strings.Contains(queryLower, "days"):
		function = core.FunctionMergedPRsLastNDays
		days := 7
		if m := lastNDaysRE.FindStringSubmatch(queryLower); m != nil {
			days = atoi(m[1], days)
		}
		parameters["n"] = days
	case strings.Contains(queryLower, "waiting for review") || strings.Contains(queryLower, "waiting review"):
		function = core.FunctionPRsWaitingForReview
		hours := 24
		if m := hoursRE.FindStringSubmatch(queryLower); m != nil {
			hours = atoi(m[1], hours)
		}
		parameters["hours"] = hours
	case strings.Contains(queryLower, "pr") && strings.Contains(queryLower, "#"):
		function = core.FunctionPRDetails
		if m := prNumberRE.FindStringSubmatch(queryLower); m != nil {
			parameters["pr_number"] = atoi(m[1], 0)
		}
	default:
		function = core.FunctionListPRs
	}

	return &core.Intent{
		QueryType:  core.QueryTypeGitHub,
		Function:   function,
		Parameters: parameters,
		Text:       "GitHub query: " + query,
		Confidence: 0.6,
		Fallback:   true,
	}
}

// FallbackFormat renders evidence as a grouped plain-text summary: items
// grouped by source type in order of first appearance, each listing title,
// source, description, confidence, and a few well-known data fields.
func FallbackFormat(evidence []core.EvidenceItem, query string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Evidence Summary for: %s\n", query)
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	if len(evidence) == 0 {
		sb.WriteString("No evidence found matching your query.\n")
		return sb.String()
	}

	var order []core.SourceType
	bySource := make(map[core.SourceType][]core.EvidenceItem)
	for _, item := range evidence {
		if _, seen := bySource[item.SourceType]; !seen {
			order = append(order, item.SourceType)
		}
		bySource[item.SourceType] = append(bySource[item.SourceType], item)
	}

	for _, sourceType := range order {
		items := bySource[sourceType]
		fmt.Fprintf(&sb, "\n%s EVIDENCE (%d items):\n", strings.ToUpper(string(sourceType)), len(items))
		sb.WriteString(strings.Repeat("-", 30) + "\n")

		for i, item := range items {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, orDefault(item.Title, "Untitled"))
			fmt.Fprintf(&sb, "   Source: %s\n", orDefault(item.Source, "Unknown"))
			fmt.Fprintf(&sb, "   Description: %s\n", orDefault(item.Description, "No description"))
			if item.ConfidenceScore > 0 {
				fmt.Fprintf(&sb, "   Confidence: %.2f\n", item.ConfidenceScore)
			}
			for _, field := range []string{"filename", "total_matches", "avg_relevance"} {
				if value, ok := item.Data[field]; ok {
					fmt.Fprintf(&sb, "   %s: %v\n", fieldTitle(field), value)
				}
			}
			sb.WriteString("\n")
		}
	}

	fmt.Fprintf(&sb, "\nTotal Evidence Items: %d\n", len(evidence))
	fmt.Fprintf(&sb, "Query: %s\n", query)

	return sb.String()
}

// FallbackProvider is a Provider built entirely from the deterministic
// keyword implementations. It is used when no model endpoint is configured.
type FallbackProvider struct{}

var _ Provider = FallbackProvider{}

// NewFallbackProvider creates a provider with no external dependencies.
func NewFallbackProvider() Provider {
	return FallbackProvider{}
}

// IntentResolver returns the keyword-based resolver.
func (FallbackProvider) IntentResolver() IntentResolver { return fallbackResolver{} }

// SummaryFormatter returns the grouped plain-text formatter.
func (FallbackProvider) SummaryFormatter() SummaryFormatter { return fallbackFormatter{} }

// Close is a no-op.
func (FallbackProvider) Close() error { return nil }

type fallbackResolver struct{}

func (fallbackResolver) Resolve(_ context.Context, query string) (*core.Intent, error) {
	return FallbackResolve(query), nil
}

func (fallbackResolver) ResolveGitHub(_ context.Context, query string) (*core.Intent, error) {
	return FallbackResolveGitHub(query), nil
}

type fallbackFormatter struct{}

func (fallbackFormatter) Format(_ context.Context, evidence []core.EvidenceItem, query string) (string, error) {
	return FallbackFormat(evidence, query), nil
}

func containsAnyWord(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func atoi(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func fieldTitle(field string) string {
	parts := strings.Split(field, "_")
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
