package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/auditkit/evidenced/core"
)

// Finding is one evidence item restated for a report.
type Finding struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Source      string         `json:"source"`
	Confidence  float64        `json:"confidence"`
	Data        map[string]any `json:"data"`
}

// Content is the source-neutral report body derived from a query result.
// Both the text and JSON renderings are produced from it.
type Content struct {
	Title         string
	Query         string
	Summary       string
	Findings      []Finding
	Sources       []string
	EvidenceCount int
	CreatedAt     time.Time
	GeneratedAt   time.Time
}

// sourceLabels maps evidence source types to the labels reports use. The
// document type is pluralized; iteration follows this fixed order so the
// sources list is deterministic.
var sourceLabels = []struct {
	sourceType core.SourceType
	label      string
}{
	{core.SourceTypeGitHub, "github"},
	{core.SourceTypeJira, "jira"},
	{core.SourceTypeDocument, "documents"},
}

// BuildContent derives report content from a stored query result.
func BuildContent(result *core.QueryResult) *Content {
	seen := make(map[core.SourceType]bool)
	findings := make([]Finding, 0, len(result.Evidence))

	for _, item := range result.Evidence {
		seen[item.SourceType] = true
		findings = append(findings, Finding{
			Title:       item.Title,
			Description: item.Description,
			Source:      item.Source,
			Confidence:  item.ConfidenceScore,
			Data:        item.Data,
		})
	}

	var sources []string
	for _, sl := range sourceLabels {
		if seen[sl.sourceType] {
			sources = append(sources, sl.label)
		}
	}

	return &Content{
		Title:         fmt.Sprintf("Evidence Report: %s", truncateQuery(result.Query)),
		Query:         result.Query,
		Summary:       orDefault(result.Summary, "No summary available"),
		Findings:      findings,
		Sources:       sources,
		EvidenceCount: len(result.Evidence),
		CreatedAt:     result.CreatedAt,
		GeneratedAt:   time.Now().UTC(),
	}
}

// RenderText renders the report as plain text.
func RenderText(content *Content) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	sep := strings.Repeat("-", 40)

	section := func(lines ...string) {
		for _, line := range lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	section(rule, content.Title, rule, "")
	section("QUERY:", sep, content.Query, "")
	section("SUMMARY:", sep, content.Summary, "")
	section("KEY FINDINGS:", sep)

	if len(content.Findings) > 0 {
		for i, f := range content.Findings {
			section(
				fmt.Sprintf("%d. %s", i+1, f.Title),
				fmt.Sprintf("   Source: %s", f.Source),
				fmt.Sprintf("   Description: %s", f.Description),
				fmt.Sprintf("   Confidence: %.2f", f.Confidence),
				"",
			)
		}
	} else {
		section("No findings available.", "")
	}

	section(
		"REPORT METADATA:",
		sep,
		fmt.Sprintf("Generated on: %s", content.GeneratedAt.Format(time.RFC3339)),
		fmt.Sprintf("Sources: %s", strings.Join(content.Sources, ", ")),
		fmt.Sprintf("Evidence Count: %d", content.EvidenceCount),
		"",
		rule,
	)

	return b.String()
}

type reportMetadata struct {
	Title         string    `json:"title"`
	Query         string    `json:"query"`
	GeneratedAt   time.Time `json:"generated_at"`
	CreatedAt     time.Time `json:"created_at"`
	Sources       []string  `json:"sources"`
	EvidenceCount int       `json:"evidence_count"`
}

type exportInfo struct {
	Format      string `json:"format"`
	Version     string `json:"version"`
	GeneratedBy string `json:"generated_by"`
}

type jsonReport struct {
	ReportMetadata reportMetadata `json:"report_metadata"`
	Summary        string         `json:"summary"`
	Findings       []Finding      `json:"findings"`
	ExportInfo     exportInfo     `json:"export_info"`
}

// RenderJSON renders the report as an indented structured JSON document.
func RenderJSON(content *Content) ([]byte, error) {
	doc := jsonReport{
		ReportMetadata: reportMetadata{
			Title:         content.Title,
			Query:         content.Query,
			GeneratedAt:   content.GeneratedAt,
			CreatedAt:     content.CreatedAt,
			Sources:       content.Sources,
			EvidenceCount: content.EvidenceCount,
		},
		Summary:  content.Summary,
		Findings: content.Findings,
		ExportInfo: exportInfo{
			Format:      "JSON",
			Version:     "1.0",
			GeneratedBy: "Evidence-on-Demand Bot",
		},
	}
	return json.MarshalIndent(doc, "", "  ")
}

func truncateQuery(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
