package relevance

import (
	"fmt"
	"sort"
	"strings"
)

// AdmissionThreshold is the fixed score a candidate must exceed to be
// retained as a match. It is not configurable per query.
const AdmissionThreshold = 0.3

// Field-name fragments that indicate a row carries assignment information.
var assignmentFields = []string{"assigned", "assignee", "owner", "user", "person", "employee"}

// patternRule pairs a predicate on the lowercased query text with the boost
// computation applied when that predicate fires. Rules are evaluated in
// order and exactly one fires per query (first match wins).
type patternRule struct {
	applies func(query string) bool
	boost   func(blob string, terms map[string]bool) float64
}

var patternRules = []patternRule{
	{
		// "assigned to <person>" queries: reward rows with assignment
		// fields, plus a further boost when a qualifying term (a likely
		// name, length > 2) also appears.
		applies: func(q string) bool {
			return strings.Contains(q, "assigned") && strings.Contains(q, "to")
		},
		boost: func(blob string, terms map[string]bool) float64 {
			if !containsAny(blob, assignmentFields) {
				return 0
			}
			boost := 0.5
			for term := range terms {
				if len(term) > 2 && strings.Contains(blob, term) {
					boost += 0.3
					break
				}
			}
			return boost
		},
	},
	{
		applies: func(q string) bool { return strings.Contains(q, "count") },
		boost:   anyTermBoost(0.4),
	},
	{
		applies: func(q string) bool { return strings.Contains(q, "list") },
		boost:   anyTermBoost(0.3),
	},
	{
		applies: func(q string) bool { return strings.Contains(q, "laptop") },
		boost:   literalBoost("laptop", 0.4),
	},
	{
		applies: func(q string) bool { return strings.Contains(q, "apple") },
		boost:   literalBoost("apple", 0.4),
	},
	{
		applies: func(q string) bool { return strings.Contains(q, "office") },
		boost:   literalBoost("office", 0.3),
	},
}

func anyTermBoost(boost float64) func(string, map[string]bool) float64 {
	return func(blob string, terms map[string]bool) float64 {
		for term := range terms {
			if strings.Contains(blob, term) {
				return boost
			}
		}
		return 0
	}
}

func literalBoost(word string, boost float64) func(string, map[string]bool) float64 {
	return func(blob string, _ map[string]bool) float64 {
		if strings.Contains(blob, word) {
			return boost
		}
		return 0
	}
}

// RowText concatenates all non-nil field values of a row into a single
// lowercased searchable blob. Keys are visited in sorted order so the blob
// is deterministic for a given row.
func RowText(row map[string]any) string {
	keys := make([]string, 0, len(row))
	for key := range row {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := row[key]
		if value == nil {
			continue
		}
		parts = append(parts, strings.ToLower(fmt.Sprintf("%v", value)))
	}
	return strings.Join(parts, " ")
}

// ScoreRow computes the relevance of a structured record against the query.
// The score is the sum of keyword coverage, an exact-phrase boost (+0.3), an
// intent-word boost (+0.2), and the pattern boost from the rule table,
// clamped to 1.0.
func ScoreRow(row map[string]any, queryText, intentText string, terms map[string]bool) float64 {
	blob := RowText(row)
	if blob == "" {
		return 0.0
	}

	queryLower := strings.ToLower(queryText)
	intentLower := strings.ToLower(intentText)

	score := keywordCoverage(blob, terms)

	if strings.Contains(blob, queryLower) {
		score += 0.3
	}

	if intentLower != "" {
		for _, word := range strings.Fields(intentLower) {
			if strings.Contains(blob, word) {
				score += 0.2
				break
			}
		}
	}

	for _, rule := range patternRules {
		if rule.applies(queryLower) {
			score += rule.boost(blob, terms)
			break
		}
	}

	return min(1.0, score)
}

// ScoreText computes the relevance of an unstructured text blob: keyword
// coverage plus the exact-phrase boost only.
func ScoreText(text, queryText string, terms map[string]bool) float64 {
	blob := strings.ToLower(text)

	score := keywordCoverage(blob, terms)
	if strings.Contains(blob, strings.ToLower(queryText)) {
		score += 0.3
	}

	return min(1.0, score)
}

func keywordCoverage(blob string, terms map[string]bool) float64 {
	if len(terms) == 0 {
		return 0.0
	}
	found := 0
	for term := range terms {
		if strings.Contains(blob, term) {
			found++
		}
	}
	return float64(found) / float64(len(terms))
}

// MatchReason generates a human-readable explanation of why a row matched.
// Assignment, count, and list queries get special-cased phrasing; otherwise
// the matched terms are listed, falling back to a generic note when no
// explicit signal exists.
func MatchReason(row map[string]any, queryText string, terms map[string]bool) string {
	blob := RowText(row)
	queryLower := strings.ToLower(queryText)

	matched := make([]string, 0, len(terms))
	for term := range terms {
		if strings.Contains(blob, term) {
			matched = append(matched, term)
		}
	}
	sort.Strings(matched)

	if strings.Contains(queryLower, "assigned") && strings.Contains(queryLower, "to") {
		names := make([]string, 0, 2)
		for _, term := range matched {
			if len(term) > 2 {
				names = append(names, term)
				if len(names) == 2 {
					break
				}
			}
		}
		if len(names) > 0 {
			return "Assigned to: " + strings.Join(names, ", ")
		}
		if containsAny(blob, []string{"assigned", "assignee", "owner"}) {
			return "Contains assignment information"
		}
	} else if strings.Contains(queryLower, "count") {
		if len(matched) > 0 {
			return "Countable items: " + strings.Join(firstN(matched, 2), ", ")
		}
	} else if strings.Contains(queryLower, "list") {
		if len(matched) > 0 {
			return "List items: " + strings.Join(firstN(matched, 2), ", ")
		}
	}

	if len(matched) > 0 {
		return "Matches: " + strings.Join(firstN(matched, 3), ", ")
	}
	return "Relevant data found"
}

func containsAny(blob string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(blob, needle) {
			return true
		}
	}
	return false
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
