package relevance

import "strings"

// Punctuation trimmed from the ends of every token before filtering.
const tokenCutset = `.,!?;:"()[]{}`

// Stop words that add no meaning to a search. Tokens in this set are dropped
// during term extraction.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "will": true,
	"with": true, "would": true, "this": true, "these": true, "they": true,
	"them": true, "their": true, "there": true, "then": true, "than": true,
	"or": true, "but": true, "if": true, "so": true, "up": true, "out": true,
	"off": true, "over": true, "under": true, "again": true, "further": true,
	"once": true, "here": true, "when": true, "where": true, "why": true,
	"how": true, "all": true, "any": true, "both": true, "each": true,
	"few": true, "more": true, "most": true, "other": true, "some": true,
	"such": true, "no": true, "nor": true, "not": true, "only": true,
	"own": true, "same": true, "too": true, "very": true, "can": true,
	"could": true, "should": true, "may": true, "might": true, "must": true,
	"shall": true, "do": true, "does": true, "did": true, "have": true,
	"had": true, "having": true, "being": true, "been": true,
}

// ExtractTerms derives the set of meaningful search terms from the query
// text, the resolver's intent restatement, and every string-valued intent
// parameter. Tokens are lowercased, trimmed of surrounding punctuation, and
// dropped when length <= 1 or listed as a stop word.
//
// A few fixed pattern augmentations are applied afterwards: queries that
// contain both "list" and "assigned" gain the literal terms "assigned" and
// "asset", and the literals "count" and "find" are added whenever they appear
// in the query. This keyword set is the sole signal used by the scorer; there
// is no stemming or synonym expansion.
func ExtractTerms(queryText, intentText string, parameters map[string]any) map[string]bool {
	terms := make(map[string]bool)

	addTokens(terms, queryText)
	addTokens(terms, intentText)
	for _, value := range parameters {
		if s, ok := value.(string); ok {
			addTokens(terms, s)
		}
	}

	queryLower := strings.ToLower(queryText)
	if strings.Contains(queryLower, "list") && strings.Contains(queryLower, "assigned") {
		terms["assigned"] = true
		terms["asset"] = true
	}
	if strings.Contains(queryLower, "count") {
		terms["count"] = true
	}
	if strings.Contains(queryLower, "find") {
		terms["find"] = true
	}

	return terms
}

func addTokens(terms map[string]bool, text string) {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		cleaned := strings.Trim(word, tokenCutset)
		if len(cleaned) > 1 && !stopWords[cleaned] {
			terms[cleaned] = true
		}
	}
}
