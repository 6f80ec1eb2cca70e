package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTerms(t *testing.T) {
	t.Run("drops stop words and short tokens", func(t *testing.T) {
		terms := ExtractTerms("the laptops in a box", "", nil)
		assert.Equal(t, map[string]bool{"laptops": true, "box": true}, terms)
	})

	t.Run("trims punctuation", func(t *testing.T) {
		terms := ExtractTerms(`"laptops", (assigned)!`, "", nil)
		assert.True(t, terms["laptops"])
		assert.True(t, terms["assigned"])
	})

	t.Run("includes intent text and string parameters", func(t *testing.T) {
		terms := ExtractTerms("laptops", "find hardware records", map[string]any{
			"person": "Alice",
			"n":      7,
		})
		assert.True(t, terms["laptops"])
		assert.True(t, terms["hardware"])
		assert.True(t, terms["records"])
		assert.True(t, terms["alice"])
		assert.False(t, terms["7"])
	})

	t.Run("list assigned augmentation", func(t *testing.T) {
		terms := ExtractTerms("list everything assigned so far", "", nil)
		assert.True(t, terms["assigned"])
		assert.True(t, terms["asset"])
	})

	t.Run("count and find augmentations", func(t *testing.T) {
		terms := ExtractTerms("count them", "", nil)
		assert.True(t, terms["count"])

		terms = ExtractTerms("find laptops", "", nil)
		assert.True(t, terms["find"])
	})
}

func TestScoreRowAssignmentQuery(t *testing.T) {
	query := "laptops assigned to Alice"
	terms := ExtractTerms(query, "", nil)

	row := map[string]any{
		"asset":  "MacBook Laptop",
		"status": "assigned",
		"user":   "alice johnson",
	}

	// Coverage 2/3 plus the assignment pattern boost saturates the score.
	score := ScoreRow(row, query, "", terms)
	assert.Equal(t, 1.0, score)
}

func TestScoreRowNoSignal(t *testing.T) {
	query := "laptops assigned to Alice"
	terms := ExtractTerms(query, "", nil)

	row := map[string]any{
		"asset":  "Dell Monitor",
		"status": "in stock",
	}

	score := ScoreRow(row, query, "", terms)
	assert.LessOrEqual(t, score, AdmissionThreshold)
}

func TestScoreRowCoverageAloneAdmits(t *testing.T) {
	query := "laptops assigned to Alice"
	terms := ExtractTerms(query, "", nil)

	// The row values carry no assignment word, so the pattern rule fires but
	// contributes nothing; one of three terms matching is just enough.
	assigned := map[string]any{"asset": "Laptop-12", "assignee": "Alice Smith"}
	score := ScoreRow(assigned, query, "", terms)
	assert.InDelta(t, 1.0/3.0, score, 1e-9)
	assert.Greater(t, score, AdmissionThreshold)

	unrelated := map[string]any{"asset": "Monitor-3", "assignee": "Bob"}
	assert.Equal(t, 0.0, ScoreRow(unrelated, query, "", terms))
}

func TestScoreRowPhraseAndIntentBoosts(t *testing.T) {
	query := "macbook"
	terms := ExtractTerms(query, "", nil)

	row := map[string]any{"note": "macbook pro returned by bob"}

	// Coverage 1.0 is already the cap without boosts.
	assert.Equal(t, 1.0, ScoreRow(row, query, "", terms))

	// A weaker row demonstrates the intent boost.
	partial := map[string]any{"note": "returned by bob"}
	base := ScoreRow(partial, query, "", terms)
	boosted := ScoreRow(partial, query, "hardware returned recently", terms)
	assert.InDelta(t, 0.2, boosted-base, 1e-9)
}

func TestScoreRowEmptyRow(t *testing.T) {
	terms := ExtractTerms("anything", "", nil)
	assert.Equal(t, 0.0, ScoreRow(map[string]any{}, "anything", "", terms))
	assert.Equal(t, 0.0, ScoreRow(map[string]any{"a": nil}, "anything", "", terms))
}

func TestScoreRowFirstRuleWins(t *testing.T) {
	// Query matches both the assignment rule and the laptop rule; only the
	// assignment rule may fire.
	query := "laptops assigned to nobody"
	terms := map[string]bool{}

	row := map[string]any{"device": "laptop"}
	// No assignment fields in the row, so the assignment rule contributes
	// nothing and the laptop rule must not add its 0.4.
	assert.Equal(t, 0.0, ScoreRow(row, query, "", terms))
}

func TestScoreText(t *testing.T) {
	query := "security incident"
	terms := ExtractTerms(query, "", nil)

	text := "A security incident was reported on March 3."
	score := ScoreText(text, query, terms)
	// Full coverage plus the exact phrase boost, clamped.
	assert.Equal(t, 1.0, score)

	partial := ScoreText("the security team met", query, terms)
	assert.InDelta(t, 0.5, partial, 1e-9)
}

func TestRowTextDeterministic(t *testing.T) {
	row := map[string]any{"b": "Two", "a": "One", "c": nil}
	assert.Equal(t, "one two", RowText(row))
}

func TestMatchReason(t *testing.T) {
	terms := ExtractTerms("laptops assigned to Alice", "", nil)
	row := map[string]any{"user": "alice", "asset": "laptop"}

	t.Run("assignment phrasing", func(t *testing.T) {
		reason := MatchReason(row, "laptops assigned to Alice", terms)
		assert.Equal(t, "Assigned to: alice", reason)
	})

	t.Run("assignment info without name", func(t *testing.T) {
		reason := MatchReason(map[string]any{"note": "owner unknown"}, "assigned to whom", map[string]bool{})
		assert.Equal(t, "Contains assignment information", reason)
	})

	t.Run("count phrasing", func(t *testing.T) {
		reason := MatchReason(row, "count laptops", map[string]bool{"laptop": true})
		assert.Equal(t, "Countable items: laptop", reason)
	})

	t.Run("list phrasing", func(t *testing.T) {
		reason := MatchReason(row, "list laptops", map[string]bool{"laptop": true})
		assert.Equal(t, "List items: laptop", reason)
	})

	t.Run("generic match listing", func(t *testing.T) {
		reason := MatchReason(row, "laptops for alice", map[string]bool{"laptop": true, "alice": true})
		assert.Equal(t, "Matches: alice, laptop", reason)
	})

	t.Run("fallback", func(t *testing.T) {
		reason := MatchReason(map[string]any{"x": "y"}, "unrelated", map[string]bool{})
		assert.Equal(t, "Relevant data found", reason)
	})
}
