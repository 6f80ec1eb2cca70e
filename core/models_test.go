package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	a := IDFromContent("laptops assigned to alice")
	b := IDFromContent("laptops assigned to alice")
	c := IDFromContent("laptops assigned to bob")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotZero(t, a)
}

func TestIntentStringParameter(t *testing.T) {
	intent := &Intent{Parameters: map[string]any{
		"person": "Alice",
		"n":      7,
	}}

	v, ok := intent.StringParameter("person")
	assert.True(t, ok)
	assert.Equal(t, "Alice", v)

	_, ok = intent.StringParameter("n")
	assert.False(t, ok)

	_, ok = intent.StringParameter("missing")
	assert.False(t, ok)

	empty := &Intent{}
	_, ok = empty.StringParameter("person")
	assert.False(t, ok)
}

func TestIntentIntParameter(t *testing.T) {
	intent := &Intent{Parameters: map[string]any{
		"n":      7,
		"hours":  float64(48), // JSON decoding produces float64
		"pr":     "123",       // keyword fallback carries digits as strings
		"person": "Alice",
	}}

	for name, want := range map[string]int{"n": 7, "hours": 48, "pr": 123} {
		v, ok := intent.IntParameter(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, v, name)
	}

	_, ok := intent.IntParameter("person")
	assert.False(t, ok)
	_, ok = intent.IntParameter("missing")
	assert.False(t, ok)
}

func TestValidateEvidenceItem(t *testing.T) {
	valid := EvidenceItem{
		Source:          "github",
		SourceType:      SourceTypeGitHub,
		Title:           "PR #42: fix",
		ConfidenceScore: 0.95,
	}
	require.NoError(t, ValidateEvidenceItem(&valid))

	t.Run("nil item", func(t *testing.T) {
		assert.ErrorIs(t, ValidateEvidenceItem(nil), ErrInvalidEvidenceItem)
	})

	t.Run("empty source", func(t *testing.T) {
		item := valid
		item.Source = ""
		assert.ErrorIs(t, ValidateEvidenceItem(&item), ErrEmptySource)
	})

	t.Run("unknown source type", func(t *testing.T) {
		item := valid
		item.SourceType = "wiki"
		assert.ErrorIs(t, ValidateEvidenceItem(&item), ErrInvalidSourceType)
	})

	t.Run("confidence out of range", func(t *testing.T) {
		item := valid
		item.ConfidenceScore = 1.5
		assert.ErrorIs(t, ValidateEvidenceItem(&item), ErrInvalidConfidence)

		item.ConfidenceScore = -0.1
		assert.ErrorIs(t, ValidateEvidenceItem(&item), ErrInvalidConfidence)
	})
}

func TestValidateQueryResult(t *testing.T) {
	valid := QueryResult{
		QueryID: "q-1",
		Query:   "laptops assigned to Alice",
		Evidence: []EvidenceItem{{
			Source:          "documents/assets.csv",
			SourceType:      SourceTypeDocument,
			ConfidenceScore: 0.8,
		}},
		EvidenceCount: 1,
	}
	require.NoError(t, ValidateQueryResult(&valid))

	t.Run("empty query id", func(t *testing.T) {
		r := valid
		r.QueryID = ""
		assert.ErrorIs(t, ValidateQueryResult(&r), ErrEmptyQueryID)
	})

	t.Run("empty query", func(t *testing.T) {
		r := valid
		r.Query = ""
		assert.ErrorIs(t, ValidateQueryResult(&r), ErrEmptyQuery)
	})

	t.Run("count mismatch", func(t *testing.T) {
		r := valid
		r.EvidenceCount = 3
		assert.ErrorIs(t, ValidateQueryResult(&r), ErrEvidenceCountMismatch)
	})

	t.Run("invalid evidence item", func(t *testing.T) {
		r := valid
		r.Evidence = []EvidenceItem{{Source: "", SourceType: SourceTypeJira}}
		assert.ErrorIs(t, ValidateQueryResult(&r), ErrInvalidEvidenceItem)
	})
}
