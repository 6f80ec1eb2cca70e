package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditkit/evidenced/core"
)

func TestRepairJSON(t *testing.T) {
	t.Run("unquoted key", func(t *testing.T) {
		assert.Equal(t, `{"query_type": "jira"}`, repairJSON(`{query_type": "jira"}`))
	})

	t.Run("unquoted key after comma", func(t *testing.T) {
		assert.Equal(t, `{"a": 1, "b": 2}`, repairJSON(`{"a": 1, b": 2}`))
	})

	t.Run("trailing comma", func(t *testing.T) {
		assert.Equal(t, `{"a": [1, 2]}`, repairJSON(`{"a": [1, 2,],}`))
	})

	t.Run("valid json untouched", func(t *testing.T) {
		in := `{"query_type": "github", "parameters": {"n": 7}}`
		assert.Equal(t, in, repairJSON(in))
	})
}

func TestUnmarshalModelJSON(t *testing.T) {
	t.Run("fenced output", func(t *testing.T) {
		var intent core.Intent
		err := unmarshalModelJSON("```json\n{\"query_type\": \"document\", \"confidence\": 0.9}\n```", &intent)
		require.NoError(t, err)
		assert.Equal(t, core.QueryTypeDocument, intent.QueryType)
		assert.Equal(t, 0.9, intent.Confidence)
	})

	t.Run("repairable defects", func(t *testing.T) {
		var intent core.Intent
		err := unmarshalModelJSON(`{query_type": "jira", "parameters": {"project": "SEC",},}`, &intent)
		require.NoError(t, err)
		assert.Equal(t, core.QueryTypeJira, intent.QueryType)
		project, _ := intent.StringParameter("project")
		assert.Equal(t, "SEC", project)
	})

	t.Run("unrecoverable output fails", func(t *testing.T) {
		var intent core.Intent
		assert.Error(t, unmarshalModelJSON("I could not find anything.", &intent))
	})
}
