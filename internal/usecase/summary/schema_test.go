package summary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSummary() map[string]any {
	buckets := map[string]any{}
	for _, k := range BucketKeys {
		buckets[k] = map[string]any{"items": []any{}, "impact_summary": ""}
	}
	return map[string]any{
		"buckets":                 buckets,
		"overall_session_summary": "A calm session.",
		"emotions_summary": map[string]any{
			"user_top3": []any{map[string]any{"name": "Joy", "mean_score": nil, "occurrences": 2}},
			"notes":     "",
		},
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestValidateDocument(t *testing.T) {
	assert.NoError(t, ValidateDocument(mustJSON(t, validSummary())))
}

func TestValidateDocumentRejectsMissingBucket(t *testing.T) {
	doc := validSummary()
	delete(doc["buckets"].(map[string]any), "impact_family")
	assert.ErrorContains(t, ValidateDocument(mustJSON(t, doc)), "impact_family")
}

func TestValidateDocumentRejectsExtraKeys(t *testing.T) {
	doc := validSummary()
	doc["extra"] = true
	assert.Error(t, ValidateDocument(mustJSON(t, doc)))

	doc = validSummary()
	doc["buckets"].(map[string]any)["best_work"] = map[string]any{"items": []any{}, "impact_summary": "", "score": 1}
	assert.Error(t, ValidateDocument(mustJSON(t, doc)))
}

func TestValidateDocumentTypes(t *testing.T) {
	doc := validSummary()
	doc["emotions_summary"].(map[string]any)["user_top3"] = []any{map[string]any{"name": "Joy", "mean_score": 0.4, "occurrences": 1.5}}
	assert.Error(t, ValidateDocument(mustJSON(t, doc)))
}

func TestSchemaShape(t *testing.T) {
	s := Schema()
	assert.Equal(t, false, s["additionalProperties"])
	props := s["properties"].(map[string]any)
	buckets := props["buckets"].(map[string]any)
	assert.Len(t, buckets["required"], 9)
	assert.Len(t, buckets["properties"], 9)
}
