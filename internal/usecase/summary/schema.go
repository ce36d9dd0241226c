package summary

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaName is the name the schema is registered under with the provider
const SchemaName = "BucketedSessionSummary"

// Schema returns the closed schema of a bucketed summary. Every object level
// forbids additional properties and requires all of its keys.
func Schema() map[string]any {
	buckets := make(map[string]any, len(BucketKeys))
	for _, k := range BucketKeys {
		buckets[k] = closedObject(map[string]any{
			"items":          map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"impact_summary": map[string]any{"type": "string"},
		}, "items", "impact_summary")
	}

	emotion := closedObject(map[string]any{
		"name":        map[string]any{"type": "string"},
		"mean_score":  map[string]any{"type": []any{"number", "null"}},
		"occurrences": map[string]any{"type": "integer"},
	}, "name", "mean_score", "occurrences")

	return closedObject(map[string]any{
		"buckets":                 closedObject(buckets, BucketKeys...),
		"overall_session_summary": map[string]any{"type": "string"},
		"emotions_summary": closedObject(map[string]any{
			"user_top3": map[string]any{"type": "array", "items": emotion},
			"notes":     map[string]any{"type": "string"},
		}, "user_top3", "notes"),
	}, "buckets", "overall_session_summary", "emotions_summary")
}

func closedObject(properties map[string]any, required ...string) map[string]any {
	req := make([]any, len(required))
	for i, r := range required {
		req[i] = r
	}
	return map[string]any{
		"type":                 "object",
		"required":             req,
		"additionalProperties": false,
		"properties":           properties,
	}
}

var compiledSchema *gojsonschema.Schema

func init() {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(Schema()))
	if err != nil {
		panic(fmt.Sprintf("summary schema: %v", err))
	}
	compiledSchema = s
}

// ValidateDocument checks doc (raw JSON) against Schema. The returned error lists
// every violation.
func ValidateDocument(doc []byte) error {
	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validate summary: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("summary does not match schema: %s", strings.Join(msgs, "; "))
}
