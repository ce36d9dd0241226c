package summary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateEmotions(t *testing.T) {
	turns := ParseTurns([]byte(`{"transcript": [
		{"role": "user", "emotions_top3": [{"name": "Joy", "score": 0.5}, {"name": "Calmness", "score": 0.2}]},
		{"role": "User", "emotions_top3": [{"name": "Joy", "score": 0.8}, {"score": 0.9}, {"name": null, "score": 0.9}, {"name": "Doubt", "score": "n/a"}]},
		{"role": "assistant", "emotions_top3": [{"name": "Joy", "score": 1.0}]},
		{"role": "user", "emotions_all": {"Joy": 0.3333333, "Anxiety": 0.1}, "emotions_top3": [{"name": "Ignored", "score": 1}]},
		{"role": "user", "emotions_all": {}, "emotions_top3": [{"name": "Anxiety", "score": 0.3}]}
	]}`))

	agg := AggregateEmotions(turns)

	require.Contains(t, agg, "Joy")
	assert.Equal(t, 3, agg["Joy"].Count)
	assert.InDelta(t, 1.6333333, agg["Joy"].Sum, 1e-9)
	assert.Equal(t, 0.5444, agg["Joy"].Mean)

	assert.Equal(t, 2, agg["Anxiety"].Count)
	assert.Equal(t, 0.2, agg["Anxiety"].Mean)

	assert.Equal(t, 1, agg["Calmness"].Count)
	assert.NotContains(t, agg, "Ignored")
	assert.NotContains(t, agg, "Doubt")
	assert.NotContains(t, agg, "")
}

func TestAggregateEmotionsEmpty(t *testing.T) {
	agg := AggregateEmotions(nil)
	assert.Empty(t, agg)
	assert.JSONEq(t, `{"user_emotions": {}}`, agg.PromptJSON())
}

func TestAggregateEmotionsAssistantOnly(t *testing.T) {
	turns := ParseTurns([]byte(`{"transcript": [
		{"role": "assistant", "text": "How was your week?", "emotions_all": {"Joy": 0.7, "Interest": 0.4}},
		{"role": "Assistant", "text": "Tell me more.", "emotions_top3": [{"name": "Calmness", "score": 0.6}]}
	]}`))
	require.Len(t, turns, 2)

	agg := AggregateEmotions(turns)
	assert.Empty(t, agg)
	assert.JSONEq(t, `{"user_emotions": {}}`, agg.PromptJSON())
}

func TestPromptJSON(t *testing.T) {
	agg := EmotionAggregate{"Joy": {Count: 2, Sum: 1.0, Mean: 0.5}}

	var decoded map[string]map[string]EmotionStat
	require.NoError(t, json.Unmarshal([]byte(agg.PromptJSON()), &decoded))
	assert.Equal(t, EmotionStat{Count: 2, Sum: 1.0, Mean: 0.5}, decoded["user_emotions"]["Joy"])
	assert.Contains(t, agg.PromptJSON(), "\n  \"user_emotions\"")
}
