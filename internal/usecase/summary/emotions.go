package summary

import (
	"encoding/json"
	"math"
	"strings"
)

// EmotionStat is the occurrence count, score sum and rounded mean of one emotion
type EmotionStat struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
}

// EmotionAggregate maps an emotion name to its stats over the user's turns
type EmotionAggregate map[string]EmotionStat

// AggregateEmotions folds the numeric emotion scores of user turns. A turn's full
// score map wins over its top-3 list when the map is non-empty.
func AggregateEmotions(turns []Turn) EmotionAggregate {
	agg := EmotionAggregate{}
	for _, t := range turns {
		if !strings.EqualFold(strings.TrimSpace(t.RawRole), "user") {
			continue
		}

		source := t.EmotionsTop3
		if len(t.EmotionsAll) > 0 {
			source = t.EmotionsAll
		}
		for _, e := range source {
			if !e.Named || !e.Numeric {
				continue
			}
			stat := agg[e.Name]
			stat.Count++
			stat.Sum += e.Score
			agg[e.Name] = stat
		}
	}

	for name, stat := range agg {
		if stat.Count > 0 {
			stat.Mean = round4(stat.Sum / float64(stat.Count))
		}
		agg[name] = stat
	}
	return agg
}

// PromptJSON renders {"user_emotions": ...} pretty-printed with sorted keys
func (a EmotionAggregate) PromptJSON() string {
	if a == nil {
		a = EmotionAggregate{}
	}
	b, err := json.MarshalIndent(map[string]EmotionAggregate{"user_emotions": a}, "", "  ")
	if err != nil {
		return `{"user_emotions": {}}`
	}
	return string(b)
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
