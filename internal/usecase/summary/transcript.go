package summary

import (
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/pkg/ai"
)

// EmotionScore is one (name, score) annotation as sent by the vendor. Scores are
// kept even when non-numeric so the transcript can still render them.
type EmotionScore struct {
	Name    string
	Named   bool
	Score   float64
	Numeric bool
	// Display is the score exactly as it appeared in the payload
	Display string
}

// Turn is one transcript entry
type Turn struct {
	RawRole      string
	Text         string
	EmotionsTop3 []EmotionScore
	// EmotionsAll keeps payload order
	EmotionsAll []EmotionScore
	Timestamp   string
}

// Role is assistant only for a case-insensitive "assistant"; anything else is user
func (t Turn) Role() ai.Role {
	if strings.EqualFold(strings.TrimSpace(t.RawRole), string(ai.RoleAssistant)) {
		return ai.RoleAssistant
	}
	return ai.RoleUser
}

// ParseTurns reads payload.transcript. Entries that are not objects are skipped;
// fields of the wrong type degrade to empty values instead of failing.
func ParseTurns(payload []byte) []Turn {
	transcript := gjson.GetBytes(payload, "transcript")
	if !transcript.IsArray() {
		return nil
	}

	var turns []Turn
	transcript.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		turns = append(turns, parseTurn(item))
		return true
	})
	return turns
}

func parseTurn(item gjson.Result) Turn {
	turn := Turn{
		RawRole:   item.Get("role").String(),
		Text:      item.Get("text").String(),
		Timestamp: item.Get("timestamp").String(),
	}
	if turn.Timestamp == "" {
		turn.Timestamp = item.Get("created_at").String()
	}

	if top := item.Get("emotions_top3"); top.IsArray() {
		top.ForEach(func(_, e gjson.Result) bool {
			if e.IsObject() {
				turn.EmotionsTop3 = append(turn.EmotionsTop3, scoreOf(e.Get("name"), e.Get("score")))
			}
			return true
		})
	}

	if all := item.Get("emotions_all"); all.IsObject() {
		all.ForEach(func(name, score gjson.Result) bool {
			turn.EmotionsAll = append(turn.EmotionsAll, scoreOf(name, score))
			return true
		})
	}

	return turn
}

func scoreOf(name, score gjson.Result) EmotionScore {
	es := EmotionScore{
		Name:    name.String(),
		Named:   name.Exists() && name.Type != gjson.Null,
		Numeric: score.Type == gjson.Number,
	}
	switch score.Type {
	case gjson.Number:
		es.Score = score.Float()
		es.Display = score.Raw
	case gjson.String:
		es.Display = score.Str
	case gjson.Null:
	default:
		es.Display = score.Raw
	}
	return es
}

// NormalizeTranscript turns transcript entries into chat messages. The top-3
// emotions are folded into the content in their original order; nothing is truncated.
func NormalizeTranscript(turns []Turn) []ai.ChatMessage {
	messages := make([]ai.ChatMessage, 0, len(turns))
	for _, t := range turns {
		content := t.Text
		if len(t.EmotionsTop3) > 0 {
			pairs := make([]string, 0, len(t.EmotionsTop3))
			for _, e := range t.EmotionsTop3 {
				pairs = append(pairs, e.Name+"("+e.Display+")")
			}
			content += " | top_emotions: " + strings.Join(pairs, ", ")
		}
		messages = append(messages, ai.ChatMessage{Role: t.Role(), Content: content})
	}
	return messages
}

// prosodyScoresPath locates the per-message emotion scores inside ChatMessage.Meta
const prosodyScoresPath = "models.prosody.scores"

// TurnsFromMessages rebuilds transcript turns from webhook-ingested chat messages.
// The prosody scores become EmotionsAll and their three highest form EmotionsTop3.
func TurnsFromMessages(messages []*entities.ChatMessage) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		turn := Turn{
			RawRole:   m.Role,
			Text:      m.Content,
			Timestamp: m.OccurredAt.UTC().Format(time.RFC3339),
		}

		if scores := gjson.GetBytes(m.Meta, prosodyScoresPath); scores.IsObject() {
			scores.ForEach(func(name, score gjson.Result) bool {
				turn.EmotionsAll = append(turn.EmotionsAll, scoreOf(name, score))
				return true
			})
			turn.EmotionsTop3 = topScores(turn.EmotionsAll, 3)
		}

		turns = append(turns, turn)
	}
	return turns
}

func topScores(all []EmotionScore, n int) []EmotionScore {
	numeric := make([]EmotionScore, 0, len(all))
	for _, e := range all {
		if e.Numeric {
			numeric = append(numeric, e)
		}
	}
	sort.SliceStable(numeric, func(i, j int) bool {
		return numeric[i].Score > numeric[j].Score
	})
	if len(numeric) > n {
		numeric = numeric[:n]
	}
	return numeric
}
