package summary

import (
	"strings"

	"github.com/peergrouptools/peergroup-api/pkg/ai"
)

// BucketKeys are the nine classification buckets, in prompt order
var BucketKeys = []string{
	"best_personal", "worst_personal", "impact_personal",
	"best_work", "worst_work", "impact_work",
	"best_family", "worst_family", "impact_family",
}

const systemPrompt = `You are a careful, structured summarizer. Read the conversation messages (assistant and user turns).
Classify user content into the following buckets (use EXACT keys):

1. best_personal
2. worst_personal
3. impact_personal
4. best_work
5. worst_work
6. impact_work
7. best_family
8. worst_family
9. impact_family

Rules:
- Place each relevant user statement in the correct bucket's ` + "`items`" + ` (as short bullet strings).
- If a bucket has nothing relevant, leave its ` + "`items`" + ` empty.
- Keep items short (1–2 lines) and faithful to the user's words (light paraphrase okay).
- For each of the three "impact" buckets, write a one-sentence ` + "`impact_summary`" + ` (or empty string if insufficient info).
- Create ` + "`overall_session_summary`" + `: 3–6 sentences capturing key themes and changes over time (if any).
- Create ` + "`emotions_summary.user_top3`" + `: pick the top three emotions that characterize the USER across the session; if scores are provided, prefer higher-scoring and more frequent emotions. For each, include ` + "`name`, `mean_score`" + ` (0–1, float), and ` + "`occurrences`" + ` (int). If you can't estimate scores, set them to null.
- Create ` + "`emotions_summary.notes`" + `: 1–3 sentences explaining the emotional pattern (e.g., spikes, contrast with assistant tone, etc.).

Output valid JSON only, matching the schema exactly. No extra text or markdown.
`

// textOnlySuffix is appended to the system prompt for the free-text tier
const textOnlySuffix = "\nReturn ONLY JSON. No markdown, no commentary."

const outputSkeleton = `{
  "buckets": {
    "best_personal":   { "items": [], "impact_summary": "" },
    "worst_personal":  { "items": [], "impact_summary": "" },
    "impact_personal": { "items": [], "impact_summary": "" },
    "best_work":       { "items": [], "impact_summary": "" },
    "worst_work":      { "items": [], "impact_summary": "" },
    "impact_work":     { "items": [], "impact_summary": "" },
    "best_family":     { "items": [], "impact_summary": "" },
    "worst_family":    { "items": [], "impact_summary": "" },
    "impact_family":   { "items": [], "impact_summary": "" }
  },
  "overall_session_summary": "",
  "emotions_summary": {
    "user_top3": [ { "name": "", "mean_score": null, "occurrences": 0 } ],
    "notes": ""
  }
}`

// Prompt is everything sent to the generator for one summarization
type Prompt struct {
	System string
	User   string
	Turns  []ai.ChatMessage
}

// BuildPrompt derives the instructions and the normalized conversation from turns
func BuildPrompt(turns []Turn) Prompt {
	var b strings.Builder
	b.WriteString("Produce STRICT JSON with these keys:\n\n")
	b.WriteString(outputSkeleton)
	b.WriteString("\n\nFocus ONLY on USER turns for emotions. If no numeric scores are present, set mean_score to null.\n\n")
	b.WriteString("(Context – precomputed user emotion stats for reference):\n")
	b.WriteString(AggregateEmotions(turns).PromptJSON())

	return Prompt{
		System: systemPrompt,
		User:   b.String(),
		Turns:  NormalizeTranscript(turns),
	}
}

// Messages renders [system, user instruction, turns...]. suffix is appended to the
// system instruction verbatim.
func (p Prompt) Messages(suffix string) []ai.ChatMessage {
	messages := make([]ai.ChatMessage, 0, len(p.Turns)+2)
	messages = append(messages,
		ai.ChatMessage{Role: ai.RoleSystem, Content: p.System + suffix},
		ai.ChatMessage{Role: ai.RoleUser, Content: p.User},
	)
	return append(messages, p.Turns...)
}
