package summary

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecaseErrors "github.com/peergrouptools/peergroup-api/internal/usecase/errors"
	"github.com/peergrouptools/peergroup-api/pkg/ai"
)

type reply struct {
	text string
	err  error
}

// fakeGenerator answers each call with the next scripted reply
type fakeGenerator struct {
	mu       sync.Mutex
	replies  []reply
	requests []ai.GenerationRequest
}

func (g *fakeGenerator) Generate(ctx context.Context, req ai.GenerationRequest) (*ai.Generation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.requests = append(g.requests, req)
	if len(g.replies) == 0 {
		return nil, errors.New("no scripted reply")
	}
	r := g.replies[0]
	g.replies = g.replies[1:]
	if r.err != nil {
		return nil, r.err
	}
	return &ai.Generation{Text: r.text, Model: "gpt-4.1-mini-2025-04-14"}, nil
}

func testPrompt() Prompt {
	return BuildPrompt(ParseTurns([]byte(`{"transcript": [{"role": "user", "text": "hello", "emotions_top3": [{"name": "Joy", "score": 0.5}]}]}`)))
}

func TestPipelineSchemaTierWins(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{{text: `{"overall_session_summary": "ok"}`}}}
	p := NewPipeline(gen, "gpt-4.1-mini", 1200, nil)

	res, err := p.Run(context.Background(), testPrompt())
	require.NoError(t, err)
	assert.Equal(t, TierJSONSchema, res.Tier)
	assert.Equal(t, "gpt-4.1-mini-2025-04-14", res.Model)
	assert.JSONEq(t, `{"overall_session_summary": "ok"}`, string(res.Document))

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Equal(t, ai.FormatJSONSchema, req.Format)
	require.NotNil(t, req.Schema)
	assert.Equal(t, "BucketedSessionSummary", req.Schema.Name)
	assert.True(t, req.Schema.Strict)
	assert.Equal(t, 1200, req.MaxTokens)
	assert.Zero(t, req.Temperature)

	require.Len(t, req.Messages, 3)
	assert.Equal(t, ai.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, ai.RoleUser, req.Messages[1].Role)
	assert.True(t, strings.HasPrefix(req.Messages[1].Content, "Produce STRICT JSON with these keys:"))
	assert.Contains(t, req.Messages[1].Content, `"user_emotions"`)
	assert.Equal(t, "hello | top_emotions: Joy(0.5)", req.Messages[2].Content)
}

func TestPipelineFallsThroughToObjectTier(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{
		{err: errors.New("response_format json_schema not supported")},
		{text: `{"a": 1}`},
	}}
	p := NewPipeline(gen, "gpt-4.1-mini", 1200, nil)

	res, err := p.Run(context.Background(), testPrompt())
	require.NoError(t, err)
	assert.Equal(t, TierJSONObject, res.Tier)
	require.Len(t, gen.requests, 2)
	assert.Equal(t, ai.FormatJSONObject, gen.requests[1].Format)
	assert.Nil(t, gen.requests[1].Schema)
}

func TestPipelineTextTierCoerces(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{
		{text: "not json"},
		{text: "still not json"},
		{text: "Here you go:\n```json\n{\"a\": {\"b\": 1}}\n```"},
	}}
	p := NewPipeline(gen, "gpt-4.1-mini", 1200, nil)

	res, err := p.Run(context.Background(), testPrompt())
	require.NoError(t, err)
	assert.Equal(t, TierText, res.Tier)
	assert.JSONEq(t, `{"a": {"b": 1}}`, string(res.Document))

	last := gen.requests[2]
	assert.Equal(t, ai.FormatText, last.Format)
	assert.True(t, strings.HasSuffix(last.Messages[0].Content, "\nReturn ONLY JSON. No markdown, no commentary."))
	assert.Equal(t, gen.requests[0].Messages[1:], last.Messages[1:])
}

func TestPipelineMalformed(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{
		{err: errors.New("boom")},
		{text: "nope"},
		{text: "I cannot produce JSON today"},
	}}
	p := NewPipeline(gen, "gpt-4.1-mini", 1200, nil)

	_, err := p.Run(context.Background(), testPrompt())
	require.Error(t, err)
	assert.ErrorIs(t, err, usecaseErrors.ErrMalformedResponse)

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "I cannot produce JSON today", malformed.RawText)
	assert.Len(t, malformed.Tiers, 3)
}

func TestPipelineUnavailable(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{
		{err: errors.New("connection refused")},
		{err: errors.New("connection refused")},
		{err: errors.New("connection refused")},
	}}
	p := NewPipeline(gen, "gpt-4.1-mini", 1200, nil)

	_, err := p.Run(context.Background(), testPrompt())
	assert.ErrorIs(t, err, usecaseErrors.ErrSummaryUnavailable)
	assert.NotErrorIs(t, err, usecaseErrors.ErrMalformedResponse)
}

func TestPipelineStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &fakeGenerator{replies: []reply{{err: context.Canceled}}}
	cancel()

	p := NewPipeline(gen, "gpt-4.1-mini", 1200, nil)
	_, err := p.Run(ctx, testPrompt())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, gen.requests)
}
