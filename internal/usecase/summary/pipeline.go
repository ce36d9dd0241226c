package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	usecaseErrors "github.com/peergrouptools/peergroup-api/internal/usecase/errors"
	"github.com/peergrouptools/peergroup-api/pkg/ai"
)

// Tier names, in the order they are attempted
const (
	TierJSONSchema = "json_schema"
	TierJSONObject = "json_object"
	TierText       = "text"
)

// Result is the first document any tier produced
type Result struct {
	Document Document
	Tier     string
	Model    string
	RawText  string
}

// TierError records why one tier did not yield a document. Text is the model
// output, if the provider answered at all.
type TierError struct {
	Tier string
	Text string
	Err  error
}

func (e *TierError) Error() string {
	return fmt.Sprintf("tier %s: %v", e.Tier, e.Err)
}

func (e *TierError) Unwrap() error { return e.Err }

// MalformedResponseError is returned when the model answered but no tier could
// recover a document. RawText is the last answer received.
type MalformedResponseError struct {
	RawText string
	Tiers   []*TierError
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%v after %d tiers", usecaseErrors.ErrMalformedResponse, len(e.Tiers))
}

func (e *MalformedResponseError) Unwrap() error { return usecaseErrors.ErrMalformedResponse }

var errNotParseable = errors.New("response is not a JSON object")

type tierFunc func(ctx context.Context, p Prompt) (*ai.Generation, Document, error)

type tier struct {
	name string
	run  tierFunc
}

// Pipeline asks the generator for a summary with decreasing strictness
type Pipeline struct {
	generator ai.Generator
	maxTokens int
	model     string
	logger    *zap.Logger
	tiers     []tier
}

// NewPipeline builds the three-tier pipeline. model is reported when the provider
// does not echo one back.
func NewPipeline(generator ai.Generator, model string, maxTokens int, logger *zap.Logger) *Pipeline {
	p := &Pipeline{
		generator: generator,
		maxTokens: maxTokens,
		model:     model,
		logger:    logger,
	}
	p.tiers = []tier{
		{name: TierJSONSchema, run: p.schemaTier},
		{name: TierJSONObject, run: p.objectTier},
		{name: TierText, run: p.textTier},
	}
	return p
}

// Run tries each tier in order and returns the first document. Provider errors
// only fail their tier. A cancelled or expired ctx stops the pipeline with ctx's error.
func (p *Pipeline) Run(ctx context.Context, prompt Prompt) (*Result, error) {
	var (
		failures []*TierError
		lastText string
		answered bool
	)

	for _, t := range p.tiers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		gen, doc, err := t.run(ctx, prompt)
		if err == nil {
			model := gen.Model
			if model == "" {
				model = p.model
			}
			return &Result{Document: doc, Tier: t.name, Model: model, RawText: gen.Text}, nil
		}

		tierErr := &TierError{Tier: t.name, Err: err}
		if gen != nil {
			answered = true
			lastText = gen.Text
			tierErr.Text = gen.Text
		}
		failures = append(failures, tierErr)

		if p.logger != nil {
			p.logger.Warn("Summary tier failed",
				zap.String("tier", t.name),
				zap.Bool("answered", gen != nil),
				zap.Error(err),
			)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if answered {
		return nil, &MalformedResponseError{RawText: lastText, Tiers: failures}
	}
	return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrSummaryUnavailable, errors.Join(tierErrors(failures)...))
}

func tierErrors(failures []*TierError) []error {
	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = f
	}
	return errs
}

func (p *Pipeline) request(prompt Prompt, format ai.ResponseFormat, suffix string) ai.GenerationRequest {
	req := ai.GenerationRequest{
		Messages:    prompt.Messages(suffix),
		Format:      format,
		Temperature: 0,
		MaxTokens:   p.maxTokens,
	}
	if format == ai.FormatJSONSchema {
		req.Schema = &ai.JSONSchema{
			Name:   SchemaName,
			Schema: Schema(),
			Strict: true,
		}
	}
	return req
}

func (p *Pipeline) parsedTier(ctx context.Context, req ai.GenerationRequest) (*ai.Generation, Document, error) {
	gen, err := p.generator.Generate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	doc, ok := ParseDocument(gen.Text)
	if !ok {
		return gen, nil, errNotParseable
	}
	return gen, doc, nil
}

func (p *Pipeline) schemaTier(ctx context.Context, prompt Prompt) (*ai.Generation, Document, error) {
	return p.parsedTier(ctx, p.request(prompt, ai.FormatJSONSchema, ""))
}

func (p *Pipeline) objectTier(ctx context.Context, prompt Prompt) (*ai.Generation, Document, error) {
	return p.parsedTier(ctx, p.request(prompt, ai.FormatJSONObject, ""))
}

func (p *Pipeline) textTier(ctx context.Context, prompt Prompt) (*ai.Generation, Document, error) {
	gen, err := p.generator.Generate(ctx, p.request(prompt, ai.FormatText, textOnlySuffix))
	if err != nil {
		return nil, nil, err
	}
	doc, ok := CoerceText(gen.Text)
	if !ok {
		if strings.TrimSpace(gen.Text) == "" {
			return gen, nil, fmt.Errorf("empty response")
		}
		return gen, nil, errNotParseable
	}
	return gen, doc, nil
}
