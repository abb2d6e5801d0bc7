// Package analyze implements the core.Analyzer interface.
// It parses a document once, fans the independent analysis stages out over
// the shared read-only tree and assembles their results:
//
//	parse → {readability, contrast, audit, summary} → report
//
// The engine holds no per-request state and is safe for concurrent use.
package analyze

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/accesslens/core"
	"github.com/gaurav-prasanna/accesslens/core/audit"
	"github.com/gaurav-prasanna/accesslens/core/contrast"
	"github.com/gaurav-prasanna/accesslens/core/document"
	"github.com/gaurav-prasanna/accesslens/core/extract"
	"github.com/gaurav-prasanna/accesslens/core/readability"
	"github.com/gaurav-prasanna/accesslens/core/summary"
)

type stage uint8

const (
	stageReadability stage = 1 << iota
	stageContrast
	stageAudit
	stageSummary

	stagesTransform = stageReadability | stageContrast | stageSummary
	stagesAll       = stagesTransform | stageAudit
)

// Engine runs the analysis stages.
type Engine struct {
	extractor *extract.HTMLExtractor
	auditor   *audit.Auditor
	logger    zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithAuditor replaces the default rule set.
func WithAuditor(a *audit.Auditor) Option {
	return func(e *Engine) { e.auditor = a }
}

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine with the default extractor and rules.
func New(opts ...Option) *Engine {
	e := &Engine{
		extractor: extract.New(),
		auditor:   audit.New(),
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// diagnosis collects stage outputs. Each stage writes only its own fields.
type diagnosis struct {
	level   string
	ratio   *float64
	issues  []audit.Issue
	summary string
}

// Transform returns the content-side diagnosis; Content echoes html.
func (e *Engine) Transform(ctx context.Context, html string) (core.TransformResult, error) {
	d, err := e.run(ctx, html, stagesTransform)
	if err != nil {
		return core.TransformResult{}, err
	}
	return core.TransformResult{
		Content:           html,
		Summary:           d.summary,
		ReadingLevel:      d.level,
		ContrastRatio:     d.ratio,
		SuggestedFontSize: core.SuggestedFontSize,
	}, nil
}

// Analyze returns the structural audit as aligned issue/suggestion lists.
func (e *Engine) Analyze(ctx context.Context, html string) (core.Analysis, error) {
	d, err := e.run(ctx, html, stageAudit)
	if err != nil {
		return core.Analysis{}, err
	}
	issues, suggestions := audit.Split(d.issues)
	return core.Analysis{Issues: issues, Suggestions: suggestions}, nil
}

// Report runs every stage and merges the results.
func (e *Engine) Report(ctx context.Context, html string) (core.Report, error) {
	if err := ctx.Err(); err != nil {
		return core.Report{}, fmt.Errorf("analysis cancelled: %w", err)
	}
	return e.ReportDocument(ctx, document.Parse(html))
}

// ReportDocument is Report over a tree the caller already parsed, so the
// caller can read metadata from the same tree.
func (e *Engine) ReportDocument(ctx context.Context, doc *document.Document) (core.Report, error) {
	d, err := e.diagnose(ctx, doc, stagesAll)
	if err != nil {
		return core.Report{}, err
	}
	issues, suggestions := audit.Split(d.issues)
	return core.Report{
		Summary:           d.summary,
		ReadingLevel:      d.level,
		ContrastRatio:     d.ratio,
		SuggestedFontSize: core.SuggestedFontSize,
		Issues:            issues,
		Suggestions:       suggestions,
	}, nil
}

// run parses html and executes the requested stages.
func (e *Engine) run(ctx context.Context, html string, stages stage) (diagnosis, error) {
	if err := ctx.Err(); err != nil {
		return diagnosis{}, fmt.Errorf("analysis cancelled: %w", err)
	}
	return e.diagnose(ctx, document.Parse(html), stages)
}

// diagnose executes the requested stages concurrently over doc. The only
// possible error is the context's.
func (e *Engine) diagnose(ctx context.Context, doc *document.Document, stages stage) (diagnosis, error) {
	var d diagnosis
	g, gctx := errgroup.WithContext(ctx)
	spawn := func(s stage, fn func()) {
		if stages&s == 0 {
			return
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	spawn(stageReadability, func() {
		m := readability.Score(e.extractor.Extract(doc).Text)
		d.level = m.Label
		e.logger.Debug().Int("sentences", m.Sentences).Int("words", m.Words).
			Int("syllables", m.Syllables).Float64("grade", m.Grade).Str("level", m.Label).Msg("readability scored")
	})
	spawn(stageContrast, func() {
		res := contrast.Scan(doc)
		d.ratio = res.Ratio()
		e.logger.Debug().Int("samples", res.Samples).Int("failing", res.Failing).Msg("contrast scanned")
	})
	spawn(stageAudit, func() {
		d.issues = e.auditor.Audit(doc)
		e.logger.Debug().Int("issues", len(d.issues)).Msg("structure audited")
	})
	spawn(stageSummary, func() {
		d.summary = summary.Generate(doc)
	})

	if err := g.Wait(); err != nil {
		return diagnosis{}, fmt.Errorf("analysis cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return diagnosis{}, fmt.Errorf("analysis cancelled: %w", err)
	}
	return d, nil
}
