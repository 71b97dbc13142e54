package quality

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/guidequality-backend/internal/logger"
	"github.com/yungbote/guidequality-backend/internal/types"
)

// Engine bundles the analyzers behind the two public operations. It is
// safe for concurrent use: all mutable state lives in the per-call stack.
type Engine struct {
	cfg        Config
	log        *logger.Logger
	catalog    *Catalog
	structural *StructuralValidator
	metrics    *TextMetricsAnalyzer
	composer   *ScoreComposer
	verifier   SemanticVerifier
}

// NewEngine wires the analyzers with a shared config and pattern catalog.
// A nil verifier is allowed: every semantic contribution then comes from
// the fallback profile.
func NewEngine(cfg Config, catalog *Catalog, verifier SemanticVerifier, log *logger.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = DefaultCatalog(cfg.DefaultLocale)
	}
	return &Engine{
		cfg:        cfg,
		log:        log,
		catalog:    catalog,
		structural: NewStructuralValidator(cfg, catalog),
		metrics:    NewTextMetricsAnalyzer(cfg, catalog),
		composer:   NewScoreComposer(cfg),
		verifier:   verifier,
	}, nil
}

// VerifyGuide normalizes the raw guide payload, runs the structural and
// semantic assessments concurrently and composes the final report. The
// only error it returns besides cancellation is an unnormalizable payload;
// semantic failures degrade into the fallback profile instead.
func (e *Engine) VerifyGuide(ctx context.Context, raw any, locationName, language string, expectedElements []string) (types.QualityReport, error) {
	started := time.Now()

	doc, err := Normalize(raw, locationName, language)
	if err != nil {
		return types.QualityReport{}, err
	}

	var (
		structural StructuralResult
		semantic   types.SemanticAssessment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Reality checks share the semantic deadline; once it expires the
		// validator degrades to the local suspicious patterns.
		vctx, cancel := context.WithTimeout(gctx, e.cfg.SemanticTimeout)
		defer cancel()
		structural = e.structural.Validate(vctx, doc, expectedElements, e.verifier)
		return nil
	})
	g.Go(func() error {
		semantic = e.assess(gctx, doc)
		return nil
	})
	if err := g.Wait(); err != nil {
		return types.QualityReport{}, err
	}
	if err := ctx.Err(); err != nil {
		return types.QualityReport{}, err
	}

	report := e.composer.Compose(structural, semantic)
	report.ProcessingTimeMs = time.Since(started).Milliseconds()
	return report, nil
}

// assess runs the semantic verifier under the configured timeout. It never
// propagates an error: any failure yields the fallback profile.
func (e *Engine) assess(ctx context.Context, doc types.GuideDocument) types.SemanticAssessment {
	if e.verifier == nil {
		return FallbackAssessment(e.cfg)
	}
	sctx, cancel := context.WithTimeout(ctx, e.cfg.SemanticTimeout)
	defer cancel()
	a, err := e.verifier.AssessDocument(sctx, doc)
	if err != nil {
		if e.log != nil {
			e.log.Warn("semantic assessment failed, using fallback profile", "location", doc.Location, "error", err)
		}
		return FallbackAssessment(e.cfg)
	}
	return ClampAssessment(a)
}

// AnalyzeScript scores a conversational script against the style profile
// for the given locale.
func (e *Engine) AnalyzeScript(ctx context.Context, script, locale string) (types.ScriptReport, error) {
	started := time.Now()
	if err := ctx.Err(); err != nil {
		return types.ScriptReport{}, err
	}
	report := e.metrics.Analyze(script, locale)
	report.ProcessingTimeMs = time.Since(started).Milliseconds()
	return report, nil
}

// Classify exposes the tier ladder for callers that only hold a score.
func (e *Engine) Classify(overall float64) string {
	return e.composer.Classify(overall)
}
