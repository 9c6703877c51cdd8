package classify

import (
	"go.uber.org/zap"

	"github.com/doclens/doclens/internal/model"
)

// Engine ties the detectors together: language detection, first-match
// category scoring, field extraction, entity recognition, and the
// per-document anomaly checks. It holds only configuration; every call is a
// pure computation over the supplied text and categories, so a single Engine
// is safe for concurrent use.
type Engine struct {
	bands       model.RiskBands
	entityLimit int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRiskBands overrides the confidence cutoffs used for risk levels.
func WithRiskBands(b model.RiskBands) Option {
	return func(e *Engine) { e.bands = b }
}

// WithEntityLimit overrides how many top entities a result carries.
func WithEntityLimit(n int) Option {
	return func(e *Engine) { e.entityLimit = n }
}

// NewEngine builds an Engine with default risk bands and entity limit.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		bands:       model.DefaultRiskBands(),
		entityLimit: DefaultEntityLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classify runs the full pipeline over one document. Categories are
// evaluated in the supplied order with a first-match policy, so the caller
// controls priority. When no category clears its threshold the result is an
// unclassified record with high risk rather than an error. Set explain to
// include the keyword rationale and highlighted excerpt.
func (e *Engine) Classify(content string, categories []*model.Category, explain bool) *model.ClassificationResult {
	language := DetectLanguage(content)
	category, score, rankings := FirstMatch(content, categories)

	entities := ExtractEntities(content).TopN(e.entityLimit)

	if category == nil {
		zap.L().Debug("no category cleared its threshold",
			zap.String("language", string(language)),
			zap.Float64("best_score", topScore(rankings)))
		return &model.ClassificationResult{
			Label:      model.UnclassifiedLabel,
			Category:   model.UnclassifiedLabel,
			Confidence: topScore(rankings),
			RiskLevel:  model.RiskHigh,
			Language:   string(language),
			Entities:   entities,
			Rankings:   rankings,
		}
	}

	result := &model.ClassificationResult{
		Label:         category.Name,
		Category:      category.Name,
		Confidence:    score,
		RiskLevel:     e.bands.Risk(score),
		Language:      string(language),
		ExtractedData: ExtractFields(content, category.ExtractionFields),
		Entities:      entities,
		Anomalies:     DetectAnomalies(content, category),
		Rankings:      rankings,
	}
	if explain {
		exp := Explain(content, category)
		result.Explanation = &exp
	}

	zap.L().Debug("document classified",
		zap.String("category", category.Name),
		zap.Float64("confidence", score),
		zap.String("risk", string(result.RiskLevel)),
		zap.Int("anomalies", len(result.Anomalies)))
	return result
}

func topScore(rankings model.CategoryScores) float64 {
	if top := rankings.Top(); top != nil {
		return top.Score
	}
	return 0
}
