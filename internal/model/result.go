package model

import (
	"sort"
	"time"
)

// RiskLevel is a coarse trust label derived from classification confidence.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskBands holds the confidence cutoffs that partition risk levels.
// A confidence at or above Low maps to RiskLow, at or above Medium to
// RiskMedium, anything below to RiskHigh. The reference behavior used
// slightly different cutoffs at different call sites; a single configurable
// set is used everywhere instead.
type RiskBands struct {
	Low    float64 `yaml:"low" mapstructure:"low"`
	Medium float64 `yaml:"medium" mapstructure:"medium"`
}

// DefaultRiskBands returns the standard cutoffs: ≥0.9 low, ≥0.7 medium.
func DefaultRiskBands() RiskBands {
	return RiskBands{Low: 0.9, Medium: 0.7}
}

// Risk maps a confidence value to a risk level.
func (b RiskBands) Risk(confidence float64) RiskLevel {
	switch {
	case confidence >= b.Low:
		return RiskLow
	case confidence >= b.Medium:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Explanation describes why a document was classified the way it was.
type Explanation struct {
	Keywords        []string `json:"keywords"`
	Reasoning       string   `json:"reasoning"`
	HighlightedText string   `json:"highlighted_text,omitempty"`
}

// ClassificationResult is the full outcome of classifying one document.
type ClassificationResult struct {
	Label         string                `json:"label"`
	Category      string                `json:"category"`
	Confidence    float64               `json:"confidence"`
	RiskLevel     RiskLevel             `json:"risk_level"`
	Language      string                `json:"language,omitempty"`
	Explanation   *Explanation          `json:"explanation,omitempty"`
	ExtractedData map[string]FieldValue `json:"extracted_data,omitempty"`
	Entities      Entities              `json:"entities,omitempty"`
	Anomalies     []Anomaly             `json:"anomalies,omitempty"`
	Rankings      CategoryScores        `json:"rankings,omitempty"`
}

// UnclassifiedLabel is the label reported when no category clears its
// threshold. Not an error: every input produces some result.
const UnclassifiedLabel = "Unclassified"

// CategoryScore is one category's computed match score for a document.
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Matched  bool    `json:"matched"`
}

// CategoryScores supports sorting by score descending. Ties sort by category
// name so output is deterministic.
type CategoryScores []CategoryScore

// Sort orders the scores descending by score, then by name.
func (s CategoryScores) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		return s[i].Category < s[j].Category
	})
}

// Top returns the highest-ranked score, or nil when empty.
func (s CategoryScores) Top() *CategoryScore {
	if len(s) == 0 {
		return nil
	}
	s.Sort()
	return &s[0]
}

// ClassifyResponse is the envelope returned by the classify API endpoint.
type ClassifyResponse struct {
	Classifications  []ClassificationResult `json:"classifications"`
	DetectedLanguage string                 `json:"detectedLanguage"`
	ProcessingTime   string                 `json:"processingTime"`
}

// FieldValue is a typed extraction result. Raw always carries the matched
// text; the typed fields are populated according to Kind so callers can
// distinguish "extraction missed" (key absent) from "extracted but not
// parseable as the declared type" (Parsed false).
type FieldValue struct {
	Raw    string     `json:"raw"`
	Kind   FieldType  `json:"kind"`
	Parsed bool       `json:"parsed"`
	Number float64    `json:"number,omitempty"`
	Date   *time.Time `json:"date,omitempty"`
}
