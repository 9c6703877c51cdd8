package model

import "sort"

// AnomalyType describes which check raised an anomaly.
type AnomalyType string

const (
	AnomalyFormat   AnomalyType = "format"
	AnomalyContent  AnomalyType = "content"
	AnomalyValue    AnomalyType = "value"
	AnomalyLength   AnomalyType = "length"
	AnomalyEncoding AnomalyType = "encoding"
)

// Anomaly is a detected deviation from expected document structure or
// content, surfaced as a manual-review signal.
type Anomaly struct {
	Type        AnomalyType `json:"type"`
	Severity    RiskLevel   `json:"severity"`
	Description string      `json:"description"`
	Suggestion  string      `json:"suggestion,omitempty"`
	Confidence  float64     `json:"confidence"`
}

// severityRank orders severities for sorting; higher is more severe.
var severityRank = map[RiskLevel]int{
	RiskHigh:   3,
	RiskMedium: 2,
	RiskLow:    1,
}

// SortBySeverity orders anomalies most severe first, preserving discovery
// order within a severity.
func SortBySeverity(anomalies []Anomaly) {
	sort.SliceStable(anomalies, func(i, j int) bool {
		return severityRank[anomalies[i].Severity] > severityRank[anomalies[j].Severity]
	})
}
