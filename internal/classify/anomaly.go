package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/doclens/doclens/internal/model"
)

// DetectAnomalies runs the per-document checks for a classified document:
// required fields that extracted nothing, content length outside the
// expected band, known placeholder text, and encoding artifacts. Each check
// appends independently; an empty result means a clean document.
func DetectAnomalies(content string, category *model.Category) []model.Anomaly {
	var anomalies []model.Anomaly

	for _, field := range category.RequiredFields() {
		f := field
		if _, ok := extractField(content, &f); !ok {
			anomalies = append(anomalies, model.Anomaly{
				Type:        model.AnomalyFormat,
				Severity:    model.RiskMedium,
				Description: fmt.Sprintf("required field missing: %s", field.Name),
				Suggestion:  "check the document for the expected field and its label",
				Confidence:  0.85,
			})
		}
	}

	expected := category.ExpectedContentLength()
	switch {
	case len(content) < expected*3/10:
		anomalies = append(anomalies, model.Anomaly{
			Type:        model.AnomalyLength,
			Severity:    model.RiskMedium,
			Description: "document too short - information may be missing",
			Suggestion:  "verify the full document was provided",
			Confidence:  0.7,
		})
	case len(content) > expected*3:
		anomalies = append(anomalies, model.Anomaly{
			Type:        model.AnomalyLength,
			Severity:    model.RiskMedium,
			Description: "document too long - differs from the expected format",
			Suggestion:  "verify the document matches its category",
			Confidence:  0.7,
		})
	}

	if strings.Contains(strings.ToLower(content), "lorem ipsum") {
		anomalies = append(anomalies, model.Anomaly{
			Type:        model.AnomalyContent,
			Severity:    model.RiskMedium,
			Description: "placeholder test text detected",
			Confidence:  0.9,
		})
	}

	if strings.Contains(content, "�") || strings.Contains(content, "??") {
		anomalies = append(anomalies, model.Anomaly{
			Type:        model.AnomalyEncoding,
			Severity:    model.RiskMedium,
			Description: "character encoding problem detected",
			Suggestion:  "re-export the document with UTF-8 encoding",
			Confidence:  0.9,
		})
	}

	return anomalies
}

// Value-anomaly tuning. A same-category invoice amount deviating from the
// session mean by more than valueDeviationThreshold raises an anomaly;
// beyond valueDeviationHigh the severity escalates.
const (
	valueDeviationThreshold = 2.0
	valueDeviationHigh      = 5.0
)

var invoiceAmountRe = regexp.MustCompile(`(\d{1,3}(?:\.\d{3})*(?:,\d{2})?)\s*(?:TL|₺)`)

// isInvoiceCategory reports whether a category name denotes an invoice-like
// document. Built-in names are bilingual ("Fatura/Invoice").
func isInvoiceCategory(name string) bool {
	folded := fold.String(name)
	return strings.Contains(folded, "invoice") || strings.Contains(folded, "fatura")
}

// invoiceAmount extracts the first Turkish-lira amount from a document.
func invoiceAmount(content string) (float64, bool) {
	m := invoiceAmountRe.FindStringSubmatch(content)
	if m == nil {
		return 0, false
	}
	return ParseAmount(m[1])
}

// DetectValueAnomaly compares an invoice document's amount against the mean
// amount of the other same-category documents in the session snapshot. A
// deviation above 200% of the mean raises a value anomaly, high severity
// beyond 500%. Non-invoice documents and empty histories yield nil.
//
// This is deliberately a session-level operation: history must be an
// immutable snapshot supplied by the caller, never shared mutable state.
func DetectValueAnomaly(doc model.DocumentMetadata, history []model.DocumentMetadata) *model.Anomaly {
	if !isInvoiceCategory(doc.Category) {
		return nil
	}
	amount, ok := invoiceAmount(doc.Content)
	if !ok {
		return nil
	}

	var amounts []float64
	for _, other := range history {
		if other.ID == doc.ID || other.Category != doc.Category {
			continue
		}
		if a, ok := invoiceAmount(other.Content); ok && a > 0 {
			amounts = append(amounts, a)
		}
	}
	if len(amounts) == 0 {
		return nil
	}

	var sum float64
	for _, a := range amounts {
		sum += a
	}
	mean := sum / float64(len(amounts))
	if mean == 0 {
		return nil
	}

	deviation := amount - mean
	if deviation < 0 {
		deviation = -deviation
	}
	deviation /= mean
	if deviation <= valueDeviationThreshold {
		return nil
	}

	severity := model.RiskMedium
	if deviation > valueDeviationHigh {
		severity = model.RiskHigh
	}
	return &model.Anomaly{
		Type:        model.AnomalyValue,
		Severity:    severity,
		Description: fmt.Sprintf("invoice amount deviates %.0f%% from the session average", deviation*100),
		Suggestion:  "verify the amount is correct",
		Confidence:  0.8,
	}
}

// DetectContentAnomaly flags a document whose content is very different from
// every other same-category document in the session (mean Jaccard similarity
// below 0.3). Such documents may be misclassified or forged.
func DetectContentAnomaly(doc model.DocumentMetadata, history []model.DocumentMetadata) *model.Anomaly {
	var peers []model.DocumentMetadata
	for _, other := range history {
		if other.ID != doc.ID && other.Category == doc.Category {
			peers = append(peers, other)
		}
	}
	if len(peers) == 0 {
		return nil
	}

	var total float64
	docFolded := fold.String(doc.Content)
	for _, p := range peers {
		total += jaccardSimilarity(docFolded, fold.String(p.Content))
	}
	if total/float64(len(peers)) >= 0.3 {
		return nil
	}

	return &model.Anomaly{
		Type:        model.AnomalyContent,
		Severity:    model.RiskHigh,
		Description: "content is unusual for its category",
		Suggestion:  "manual review recommended - possible forged document",
		Confidence:  0.78,
	}
}

// SessionAnomalies runs the cross-document checks for every document in the
// snapshot and returns the combined list sorted most severe first.
func SessionAnomalies(docs []model.DocumentMetadata) []model.Anomaly {
	var anomalies []model.Anomaly
	for _, doc := range docs {
		if a := DetectValueAnomaly(doc, docs); a != nil {
			anomalies = append(anomalies, *a)
		}
		if a := DetectContentAnomaly(doc, docs); a != nil {
			anomalies = append(anomalies, *a)
		}
	}
	model.SortBySeverity(anomalies)
	return anomalies
}
