package registry

import (
	"time"

	"github.com/doclens/doclens/internal/model"
)

// BuiltinCategories returns the session-start category set. Built-in
// categories cannot be deleted; their keywords and thresholds are editable.
// Training-example counters seed the expected-length heuristic used by the
// anomaly detector.
func BuiltinCategories() []*model.Category {
	now := time.Now().UTC()
	return []*model.Category{
		{
			ID:          "builtin-invoice",
			Name:        "Fatura/Invoice",
			Description: "Fatura ve mali belgeler",
			Keywords:    []string{"fatura", "invoice", "amount", "total", "miktar", "tutar", "payment", "ödeme"},
			ExtractionFields: []model.FieldSpec{
				{ID: "1", Name: "Fatura No", Type: model.FieldTypeText, Required: true},
				{ID: "2", Name: "Toplam Tutar", Type: model.FieldTypeNumber, Required: true},
				{ID: "3", Name: "Tarih", Type: model.FieldTypeDate, Required: true},
				{ID: "4", Name: "Müşteri Email", Type: model.FieldTypeEmail, Required: false},
			},
			ConfidenceThreshold: 0.8,
			TrainingExamples:    150,
			CreatedAt:           now,
		},
		{
			ID:          "builtin-medical",
			Name:        "Tıbbi Rapor/Medical",
			Description: "Sağlık ve tıbbi belgeler",
			Keywords:    []string{"sağlık", "health", "medical", "tıbbi", "hasta", "patient", "doktor", "doctor"},
			ExtractionFields: []model.FieldSpec{
				{ID: "1", Name: "Hasta Adı", Type: model.FieldTypeText, Required: true},
				{ID: "2", Name: "Tanı", Type: model.FieldTypeText, Required: true},
				{ID: "3", Name: "Tarih", Type: model.FieldTypeDate, Required: true},
				{ID: "4", Name: "Doktor Adı", Type: model.FieldTypeText, Required: false},
			},
			ConfidenceThreshold: 0.85,
			TrainingExamples:    89,
			CreatedAt:           now,
		},
		{
			ID:          "builtin-contract",
			Name:        "Sözleşme/Contract",
			Description: "Yasal sözleşmeler ve anlaşmalar",
			Keywords:    []string{"sözleşme", "contract", "agreement", "terms", "şartlar", "imza", "signature"},
			ExtractionFields: []model.FieldSpec{
				{ID: "1", Name: "Taraflar", Type: model.FieldTypeText, Required: true},
				{ID: "2", Name: "Başlangıç Tarihi", Type: model.FieldTypeDate, Required: true},
				{ID: "3", Name: "Bitiş Tarihi", Type: model.FieldTypeDate, Required: false},
				{ID: "4", Name: "Değer", Type: model.FieldTypeNumber, Required: false},
			},
			ConfidenceThreshold: 0.8,
			TrainingExamples:    67,
			CreatedAt:           now,
		},
	}
}
