package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/model"
	"github.com/doclens/doclens/internal/registry"
)

const invoiceContent = "Bu bir fatura ve invoice belgesidir. Ödeme payment ile toplam total " +
	"amount tutar miktar çok net: 1.250,00 TL. Fatura No: INV-2024-001 Tarih: 15.03.2024. " +
	"Müşteri ile yapılan görüşme sonrası fatura onaylandı ve ödeme planı netleşti."

func TestEngineClassify_Invoice(t *testing.T) {
	engine := NewEngine()

	result := engine.Classify(invoiceContent, registry.BuiltinCategories(), false)

	require.NotNil(t, result)
	assert.Equal(t, "Fatura/Invoice", result.Category)
	assert.Equal(t, "Fatura/Invoice", result.Label)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
	assert.Equal(t, model.RiskLow, result.RiskLevel)
	assert.Equal(t, "tr", result.Language)
	assert.Nil(t, result.Explanation)

	require.Contains(t, result.ExtractedData, "Fatura No")
	assert.Equal(t, "INV-2024-001", result.ExtractedData["Fatura No"].Raw)
	require.Contains(t, result.ExtractedData, "Toplam Tutar")
	assert.InDelta(t, 1250.0, result.ExtractedData["Toplam Tutar"].Number, 1e-9)
	require.Contains(t, result.ExtractedData, "Tarih")
	assert.True(t, result.ExtractedData["Tarih"].Parsed)

	assert.Empty(t, result.Anomalies)
	assert.NotEmpty(t, result.Entities)
	assert.NotEmpty(t, result.Rankings)
}

func TestEngineClassify_Explanation(t *testing.T) {
	engine := NewEngine()

	result := engine.Classify(invoiceContent, registry.BuiltinCategories(), true)

	require.NotNil(t, result.Explanation)
	assert.Contains(t, result.Explanation.Keywords, "fatura")
	assert.NotEmpty(t, result.Explanation.Reasoning)
}

func TestEngineClassify_Unclassified(t *testing.T) {
	engine := NewEngine()

	result := engine.Classify("tamamen alakasız bir metin burada duruyor", registry.BuiltinCategories(), false)

	require.NotNil(t, result)
	assert.Equal(t, model.UnclassifiedLabel, result.Category)
	assert.Equal(t, model.UnclassifiedLabel, result.Label)
	assert.Equal(t, model.RiskHigh, result.RiskLevel)
	assert.Empty(t, result.ExtractedData)
	assert.Len(t, result.Rankings, len(registry.BuiltinCategories()))
}

func TestEngineClassify_FirstMatchPriority(t *testing.T) {
	custom := &model.Category{
		ID:                  "custom-1",
		Name:                "Özel Fatura",
		Keywords:            []string{"fatura"},
		ConfidenceThreshold: 0.5,
		IsCustom:            true,
	}
	categories := append([]*model.Category{custom}, registry.BuiltinCategories()...)
	engine := NewEngine()

	result := engine.Classify(invoiceContent, categories, false)

	// The custom category is evaluated first and clears its threshold, so
	// it wins even though the built-in invoice category scores at least as
	// high.
	assert.Equal(t, "Özel Fatura", result.Category)
}

func TestEngineClassify_CustomRiskBands(t *testing.T) {
	engine := NewEngine(WithRiskBands(model.RiskBands{Low: 1.1, Medium: 0.5}))

	result := engine.Classify(invoiceContent, registry.BuiltinCategories(), false)

	assert.Equal(t, model.RiskMedium, result.RiskLevel)
}

func TestEngineClassify_EntityLimit(t *testing.T) {
	engine := NewEngine(WithEntityLimit(1))

	result := engine.Classify(invoiceContent, registry.BuiltinCategories(), false)

	assert.Len(t, result.Entities, 1)
}

func TestEngineClassify_ConcurrentUse(t *testing.T) {
	engine := NewEngine()
	categories := registry.BuiltinCategories()

	done := make(chan *model.ClassificationResult, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- engine.Classify(invoiceContent, categories, true)
		}()
	}
	for i := 0; i < 8; i++ {
		result := <-done
		assert.Equal(t, "Fatura/Invoice", result.Category)
	}
}
