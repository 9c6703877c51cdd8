package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/model"
)

func TestGroupByEntity_SharedValue(t *testing.T) {
	docs := []model.DocumentMetadata{
		{
			ID: "d1", Category: "Fatura/Invoice",
			ExtractedData: map[string]model.FieldValue{
				"Müşteri": {Raw: "Acme Ltd", Kind: model.FieldTypeText},
			},
		},
		{
			ID: "d2", Category: "Sözleşme/Contract",
			ExtractedData: map[string]model.FieldValue{
				"Taraflar": {Raw: "ACME LTD", Kind: model.FieldTypeText},
			},
		},
		{
			ID: "d3", Category: "Fatura/Invoice",
			ExtractedData: map[string]model.FieldValue{
				"Müşteri": {Raw: "Globex", Kind: model.FieldTypeText},
			},
		},
	}

	groups := GroupByEntity(docs)

	require.Len(t, groups, 1)
	group := groups[0]
	assert.Equal(t, model.RelationEntity, group.RelationshipType)
	assert.InDelta(t, 0.9, group.Confidence, 1e-9)
	assert.Contains(t, group.Name, "acme ltd")
	require.Len(t, group.Documents, 2)
	assert.Equal(t, []string{"Müşteri", "Taraflar"}, group.CommonFields)
}

func TestGroupByEntity_ShortValuesSkipped(t *testing.T) {
	docs := []model.DocumentMetadata{
		{ID: "d1", ExtractedData: map[string]model.FieldValue{"Kod": {Raw: "A1"}}},
		{ID: "d2", ExtractedData: map[string]model.FieldValue{"Kod": {Raw: "A1"}}},
	}

	assert.Empty(t, GroupByEntity(docs))
}

func TestGroupByTime_ExtractedDatePreferred(t *testing.T) {
	march := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	docs := []model.DocumentMetadata{
		{
			ID:         "d1",
			UploadDate: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			ExtractedData: map[string]model.FieldValue{
				"Tarih": {Raw: "15.03.2024", Kind: model.FieldTypeDate, Parsed: true, Date: &march},
			},
		},
		{
			ID:         "d2",
			UploadDate: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:         "d3",
			UploadDate: time.Date(2024, 6, 2, 11, 0, 0, 0, time.UTC),
		},
	}

	groups := GroupByTime(docs)

	// d1 lands in 2024-03 via its extracted date, joining d2. d3 is alone
	// in 2024-06 and forms no group.
	require.Len(t, groups, 1)
	assert.Equal(t, "Documents from 2024-03", groups[0].Name)
	assert.Equal(t, model.RelationTemporal, groups[0].RelationshipType)
	assert.InDelta(t, 0.7, groups[0].Confidence, 1e-9)
	assert.Len(t, groups[0].Documents, 2)
}

func TestGroupByContent_SimilarSameCategory(t *testing.T) {
	docs := []model.DocumentMetadata{
		{ID: "d1", Category: "Fatura/Invoice", Content: "fatura tutar ödeme vade tarih müşteri"},
		{ID: "d2", Category: "Fatura/Invoice", Content: "fatura tutar ödeme vade tarih toplam"},
		{ID: "d3", Category: "Tıbbi Rapor/Medical", Content: "hasta tanı tedavi"},
	}

	groups := GroupByContent(docs)

	require.Len(t, groups, 1)
	group := groups[0]
	assert.Equal(t, "Similar Fatura/Invoice documents", group.Name)
	assert.Equal(t, model.RelationContent, group.RelationshipType)
	// 5 shared words over a union of 7.
	assert.InDelta(t, 5.0/7.0, group.Confidence, 1e-9)
}

func TestGroupByContent_DissimilarNotGrouped(t *testing.T) {
	docs := []model.DocumentMetadata{
		{ID: "d1", Category: "Fatura/Invoice", Content: "fatura tutar ödeme"},
		{ID: "d2", Category: "Fatura/Invoice", Content: "elma armut kiraz"},
	}

	assert.Empty(t, GroupByContent(docs))
}

func TestGroupByContent_UnclassifiedExcluded(t *testing.T) {
	docs := []model.DocumentMetadata{
		{ID: "d1", Category: model.UnclassifiedLabel, Content: "aynı içerik burada"},
		{ID: "d2", Category: model.UnclassifiedLabel, Content: "aynı içerik burada"},
	}

	assert.Empty(t, GroupByContent(docs))
}

func TestFindRelationships_CombinesStrategies(t *testing.T) {
	docs := []model.DocumentMetadata{
		{
			ID: "d1", Category: "Fatura/Invoice",
			UploadDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Content:    "fatura tutar ödeme vade tarih müşteri",
			ExtractedData: map[string]model.FieldValue{
				"Müşteri": {Raw: "Acme Ltd"},
			},
		},
		{
			ID: "d2", Category: "Fatura/Invoice",
			UploadDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Content:    "fatura tutar ödeme vade tarih toplam",
			ExtractedData: map[string]model.FieldValue{
				"Müşteri": {Raw: "Acme Ltd"},
			},
		},
	}

	groups := FindRelationships(docs)

	require.Len(t, groups, 3)
	assert.Equal(t, model.RelationEntity, groups[0].RelationshipType)
	assert.Equal(t, model.RelationTemporal, groups[1].RelationshipType)
	assert.Equal(t, model.RelationContent, groups[2].RelationshipType)
	for _, g := range groups {
		assert.NotEmpty(t, g.ID)
		assert.Len(t, g.Documents, 2)
	}
}
