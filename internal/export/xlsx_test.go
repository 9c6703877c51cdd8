package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/doclens/doclens/internal/model"
)

func TestWriteDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	docs := []model.DocumentMetadata{
		{
			ID:         "d1",
			Name:       "fatura.txt",
			Category:   "Fatura/Invoice",
			UploadDate: time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC),
			Size:       120,
			ExtractedData: map[string]model.FieldValue{
				"Tutar":     {Raw: "1.250,00", Kind: model.FieldTypeNumber, Number: 1250, Parsed: true},
				"Fatura No": {Raw: "INV-2024-001", Kind: model.FieldTypeText, Parsed: true},
			},
			Result: &model.ClassificationResult{
				Language:   "tr",
				Confidence: 0.95,
				RiskLevel:  model.RiskLow,
				Anomalies: []model.Anomaly{
					{Description: "required field missing: Tarih"},
				},
			},
		},
		{
			ID:         "d2",
			Name:       "not.txt",
			Category:   model.UnclassifiedLabel,
			UploadDate: time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC),
			Size:       30,
		},
	}

	require.NoError(t, WriteDocuments(path, docs))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)

	summary := file.Sheet["Documents"]
	require.NotNil(t, summary)
	// Header plus one row per document.
	require.Len(t, summary.Rows, 3)
	assert.Equal(t, "Name", summary.Rows[0].Cells[0].Value)
	assert.Equal(t, "fatura.txt", summary.Rows[1].Cells[0].Value)
	assert.Equal(t, "Fatura/Invoice", summary.Rows[1].Cells[1].Value)
	assert.Equal(t, "tr", summary.Rows[1].Cells[2].Value)
	assert.Equal(t, "low", summary.Rows[1].Cells[4].Value)
	assert.Equal(t, "2024-03-15 12:30:00", summary.Rows[1].Cells[5].Value)
	assert.Equal(t, "required field missing: Tarih", summary.Rows[1].Cells[7].Value)
	// Documents without a result leave the classification columns empty.
	assert.Equal(t, "", summary.Rows[2].Cells[2].Value)

	fields := file.Sheet["Extracted Fields"]
	require.NotNil(t, fields)
	// Header plus two field rows, sorted by field name.
	require.Len(t, fields.Rows, 3)
	assert.Equal(t, "Fatura No", fields.Rows[1].Cells[1].Value)
	assert.Equal(t, "INV-2024-001", fields.Rows[1].Cells[2].Value)
	assert.Equal(t, "Tutar", fields.Rows[2].Cells[1].Value)
}

func TestWriteDocuments_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, WriteDocuments(path, nil))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)
	assert.Len(t, file.Sheet["Documents"].Rows, 1)
}
