// Package export writes session classification results to XLSX workbooks.
package export

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/doclens/doclens/internal/model"
)

// WriteDocuments writes the session documents to an XLSX workbook with one
// summary sheet and one sheet of extracted field values.
func WriteDocuments(path string, docs []model.DocumentMetadata) error {
	file := xlsx.NewFile()

	summary, err := file.AddSheet("Documents")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}
	writeHeader(summary, []string{
		"Name", "Category", "Language", "Confidence", "Risk", "Uploaded", "Size", "Anomalies",
	})
	for _, doc := range docs {
		row := summary.AddRow()
		row.AddCell().Value = doc.Name
		row.AddCell().Value = doc.Category

		var language, risk string
		var confidence float64
		var anomalies []string
		if doc.Result != nil {
			language = doc.Result.Language
			risk = string(doc.Result.RiskLevel)
			confidence = doc.Result.Confidence
			for _, a := range doc.Result.Anomalies {
				anomalies = append(anomalies, a.Description)
			}
		}
		row.AddCell().Value = language
		row.AddCell().SetFloatWithFormat(confidence, "0.00")
		row.AddCell().Value = risk
		row.AddCell().Value = doc.UploadDate.Format("2006-01-02 15:04:05")
		row.AddCell().SetInt(doc.Size)
		row.AddCell().Value = strings.Join(anomalies, "; ")
	}

	fields, err := file.AddSheet("Extracted Fields")
	if err != nil {
		return eris.Wrap(err, "export: add fields sheet")
	}
	writeHeader(fields, []string{"Document", "Field", "Value", "Type", "Parsed"})
	for _, doc := range docs {
		for _, name := range sortedFieldNames(doc.ExtractedData) {
			fv := doc.ExtractedData[name]
			row := fields.AddRow()
			row.AddCell().Value = doc.Name
			row.AddCell().Value = name
			row.AddCell().Value = fv.Raw
			row.AddCell().Value = string(fv.Kind)
			row.AddCell().SetBool(fv.Parsed)
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func writeHeader(sheet *xlsx.Sheet, columns []string) {
	row := sheet.AddRow()
	for _, col := range columns {
		row.AddCell().Value = col
	}
}

func sortedFieldNames(data map[string]model.FieldValue) []string {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
