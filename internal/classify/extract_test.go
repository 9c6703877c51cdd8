package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/model"
)

func TestExtractFields_TurkishInvoice(t *testing.T) {
	fields := []model.FieldSpec{
		{ID: "1", Name: "Fatura No", Type: model.FieldTypeText, Required: true},
		{ID: "2", Name: "Tarih", Type: model.FieldTypeDate, Required: true},
		{ID: "3", Name: "Müşteri Email", Type: model.FieldTypeEmail, Required: false},
	}
	content := "Fatura No: INV-2024-001 Toplam Tutar: 1.250,00 TL Tarih: 15.03.2024"

	data := ExtractFields(content, fields)

	require.Contains(t, data, "Fatura No")
	assert.Equal(t, "INV-2024-001", data["Fatura No"].Raw)
	assert.True(t, data["Fatura No"].Parsed)

	require.Contains(t, data, "Tarih")
	assert.Equal(t, "15.03.2024", data["Tarih"].Raw)
	require.NotNil(t, data["Tarih"].Date)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), *data["Tarih"].Date)

	// No email in the content: the key must be absent, not empty.
	assert.NotContains(t, data, "Müşteri Email")
}

func TestExtractFields_Idempotent(t *testing.T) {
	fields := []model.FieldSpec{
		{Name: "Email", Type: model.FieldTypeEmail},
		{Name: "Tarih", Type: model.FieldTypeDate},
	}
	content := "İletişim: ali@example.com Tarih: 15.03.2024"

	first := ExtractFields(content, fields)
	second := ExtractFields(content, fields)
	assert.Equal(t, first, second)
}

func TestExtractField_CustomPattern(t *testing.T) {
	field := model.FieldSpec{
		Name:    "Sipariş",
		Type:    model.FieldTypeText,
		Pattern: `ORD-\d{4}`,
	}

	fv, ok := ExtractField("Sipariş kodu ORD-5512 onaylandı", &field)
	require.True(t, ok)
	assert.Equal(t, "ORD-5512", fv.Raw)
}

func TestExtractField_CustomPatternCaptureGroup(t *testing.T) {
	field := model.FieldSpec{
		Name:    "Kod",
		Type:    model.FieldTypeText,
		Pattern: `kod[:\s]+(\w+)`,
	}

	fv, ok := ExtractField("Referans kod: XYZ99", &field)
	require.True(t, ok)
	assert.Equal(t, "XYZ99", fv.Raw)
}

func TestExtractField_InvalidPatternFallsThrough(t *testing.T) {
	field := model.FieldSpec{
		Name:    "Belge No",
		Type:    model.FieldTypeText,
		Pattern: `([`, // does not compile
	}

	// The invalid pattern is skipped and the label fallback still extracts.
	fv, ok := ExtractField("Belge No: DOC-17", &field)
	require.True(t, ok)
	assert.Equal(t, "DOC-17", fv.Raw)
}

func TestExtractField_Missing(t *testing.T) {
	field := model.FieldSpec{Name: "Hasta Adı", Type: model.FieldTypeText}

	_, ok := ExtractField("no matching label anywhere", &field)
	assert.False(t, ok)
}

func TestExtractField_PhoneFormats(t *testing.T) {
	field := model.FieldSpec{Name: "Telefon", Type: model.FieldTypePhone}

	tests := []string{
		"Telefon: 0212 555 44 33",
		"Ara: +90 532 123 45 67",
		"Tel: 0532 111 22 33",
	}
	for _, content := range tests {
		fv, ok := ExtractField(content, &field)
		assert.True(t, ok, content)
		assert.NotEmpty(t, fv.Raw, content)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.250,00", 1250.00, true},
		{"1.250", 1250, true},
		{"5.000.000", 5000000, true},
		{"1250,50", 1250.50, true},
		{"42", 42, true},
		{"1.250,00 TL", 1250.00, true},
		{"₺500", 500, true},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"15.03.2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"5/3/24", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"15-12-2023", time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC), true},
		{"15 Mart 2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"15 March 2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"45.13.2024", time.Time{}, false},
		{"not a date", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
