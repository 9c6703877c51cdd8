package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryValidate(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantErr  string
	}{
		{
			name:     "valid",
			category: Category{Name: "Fatura", ConfidenceThreshold: 0.8},
		},
		{
			name: "valid with fields",
			category: Category{
				Name: "Fatura",
				ExtractionFields: []FieldSpec{
					{Name: "Tutar", Type: FieldTypeNumber, Required: true},
				},
			},
		},
		{
			name:     "missing name",
			category: Category{},
			wantErr:  "name is required",
		},
		{
			name:     "threshold out of range",
			category: Category{Name: "X", ConfidenceThreshold: 1.2},
			wantErr:  "confidence threshold",
		},
		{
			name: "unnamed field",
			category: Category{
				Name:             "X",
				ExtractionFields: []FieldSpec{{Type: FieldTypeText}},
			},
			wantErr: "has no name",
		},
		{
			name: "invalid field type",
			category: Category{
				Name:             "X",
				ExtractionFields: []FieldSpec{{Name: "F", Type: "banana"}},
			},
			wantErr: "invalid type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAddKeyword(t *testing.T) {
	c := Category{Keywords: []string{"fatura"}}

	assert.True(t, c.AddKeyword("ödeme"))
	assert.False(t, c.AddKeyword("FATURA"), "case-insensitive duplicate")
	assert.False(t, c.AddKeyword("  "))
	assert.Equal(t, []string{"fatura", "ödeme"}, c.Keywords)
}

func TestRemoveKeyword(t *testing.T) {
	c := Category{Keywords: []string{"fatura", "ödeme"}}

	assert.True(t, c.RemoveKeyword("Fatura"))
	assert.False(t, c.RemoveKeyword("yok"))
	assert.Equal(t, []string{"ödeme"}, c.Keywords)
}

func TestRequiredFields(t *testing.T) {
	c := Category{
		ExtractionFields: []FieldSpec{
			{Name: "A", Type: FieldTypeText, Required: true},
			{Name: "B", Type: FieldTypeText},
			{Name: "C", Type: FieldTypeDate, Required: true},
		},
	}

	req := c.RequiredFields()
	require.Len(t, req, 2)
	assert.Equal(t, "A", req[0].Name)
	assert.Equal(t, "C", req[1].Name)
}

func TestExpectedContentLength(t *testing.T) {
	assert.Equal(t, 300, (&Category{}).ExpectedContentLength())
	assert.Equal(t, 500, (&Category{TrainingExamples: 5}).ExpectedContentLength())
}

func TestCompiledPattern(t *testing.T) {
	f := FieldSpec{Name: "Kod", Type: FieldTypeText, Pattern: `ORD-\d{4}`}
	re, ok := f.CompiledPattern()
	require.True(t, ok)
	assert.Equal(t, "ORD-1234", re.FindString("sipariş ORD-1234 onaylandı"))

	invalid := FieldSpec{Pattern: "(["}
	_, ok = invalid.CompiledPattern()
	assert.False(t, ok)

	empty := FieldSpec{}
	_, ok = empty.CompiledPattern()
	assert.False(t, ok)
}
