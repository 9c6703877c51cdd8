package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// FieldType constrains which default extraction patterns apply to a field.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeNumber FieldType = "number"
	FieldTypeDate   FieldType = "date"
	FieldTypeEmail  FieldType = "email"
	FieldTypePhone  FieldType = "phone"
)

// AllFieldTypes returns all defined field types.
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeNumber,
		FieldTypeDate,
		FieldTypeEmail,
		FieldTypePhone,
	}
}

// ValidFieldType reports whether ft is one of the defined field types.
func ValidFieldType(ft FieldType) bool {
	switch ft {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeEmail, FieldTypePhone:
		return true
	}
	return false
}

// FieldSpec describes a single extractable field of a category.
type FieldSpec struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Type     FieldType `json:"type" yaml:"type"`
	Required bool      `json:"required" yaml:"required"`
	// Pattern is an optional user-supplied regex overriding the type default.
	// It is compiled at extraction time; invalid patterns are skipped.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// CompiledPattern returns the compiled custom pattern, or (nil, false) when
// no pattern is set or it does not compile. The (?i) flag is prepended so
// custom patterns match case-insensitively, the same way type-default
// patterns do. Specs are shared across concurrent classifications, so no
// compile result is cached on the struct.
func (f *FieldSpec) CompiledPattern() (*regexp.Regexp, bool) {
	if f.Pattern == "" {
		return nil, false
	}
	re, err := regexp.Compile("(?i)" + f.Pattern)
	if err != nil {
		return nil, false
	}
	return re, true
}

// Category is a document class: keywords and a description drive matching,
// extraction fields drive structured data extraction, and the confidence
// threshold gates acceptance.
type Category struct {
	ID                  string      `json:"id" yaml:"id"`
	Name                string      `json:"name" yaml:"name"`
	Description         string      `json:"description" yaml:"description"`
	Keywords            []string    `json:"keywords" yaml:"keywords"`
	ExtractionFields    []FieldSpec `json:"extraction_fields" yaml:"extraction_fields"`
	ConfidenceThreshold float64     `json:"confidence_threshold" yaml:"confidence_threshold"`
	IsCustom            bool        `json:"is_custom" yaml:"is_custom"`
	TrainingExamples    int         `json:"training_examples" yaml:"training_examples"`
	CreatedAt           time.Time   `json:"created_at" yaml:"created_at"`
}

// Validate ensures the category has usable data.
func (c *Category) Validate() error {
	if c.Name == "" {
		return eris.New("category name is required")
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return eris.Errorf("confidence threshold must be in [0,1], got %.2f", c.ConfidenceThreshold)
	}
	for i := range c.ExtractionFields {
		f := &c.ExtractionFields[i]
		if f.Name == "" {
			return eris.Errorf("extraction field %d has no name", i)
		}
		if !ValidFieldType(f.Type) {
			return eris.Errorf("extraction field %q has invalid type %q", f.Name, f.Type)
		}
	}
	return nil
}

// AddKeyword appends a keyword, suppressing duplicates case-insensitively.
// Insertion order of the surviving keywords is preserved.
func (c *Category) AddKeyword(keyword string) bool {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return false
	}
	for _, existing := range c.Keywords {
		if strings.EqualFold(existing, keyword) {
			return false
		}
	}
	c.Keywords = append(c.Keywords, keyword)
	return true
}

// RemoveKeyword deletes a keyword by case-insensitive match.
func (c *Category) RemoveKeyword(keyword string) bool {
	for i, existing := range c.Keywords {
		if strings.EqualFold(existing, keyword) {
			c.Keywords = append(c.Keywords[:i], c.Keywords[i+1:]...)
			return true
		}
	}
	return false
}

// RequiredFields returns the subset of extraction fields marked required.
func (c *Category) RequiredFields() []FieldSpec {
	var req []FieldSpec
	for _, f := range c.ExtractionFields {
		if f.Required {
			req = append(req, f)
		}
	}
	return req
}

// ExpectedContentLength is the rough expected document length used by the
// length anomaly check. Categories with prior positive feedback are expected
// to be fuller documents.
func (c *Category) ExpectedContentLength() int {
	if c.TrainingExamples > 0 {
		return 500
	}
	return 300
}
