package classify

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/doclens/doclens/internal/model"
)

// typePatterns are the default regex families tried when a field has no
// custom pattern. Phone and number formats follow the Turkish conventions
// of the reference corpus (0xxx xxx xx xx, 1.250,00).
var typePatterns = map[model.FieldType][]*regexp.Regexp{
	model.FieldTypeEmail: {
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	},
	model.FieldTypePhone: {
		regexp.MustCompile(`\b(?:\+90\s?)?(?:\(\d{3}\)\s?)?\d{3}\s?\d{3}\s?\d{2}\s?\d{2}\b`),
		regexp.MustCompile(`\b0\d{3}\s?\d{3}\s?\d{2}\s?\d{2}\b`),
	},
	model.FieldTypeDate: {
		regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\b`),
		regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:Ocak|Şubat|Mart|Nisan|Mayıs|Haziran|Temmuz|Ağustos|Eylül|Ekim|Kasım|Aralık|January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`),
	},
	model.FieldTypeNumber: {
		regexp.MustCompile(`\b\d{1,3}(?:\.\d{3})*(?:,\d{2})?\b`),
	},
}

// ExtractFields pulls structured values out of content for each field spec.
// Strategies per field, first non-empty match wins:
//  1. the field's custom pattern (invalid regexes are skipped with a warning)
//  2. the default pattern family for the field's type
//  3. the field name as a literal label followed by a value token
//
// A field that matches nothing is absent from the result, so callers can
// tell "missing" from "empty". Pure function; calling it twice on the same
// input yields the same output.
func ExtractFields(content string, fields []model.FieldSpec) map[string]model.FieldValue {
	out := make(map[string]model.FieldValue)
	for i := range fields {
		f := &fields[i]
		if raw, ok := extractField(content, f); ok {
			out[f.Name] = parseValue(raw, f.Type)
		}
	}
	return out
}

// ExtractField runs the extraction strategies for a single field spec.
func ExtractField(content string, field *model.FieldSpec) (model.FieldValue, bool) {
	raw, ok := extractField(content, field)
	if !ok {
		return model.FieldValue{}, false
	}
	return parseValue(raw, field.Type), true
}

func extractField(content string, field *model.FieldSpec) (string, bool) {
	// 1. Custom pattern. Fail soft on invalid regexes.
	if field.Pattern != "" {
		re, ok := field.CompiledPattern()
		if !ok {
			zap.L().Warn("extract: invalid custom pattern, skipping",
				zap.String("field", field.Name),
				zap.String("pattern", field.Pattern),
			)
		} else if m := re.FindStringSubmatch(content); m != nil {
			// Prefer the first capture group when the pattern defines one.
			if len(m) > 1 && m[1] != "" {
				return strings.TrimSpace(m[1]), true
			}
			if m[0] != "" {
				return strings.TrimSpace(m[0]), true
			}
		}
	}

	// 2. Type-default patterns.
	for _, re := range typePatterns[field.Type] {
		if m := re.FindString(content); m != "" {
			return m, true
		}
	}

	// 3. Label fallback: "<name>: value" grabs the next token run.
	labelRe, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(field.Name) + `[:\s]+([A-Za-z0-9@._/\-]+)`)
	if err != nil {
		return "", false
	}
	if m := labelRe.FindStringSubmatch(content); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			return v, true
		}
	}
	return "", false
}

// parseValue wraps a raw match in a typed FieldValue. Parsed is false when
// the raw text does not parse as the declared type; the raw match is still
// preserved so nothing extracted is lost.
func parseValue(raw string, kind model.FieldType) model.FieldValue {
	fv := model.FieldValue{Raw: raw, Kind: kind}
	switch kind {
	case model.FieldTypeNumber:
		if n, ok := ParseAmount(raw); ok {
			fv.Number = n
			fv.Parsed = true
		}
	case model.FieldTypeDate:
		if t, ok := parseDate(raw); ok {
			fv.Date = &t
			fv.Parsed = true
		}
	case model.FieldTypeEmail, model.FieldTypePhone, model.FieldTypeText:
		fv.Parsed = raw != ""
	}
	return fv
}

// ParseAmount parses a Turkish-formatted number ("1.250,00") or a plain
// decimal ("1250.00") into a float64.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	// Strip currency markers and surrounding text.
	s = strings.Trim(s, "TL₺$€ \t")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if strings.Contains(s, ",") {
		// Turkish format: dots are thousands separators, comma is decimal.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if strings.Count(s, ".") > 1 {
		// Multiple dots with no comma: thousands separators only.
		s = strings.ReplaceAll(s, ".", "")
	} else if idx := strings.Index(s, "."); idx >= 0 && len(s)-idx-1 == 3 {
		// A single dot followed by exactly three digits is a thousands
		// separator in this corpus (1.250 means 1250).
		s = strings.ReplaceAll(s, ".", "")
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

var monthNames = map[string]time.Month{
	"ocak": time.January, "şubat": time.February, "mart": time.March,
	"nisan": time.April, "mayıs": time.May, "haziran": time.June,
	"temmuz": time.July, "ağustos": time.August, "eylül": time.September,
	"ekim": time.October, "kasım": time.November, "aralık": time.December,
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var numericDateRe = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})$`)
var namedDateRe = regexp.MustCompile(`^(\d{1,2})\s+(\p{L}+)\s+(\d{4})$`)

// parseDate parses day-first numeric dates (15.03.2024, 15/3/24) and
// "15 Mart 2024" / "15 March 2024" style dates.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	}

	if m := namedDateRe.FindStringSubmatch(s); m != nil {
		month, ok := monthNames[fold.String(m[2])]
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if day < 1 || day > 31 {
			return time.Time{}, false
		}
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}
