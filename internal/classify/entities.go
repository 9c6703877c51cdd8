package classify

import (
	"regexp"

	"github.com/doclens/doclens/internal/model"
)

// DefaultEntityLimit caps how many entities a classification reports after
// ranking by confidence.
const DefaultEntityLimit = 10

// entityClass is one class of the recognition battery: the class label, a
// deterministic base confidence, and the patterns that detect it. The
// reference behavior randomized confidence around a base per class; that
// randomization is a stand-in for a real scoring model and is replaced here
// with the fixed base so results are reproducible.
type entityClass struct {
	label    model.EntityLabel
	base     float64
	patterns []*regexp.Regexp
}

// entityBattery lists all entity classes in evaluation order. Overlapping
// matches across classes are kept as-is: an 11-digit number inside a phone
// number can surface as both PHONE and ID_NUMBER. That is an accepted
// limitation of the regex approach, not something to silently merge.
var entityBattery = []entityClass{
	{
		label: model.EntityPerson,
		base:  0.80,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?:Dr\.|Doktor|Mr\.|Mrs\.|Ms\.)\s+[A-ZÇĞIİÖŞÜ][a-zçğıiöşü]+\s+[A-ZÇĞIİÖŞÜ][a-zçğıiöşü]+`),
			regexp.MustCompile(`\b[A-ZÇĞIİÖŞÜ][a-zçğıiöşü]+\s+[A-ZÇĞIİÖŞÜ][a-zçğıiöşü]+\b`),
		},
	},
	{
		label: model.EntityOrganization,
		base:  0.82,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[A-ZÇĞIİÖŞÜ][a-zçğıiöşü]+\s+(?:Ltd|A\.Ş\.|Inc|Corp|Company|Şirketi|Hastanesi|Kliniği)`),
			regexp.MustCompile(`\b[A-ZÇĞIİÖŞÜ][A-ZÇĞIİÖŞÜ\s]+(?:Ltd|A\.Ş\.|Inc|Corp|Company|Şirketi|Hastanesi|Kliniği)`),
		},
	},
	{
		label: model.EntityDate,
		base:  0.92,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\b`),
			regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:Ocak|Şubat|Mart|Nisan|Mayıs|Haziran|Temmuz|Ağustos|Eylül|Ekim|Kasım|Aralık|January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`),
		},
	},
	{
		label: model.EntityMoney,
		base:  0.90,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{1,3}(?:\.\d{3})*(?:,\d{2})?\s*(?:TL|USD|EUR)\b`),
			regexp.MustCompile(`\b\d{1,3}(?:\.\d{3})*(?:,\d{2})?\s*[₺$€]`),
			regexp.MustCompile(`[₺$€]\s*\d{1,3}(?:\.\d{3})*(?:,\d{2})?\b`),
		},
	},
	{
		label: model.EntityEmail,
		base:  0.97,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		},
	},
	{
		label: model.EntityPhone,
		base:  0.88,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:\+90\s?)?(?:\(\d{3}\)\s?)?\d{3}\s?\d{3}\s?\d{2}\s?\d{2}\b`),
			regexp.MustCompile(`\b0\d{3}\s?\d{3}\s?\d{2}\s?\d{2}\b`),
		},
	},
	{
		label: model.EntityIDNumber,
		base:  0.85,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{11}\b`),
			regexp.MustCompile(`\b[A-Z]\d{8}\b`),
		},
	},
	{
		label: model.EntityMedicalCode,
		base:  0.75,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[A-Z]\d{2}(?:\.\d{1,2})?\b`),
			regexp.MustCompile(`\b\d{5}-\d{4}-\d{1}\b`),
		},
	},
}

// ExtractEntities runs the full pattern battery over text and returns every
// match as an Entity with byte offsets, ranked by confidence descending.
// Entities of equal confidence keep battery/document order.
func ExtractEntities(text string) model.Entities {
	var entities model.Entities
	for _, class := range entityBattery {
		for _, re := range class.patterns {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				entities = append(entities, model.Entity{
					Text:       text[loc[0]:loc[1]],
					Label:      class.label,
					Confidence: class.base,
					Start:      loc[0],
					End:        loc[1],
				})
			}
		}
	}
	entities.Sort()
	return entities
}

// TopEntities returns the highest-confidence entities up to DefaultEntityLimit.
func TopEntities(text string) model.Entities {
	return ExtractEntities(text).TopN(DefaultEntityLimit)
}
