package model

import "sort"

// EntityLabel is a recognized entity class.
type EntityLabel string

const (
	EntityPerson       EntityLabel = "PERSON"
	EntityOrganization EntityLabel = "ORGANIZATION"
	EntityDate         EntityLabel = "DATE"
	EntityMoney        EntityLabel = "MONEY"
	EntityEmail        EntityLabel = "EMAIL"
	EntityPhone        EntityLabel = "PHONE"
	EntityIDNumber     EntityLabel = "ID_NUMBER"
	EntityMedicalCode  EntityLabel = "MEDICAL_CODE"
)

// AllEntityLabels returns all defined entity classes.
func AllEntityLabels() []EntityLabel {
	return []EntityLabel{
		EntityPerson,
		EntityOrganization,
		EntityDate,
		EntityMoney,
		EntityEmail,
		EntityPhone,
		EntityIDNumber,
		EntityMedicalCode,
	}
}

// Entity is a recognized span of text. Start and End are byte offsets into
// the source text. Overlapping spans across different classes are allowed;
// the recognizer does not deduplicate them.
type Entity struct {
	Text       string      `json:"text"`
	Label      EntityLabel `json:"label"`
	Confidence float64     `json:"confidence"`
	Start      int         `json:"start"`
	End        int         `json:"end"`
}

// Entities supports ranking by descending confidence. The sort is stable so
// entities with equal confidence keep their discovery order.
type Entities []Entity

// Sort orders entities by confidence descending.
func (e Entities) Sort() {
	sort.SliceStable(e, func(i, j int) bool {
		return e[i].Confidence > e[j].Confidence
	})
}

// TopN returns the n highest-confidence entities after sorting.
func (e Entities) TopN(n int) Entities {
	if n <= 0 {
		return Entities{}
	}
	e.Sort()
	if n > len(e) {
		n = len(e)
	}
	out := make(Entities, n)
	copy(out, e[:n])
	return out
}
