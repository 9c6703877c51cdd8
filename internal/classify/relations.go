package classify

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/doclens/doclens/internal/model"
)

// Relationship grouping runs over the immutable session snapshot and never
// mutates the documents. A document may appear in several groups; groups
// with fewer than two members are discarded.

// FindRelationships applies all three grouping strategies to the snapshot
// and returns their combined result: shared extracted values first, then
// temporal clusters, then same-category content clusters.
func FindRelationships(docs []model.DocumentMetadata) []model.DocumentGroup {
	groups := GroupByEntity(docs)
	groups = append(groups, GroupByTime(docs)...)
	groups = append(groups, GroupByContent(docs)...)
	return groups
}

// GroupByEntity clusters documents that share an extracted field value,
// such as two invoices naming the same company. Short values are skipped
// since they collide too easily.
func GroupByEntity(docs []model.DocumentMetadata) []model.DocumentGroup {
	type member struct {
		doc    model.DocumentMetadata
		fields map[string]bool
	}
	byValue := map[string][]member{}
	for _, doc := range docs {
		seen := map[string]map[string]bool{}
		for name, fv := range doc.ExtractedData {
			if len(fv.Raw) <= 3 {
				continue
			}
			key := fold.String(fv.Raw)
			if seen[key] == nil {
				seen[key] = map[string]bool{}
			}
			seen[key][name] = true
		}
		for key, fields := range seen {
			byValue[key] = append(byValue[key], member{doc: doc, fields: fields})
		}
	}

	keys := make([]string, 0, len(byValue))
	for key := range byValue {
		if len(byValue[key]) >= 2 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var groups []model.DocumentGroup
	for _, key := range keys {
		members := byValue[key]
		common := map[string]bool{}
		group := model.DocumentGroup{
			ID:               uuid.New().String(),
			Name:             fmt.Sprintf("Shared value: %s", key),
			RelationshipType: model.RelationEntity,
			Confidence:       0.9,
		}
		for _, m := range members {
			group.Documents = append(group.Documents, m.doc)
			for name := range m.fields {
				common[name] = true
			}
		}
		for name := range common {
			group.CommonFields = append(group.CommonFields, name)
		}
		sort.Strings(group.CommonFields)
		groups = append(groups, group)
	}
	return groups
}

// GroupByTime clusters documents by calendar month. The month is taken from
// the first extracted date field when one parsed, otherwise from the upload
// timestamp.
func GroupByTime(docs []model.DocumentMetadata) []model.DocumentGroup {
	byMonth := map[string][]model.DocumentMetadata{}
	for _, doc := range docs {
		month := doc.UploadDate.Format("2006-01")
		names := make([]string, 0, len(doc.ExtractedData))
		for name := range doc.ExtractedData {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if d := doc.ExtractedData[name].Date; d != nil {
				month = d.Format("2006-01")
				break
			}
		}
		byMonth[month] = append(byMonth[month], doc)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		if len(byMonth[month]) >= 2 {
			months = append(months, month)
		}
	}
	sort.Strings(months)

	var groups []model.DocumentGroup
	for _, month := range months {
		groups = append(groups, model.DocumentGroup{
			ID:               uuid.New().String(),
			Name:             fmt.Sprintf("Documents from %s", month),
			Documents:        byMonth[month],
			RelationshipType: model.RelationTemporal,
			Confidence:       0.7,
		})
	}
	return groups
}

// GroupByContent clusters same-category documents whose contents actually
// resemble each other. A category cluster is kept only when the mean
// pairwise similarity clears 0.3; the mean doubles as the group confidence.
func GroupByContent(docs []model.DocumentMetadata) []model.DocumentGroup {
	byCategory := map[string][]model.DocumentMetadata{}
	for _, doc := range docs {
		if doc.Category != model.UnclassifiedLabel {
			byCategory[doc.Category] = append(byCategory[doc.Category], doc)
		}
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		if len(byCategory[category]) >= 2 {
			categories = append(categories, category)
		}
	}
	sort.Strings(categories)

	var groups []model.DocumentGroup
	for _, category := range categories {
		members := byCategory[category]
		var total float64
		var pairs int
		for i := range members {
			for j := i + 1; j < len(members); j++ {
				total += jaccardSimilarity(fold.String(members[i].Content), fold.String(members[j].Content))
				pairs++
			}
		}
		mean := total / float64(pairs)
		if mean < 0.3 {
			continue
		}
		groups = append(groups, model.DocumentGroup{
			ID:               uuid.New().String(),
			Name:             fmt.Sprintf("Similar %s documents", category),
			Documents:        members,
			RelationshipType: model.RelationContent,
			Confidence:       mean,
		})
	}
	return groups
}
