package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentMetadata is the session-scoped record kept for each processed
// upload. Records are immutable after creation and discarded with the
// session; the cross-document anomaly and relationship checks read them as
// a snapshot.
type DocumentMetadata struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Category      string                `json:"category"`
	UploadDate    time.Time             `json:"upload_date"`
	Size          int                   `json:"size"`
	Content       string                `json:"content"`
	ExtractedData map[string]FieldValue `json:"extracted_data,omitempty"`
	Result        *ClassificationResult `json:"result,omitempty"`
}

// NewDocument builds an immutable document record from a classification.
func NewDocument(name, content string, result *ClassificationResult) DocumentMetadata {
	return DocumentMetadata{
		ID:            uuid.New().String(),
		Name:          name,
		Category:      result.Category,
		UploadDate:    time.Now().UTC(),
		Size:          len(content),
		Content:       content,
		ExtractedData: result.ExtractedData,
		Result:        result,
	}
}

// RelationshipType describes why documents were grouped together.
type RelationshipType string

const (
	RelationEntity   RelationshipType = "entity"
	RelationTemporal RelationshipType = "temporal"
	RelationContent  RelationshipType = "content"
)

// DocumentGroup is a set of related session documents.
type DocumentGroup struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Documents        []DocumentMetadata `json:"documents"`
	CommonFields     []string           `json:"common_fields"`
	RelationshipType RelationshipType   `json:"relationship_type"`
	Confidence       float64            `json:"confidence"`
}
