package store

import (
	"context"

	"github.com/doclens/doclens/internal/model"
)

// DocumentFilter specifies criteria for listing session documents.
type DocumentFilter struct {
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// Store persists the session's processed documents and feedback events.
// The document list doubles as the history snapshot for the cross-document
// anomaly and relationship checks.
type Store interface {
	// Documents
	SaveDocument(ctx context.Context, doc model.DocumentMetadata) error
	GetDocument(ctx context.Context, id string) (*model.DocumentMetadata, error)
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]model.DocumentMetadata, error)
	// ResetSession drops all documents and returns how many were removed.
	ResetSession(ctx context.Context) (int, error)

	// Feedback
	RecordFeedback(ctx context.Context, docID, categoryID, verdict string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
