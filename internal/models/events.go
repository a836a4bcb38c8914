package models

import "time"

// NATS Event Types
const (
	EventDocumentPublished = "document.published"
	EventMediaUploaded     = "media.uploaded"
)

// Commit kinds recorded in the audit log
const (
	CommitKindDocument = "document"
	CommitKindMedia    = "media"
)

// DocumentPublishedEvent represents a committed events document
type DocumentPublishedEvent struct {
	Path      string    `json:"path"`
	Revision  string    `json:"revision"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MediaUploadedEvent represents a committed media file
type MediaUploadedEvent struct {
	Path      string    `json:"path"`
	Revision  string    `json:"revision"`
	Size      int       `json:"size"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
