package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/stan.go"

	"basstatic/internal/models"
)

// CommitRecorder writes the admin commit audit log
type CommitRecorder interface {
	Record(ctx context.Context, rec *models.CommitRecord) error
}

// Invalidator drops cached copies of the events document
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Handlers struct {
	commits CommitRecorder
	cache   Invalidator
}

// NewHandlers accepts a nil commits or cache to skip that side effect
func NewHandlers(commits CommitRecorder, cache Invalidator) *Handlers {
	return &Handlers{
		commits: commits,
		cache:   cache,
	}
}

func (h *Handlers) HandleDocumentPublished(m *stan.Msg) {
	if err := h.documentPublished(context.Background(), m.Data); err != nil {
		slog.Error("Failed to process document published event", "error", err)
		return
	}
	m.Ack()
}

func (h *Handlers) HandleMediaUploaded(m *stan.Msg) {
	if err := h.mediaUploaded(context.Background(), m.Data); err != nil {
		slog.Error("Failed to process media uploaded event", "error", err)
		return
	}
	m.Ack()
}

func (h *Handlers) documentPublished(ctx context.Context, data []byte) error {
	var event models.DocumentPublishedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		// a malformed message will never succeed, so it is dropped
		slog.Error("Failed to unmarshal document published event", "error", err)
		return nil
	}

	slog.Info("Processing document published event", "path", event.Path, "revision", event.Revision)

	// other API instances may still hold the previous document
	if h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			return fmt.Errorf("failed to invalidate cache: %w", err)
		}
	}

	return h.record(ctx, models.CommitKindDocument, event.Path, event.Revision, event.RequestID)
}

func (h *Handlers) mediaUploaded(ctx context.Context, data []byte) error {
	var event models.MediaUploadedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Error("Failed to unmarshal media uploaded event", "error", err)
		return nil
	}

	slog.Info("Processing media uploaded event", "path", event.Path, "revision", event.Revision, "size", event.Size)

	return h.record(ctx, models.CommitKindMedia, event.Path, event.Revision, event.RequestID)
}

func (h *Handlers) record(ctx context.Context, kind, path, revision, requestID string) error {
	if h.commits == nil {
		return nil
	}
	return h.commits.Record(ctx, &models.CommitRecord{
		Kind:      kind,
		Path:      path,
		Revision:  revision,
		RequestID: requestID,
	})
}
