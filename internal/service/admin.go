package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"time"

	apperrors "basstatic/internal/errors"
	"basstatic/internal/logger"
	"basstatic/internal/metrics"
	"basstatic/internal/models"
	"basstatic/internal/storage"
	"basstatic/internal/validation"
)

const (
	DefaultDocumentPath = "data/events.json"
	saveMessage         = "Update events via admin panel"
)

type AdminConfig struct {
	// Secret is the shared admin credential; empty rejects every request
	Secret       string
	DocumentPath string
	// RepositoryConfigured is false when the repository token or name is absent
	RepositoryConfigured bool
	// MediaConfigured is false when the selected media backend is unusable
	MediaConfigured bool
}

// AdminService persists the events document and media files on behalf of
// the admin editor
type AdminService struct {
	cfg       AdminConfig
	committer *committer
	media     MediaStore
	thumbs    *storage.Thumbnailer
	cache     Invalidator
	publisher Publisher
}

// NewAdminService commits media to the repository when media is nil.
// cache and publisher are optional.
func NewAdminService(cfg AdminConfig, contents ContentsAPI, media MediaStore, cache Invalidator, publisher Publisher) *AdminService {
	if cfg.DocumentPath == "" {
		cfg.DocumentPath = DefaultDocumentPath
	}
	c := &committer{contents: contents}
	if media == nil {
		media = &repositoryMedia{committer: *c}
	}

	return &AdminService{
		cfg:       cfg,
		committer: c,
		media:     media,
		thumbs:    storage.NewThumbnailer(),
		cache:     cache,
		publisher: publisher,
	}
}

func (s *AdminService) authorize(credential string) error {
	if credential == "" || s.cfg.Secret == "" {
		return apperrors.Unauthorized()
	}
	if subtle.ConstantTimeCompare([]byte(credential), []byte(s.cfg.Secret)) != 1 {
		return apperrors.Unauthorized()
	}
	return nil
}

// Save commits the whole document as one new revision
func (s *AdminService) Save(ctx context.Context, credential string, document json.RawMessage) (*models.SaveResult, error) {
	if err := s.authorize(credential); err != nil {
		return nil, err
	}
	if len(document) == 0 {
		return nil, apperrors.BadRequest("No data provided", nil)
	}
	if !s.cfg.RepositoryConfigured {
		return nil, apperrors.Misconfigured("repository token or name is not set")
	}

	store, err := models.ParseEventStore(document)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid document", err)
	}
	if err := validation.ValidateStore(store); err != nil {
		return nil, apperrors.BadRequest("Invalid document", err)
	}

	// the raw JSON is re-indented rather than re-encoded so unknown fields survive
	content, err := models.IndentDocument(document)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid document", err)
	}

	revision, err := s.committer.commit(ctx, s.cfg.DocumentPath, content, saveMessage)
	metrics.ObserveCommit(models.CommitKindDocument, err)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to commit events document", "path", s.cfg.DocumentPath, "kind", apperrors.KindOf(err).String(), "error", err)
		return nil, err
	}

	logger.WithContext(ctx).Info("Committed events document", "path", s.cfg.DocumentPath, "revision", revision, "events", len(store.Events))

	s.invalidate(ctx)
	s.publish(ctx, models.EventDocumentPublished, models.DocumentPublishedEvent{
		Path:      s.cfg.DocumentPath,
		Revision:  revision,
		RequestID: logger.RequestIDFromContext(ctx),
		Timestamp: time.Now(),
	})

	return &models.SaveResult{Path: s.cfg.DocumentPath, Revision: revision}, nil
}

// Upload commits one media file under media/events/. With thumb set, an
// image also gets a low resolution placeholder next to it.
func (s *AdminService) Upload(ctx context.Context, credential string, file *models.UploadFile, dest string, thumb bool) (*models.UploadResult, error) {
	if err := s.authorize(credential); err != nil {
		return nil, err
	}
	if file == nil || dest == "" {
		return nil, apperrors.BadRequest("File and path required", nil)
	}
	if !models.IsMediaPath(dest) {
		return nil, apperrors.BadRequest("Invalid upload path", nil)
	}
	if !s.cfg.MediaConfigured {
		return nil, apperrors.Misconfigured("media backend is not configured")
	}

	contentType := file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(file.Data)
	}

	var placeholder []byte
	if thumb {
		if !storage.IsImage(file.Name, contentType) {
			return nil, apperrors.BadRequest("Thumbnails require an image", nil)
		}
		var err error
		if placeholder, err = s.thumbs.Thumbnail(file.Data); err != nil {
			return nil, apperrors.BadRequest("Thumbnails require an image", err)
		}
	}

	result := &models.UploadResult{Path: dest}

	// the placeholder goes first so a failure never leaves a committed file
	// behind an error response
	if placeholder != nil {
		thumbPath := storage.ThumbPath(dest)
		thumbRev, err := s.media.Put(ctx, thumbPath, placeholder, "image/jpeg", uploadMessage(thumbPath))
		metrics.ObserveCommit(models.CommitKindMedia, err)
		if err != nil {
			logger.WithContext(ctx).Error("Failed to commit thumbnail", "path", thumbPath, "error", err)
			return nil, mediaError(err)
		}
		result.ThumbPath = thumbPath
		result.ThumbRevision = thumbRev
	}

	revision, err := s.media.Put(ctx, dest, file.Data, contentType, uploadMessage(dest))
	metrics.ObserveCommit(models.CommitKindMedia, err)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to commit media file", "path", dest, "kind", apperrors.KindOf(mediaError(err)).String(), "error", err)
		if result.ThumbPath == "" {
			return nil, mediaError(err)
		}
		appErr := apperrors.From(mediaError(err))
		detail := "placeholder " + result.ThumbPath + " was committed"
		if appErr.Detail != "" {
			detail = appErr.Detail + "; " + detail
		}
		return nil, &apperrors.Error{Kind: appErr.Kind, Message: appErr.Message, Detail: detail, Err: err}
	}
	result.Revision = revision

	logger.WithContext(ctx).Info("Committed media file", "path", dest, "revision", revision, "size", len(file.Data), "thumb", result.ThumbPath)

	s.publish(ctx, models.EventMediaUploaded, models.MediaUploadedEvent{
		Path:      dest,
		Revision:  revision,
		Size:      len(file.Data),
		RequestID: logger.RequestIDFromContext(ctx),
		Timestamp: time.Now(),
	})

	return result, nil
}

// mediaError classifies a rejected write of the media backend as an
// upstream failure unless it already carries a kind
func mediaError(err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Upstream(err.Error(), err)
}

func uploadMessage(p string) string {
	return "Upload " + path.Base(p) + " via admin"
}

func (s *AdminService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.WithContext(ctx).Warn("Failed to invalidate document cache", "error", err)
	}
}

func (s *AdminService) publish(ctx context.Context, subject string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(subject, data); err != nil {
		logger.WithContext(ctx).Warn("Failed to publish commit event", "subject", subject, "error", err)
	}
}
