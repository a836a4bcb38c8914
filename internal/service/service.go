package service

import (
	"context"

	"basstatic/internal/external"
	"basstatic/internal/store"
)

// ContentsAPI is the hosted repository the admin commits to
type ContentsAPI interface {
	GetFile(ctx context.Context, path string) (*external.FileInfo, error)
	PutFile(ctx context.Context, req external.PutFileRequest) (*external.PutFileResponse, error)
}

// MediaStore persists one media file and returns its new revision
type MediaStore interface {
	Put(ctx context.Context, path string, data []byte, contentType, message string) (string, error)
}

// Publisher announces commits on the message bus
type Publisher interface {
	Publish(subject string, data interface{}) error
}

// Invalidator drops cached copies of the document
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Services struct {
	Admin *AdminService
	Site  *SiteService
}

func NewServices(adminCfg AdminConfig, contents ContentsAPI, media MediaStore, source store.Source, cache Invalidator, publisher Publisher) *Services {
	return &Services{
		Admin: NewAdminService(adminCfg, contents, media, cache, publisher),
		Site:  NewSiteService(source),
	}
}
