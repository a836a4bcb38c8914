package handlers

import (
	"context"
	"log/slog"
	"net/http"

	apperrors "basstatic/internal/errors"
	"basstatic/internal/logger"
	"basstatic/internal/models"
	"basstatic/internal/service"
	"basstatic/internal/storage"

	"github.com/gin-gonic/gin"
)

// CommitLister reads the admin commit audit log
type CommitLister interface {
	List(ctx context.Context, kind string, limit int) ([]models.CommitRecord, error)
}

// MediaReader serves media files kept outside the site tree
type MediaReader interface {
	Get(ctx context.Context, path string) (*storage.Object, error)
}

type Handlers struct {
	services       *service.Services
	commits        CommitLister
	media          MediaReader
	uploadMaxBytes int64
}

type Options struct {
	// Commits is nil when the audit log is disabled
	Commits CommitLister
	// Media is nil when media files are served from the site tree
	Media          MediaReader
	UploadMaxBytes int64
}

func NewHandlers(services *service.Services, opts Options) *Handlers {
	if opts.UploadMaxBytes <= 0 {
		opts.UploadMaxBytes = 25 << 20
	}
	return &Handlers{
		services:       services,
		commits:        opts.Commits,
		media:          opts.Media,
		uploadMaxBytes: opts.UploadMaxBytes,
	}
}

// respondError отвечает {error, detail?} со статусом, соответствующим виду ошибки
func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	log := logger.WithContext(c.Request.Context())

	switch appErr.Kind {
	case apperrors.KindInternal, apperrors.KindMisconfigured, apperrors.KindUpstream:
		log.Error("Admin request failed", "kind", appErr.Kind.String(), "error", err)
	default:
		log.Warn("Admin request rejected", "kind", appErr.Kind.String(), "error", err)
	}

	c.Error(err)
	c.JSON(appErr.Kind.StatusCode(), models.ErrorResponse{
		Error:  appErr.Message,
		Detail: appErr.Detail,
	})
}

// MethodNotAllowed отвечает 405 для неподдерживаемых методов
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{Error: "Method not allowed"})
}

// NotFound отвечает 404 в том же формате
func NotFound(c *gin.Context) {
	slog.Debug("Route not found", "path", c.Request.URL.Path)
	c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
}
