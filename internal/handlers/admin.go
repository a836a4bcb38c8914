package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	apperrors "basstatic/internal/errors"
	"basstatic/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	defaultCommitsLimit = 50
	maxCommitsLimit     = 200
)

// Save - POST /api/admin/save
// Сохранить документ событий одним коммитом
func (h *Handlers) Save(c *gin.Context) {
	var req models.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest("Invalid JSON body", err))
		return
	}

	result, err := h.services.Admin.Save(c.Request.Context(), req.Secret(), req.Payload())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SaveResponse{
		OK:       true,
		Revision: result.Revision,
		Commit:   result.Revision,
	})
}

// Upload - POST /api/admin/upload
// Загрузить медиафайл (multipart: password, file, path, thumb)
func (h *Handlers) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploadMaxBytes)
	if err := c.Request.ParseMultipartForm(h.uploadMaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, apperrors.BadRequest("File too large", err))
			return
		}
		respondError(c, apperrors.BadRequest("Invalid form data", err))
		return
	}

	credential := c.PostForm("password")
	if credential == "" {
		credential = c.PostForm("credential")
	}

	thumb, err := models.ParseFlexibleBool(c.PostForm("thumb"))
	if err != nil {
		respondError(c, apperrors.BadRequest("Invalid thumb flag", err))
		return
	}

	var file *models.UploadFile
	header, err := c.FormFile("file")
	switch {
	case err == nil:
		if file, err = readUpload(header); err != nil {
			respondError(c, apperrors.Internal(err))
			return
		}
	case errors.Is(err, http.ErrMissingFile):
	default:
		respondError(c, apperrors.BadRequest("Invalid form data", err))
		return
	}

	result, err := h.services.Admin.Upload(c.Request.Context(), credential, file, c.PostForm("path"), thumb.Bool())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UploadResponse{
		OK:       true,
		Path:     result.Path,
		Revision: result.Revision,
		Commit:   result.Revision,
		Thumb:    result.ThumbPath,
	})
}

func readUpload(header *multipart.FileHeader) (*models.UploadFile, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &models.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// ListCommits - GET /api/admin/commits
// Журнал коммитов админки (kind, limit)
func (h *Handlers) ListCommits(c *gin.Context) {
	if h.commits == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Commit log is disabled"})
		return
	}

	kind := c.Query("kind")
	if kind != "" && kind != models.CommitKindDocument && kind != models.CommitKindMedia {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "kind must be document or media"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultCommitsLimit)))
	if err != nil || limit < 1 || limit > maxCommitsLimit {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "limit must be between 1 and 200"})
		return
	}

	records, err := h.commits.List(c.Request.Context(), kind, limit)
	if err != nil {
		respondError(c, apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, records)
}
