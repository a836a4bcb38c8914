package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"basstatic/internal/logger"
	"basstatic/internal/models"
	"basstatic/internal/render"
	"basstatic/internal/storage"

	"github.com/gin-gonic/gin"
)

// Home - GET /
// Главная страница с активным событием и прошедшими событиями
func (h *Handlers) Home(c *gin.Context) {
	c.HTML(http.StatusOK, render.HomeTemplate, h.services.Site.Home(c.Request.Context()))
}

// EventPage - GET /events/:id
// Страница одного события
func (h *Handlers) EventPage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.HTML(http.StatusNotFound, render.EventTemplate, render.Page{Manifest: render.EventPage})
		return
	}

	page, ok := h.services.Site.Event(c.Request.Context(), id)
	if !ok {
		c.HTML(http.StatusNotFound, render.EventTemplate, page)
		return
	}
	c.HTML(http.StatusOK, render.EventTemplate, page)
}

// Document - GET /data/events.json
// Публичное чтение документа событий
func (h *Handlers) Document(c *gin.Context) {
	data, err := h.services.Site.Document(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("Failed to load event data", "error", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "Event data unavailable"})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// Media - GET /media/*path
// Медиафайлы из объектного хранилища
func (h *Handlers) Media(c *gin.Context) {
	p := "media" + c.Param("path")
	if strings.Contains(p, "..") {
		NotFound(c)
		return
	}

	obj, err := h.media.Get(c.Request.Context(), p)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			NotFound(c)
			return
		}
		logger.WithContext(c.Request.Context()).Error("Failed to read media object", "path", p, "error", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "Media unavailable"})
		return
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(obj.Data)
	}
	c.Data(http.StatusOK, contentType, obj.Data)
}
