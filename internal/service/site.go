package service

import (
	"context"

	"basstatic/internal/logger"
	"basstatic/internal/metrics"
	"basstatic/internal/models"
	"basstatic/internal/render"
	"basstatic/internal/store"
)

// SiteService backs the public pages and the public document read path
type SiteService struct {
	source store.Source
}

func NewSiteService(source store.Source) *SiteService {
	return &SiteService{source: source}
}

// Document returns the raw events document
func (s *SiteService) Document(ctx context.Context) ([]byte, error) {
	data, err := s.source.Load(ctx)
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}
	metrics.DocumentLoads.WithLabelValues(s.source.Name(), result).Inc()
	return data, err
}

// load never fails: a document that cannot be fetched or parsed is logged
// and the page keeps its static content
func (s *SiteService) load(ctx context.Context) *models.EventStore {
	data, err := s.Document(ctx)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to load event data", "source", s.source.Name(), "error", err)
		return nil
	}
	doc, err := models.ParseEventStore(data)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to parse event data", "source", s.source.Name(), "error", err)
		return nil
	}
	return doc
}

// Home renders the landing page
func (s *SiteService) Home(ctx context.Context) render.Page {
	return render.Render(s.load(ctx), render.HomePage)
}

// Event renders the page of one event
func (s *SiteService) Event(ctx context.Context, id int64) (render.Page, bool) {
	return render.RenderEvent(s.load(ctx), id, render.EventPage)
}
