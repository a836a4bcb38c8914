package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"basstatic/internal/cache"
	"basstatic/internal/external"
	"basstatic/internal/metrics"
)

// Source loads the raw events document
type Source interface {
	Load(ctx context.Context) ([]byte, error)
	Name() string
}

// FileSource reads the document from the deployed site tree
type FileSource struct {
	Path string
}

func (s *FileSource) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return data, nil
}

func (s *FileSource) Name() string { return "file" }

// FileReader is the read half of the repository contents API
type FileReader interface {
	GetFile(ctx context.Context, path string) (*external.FileInfo, error)
}

// UpstreamSource reads the document straight from the repository branch, so
// the site reflects a save before the next deploy
type UpstreamSource struct {
	Contents FileReader
	Path     string
}

func (s *UpstreamSource) Load(ctx context.Context) ([]byte, error) {
	info, err := s.Contents.GetFile(ctx, s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.Path, err)
	}
	// the contents API omits inline content for large files
	if len(info.Content) == 0 {
		return nil, fmt.Errorf("%s has no inline content (sha %s)", s.Path, info.SHA)
	}
	return info.Content, nil
}

func (s *UpstreamSource) Name() string { return "upstream" }

// Cache is the subset of the document cache a source needs
type Cache interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, data []byte) error
}

// CachedSource serves the document from Redis and falls back to the inner
// source on a miss. Cache failures never fail a load.
type CachedSource struct {
	Inner Source
	Cache Cache
}

func (s *CachedSource) Load(ctx context.Context) ([]byte, error) {
	data, err := s.Cache.Get(ctx)
	if err == nil {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return data, nil
	}
	if errors.Is(err, cache.ErrCacheMiss) {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	} else {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		slog.Warn("Document cache lookup failed", "error", err)
	}

	data, err = s.Inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.Cache.Set(ctx, data); err != nil {
		slog.Warn("Failed to cache document", "error", err)
	}
	return data, nil
}

func (s *CachedSource) Name() string { return s.Inner.Name() }
