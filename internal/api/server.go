package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"basstatic/internal/cache"
	"basstatic/internal/config"
	"basstatic/internal/database"
	"basstatic/internal/external"
	"basstatic/internal/handlers"
	"basstatic/internal/messaging"
	"basstatic/internal/metrics"
	"basstatic/internal/middleware"
	"basstatic/internal/render"
	"basstatic/internal/repository"
	"basstatic/internal/service"
	"basstatic/internal/storage"
	"basstatic/internal/store"

	"github.com/gin-gonic/gin"
)

// Server представляет HTTP сервер сайта и админки
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	cache    *cache.DocumentCache
	media    *storage.MinIOStore
	services *service.Services
	repos    *repository.Repositories
}

// NewServer создает новый экземпляр сервера. Redis, NATS, Postgres и MinIO
// подключаются только если включены; недоступный Redis или NATS не мешает старту.
func NewServer(cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	s := &Server{config: cfg}
	if err := s.connect(); err != nil {
		s.Cleanup()
		return nil, err
	}

	contents := external.NewContentsClient(cfg.Repository)

	var source store.Source
	switch cfg.DocumentSource {
	case config.DocumentSourceUpstream:
		source = &store.UpstreamSource{Contents: contents, Path: cfg.DocumentPath}
	default:
		source = &store.FileSource{Path: filepath.Join(cfg.SiteDir, filepath.FromSlash(cfg.DocumentPath))}
	}

	// Интерфейсы получают nil только явно, иначе nil-указатель станет непустым интерфейсом
	var (
		invalidator service.Invalidator
		publisher   service.Publisher
		mediaStore  service.MediaStore
	)
	if s.cache != nil {
		source = &store.CachedSource{Inner: source, Cache: s.cache}
		invalidator = s.cache
	}
	if s.nats != nil {
		publisher = s.nats
	}

	mediaConfigured := cfg.Repository.Configured()
	if cfg.MediaBackend == config.MediaBackendMinIO {
		mediaConfigured = s.media != nil
		if s.media != nil {
			mediaStore = s.media
		}
	}

	s.services = service.NewServices(service.AdminConfig{
		Secret:               cfg.AdminPassword,
		DocumentPath:         cfg.DocumentPath,
		RepositoryConfigured: cfg.Repository.Configured(),
		MediaConfigured:      mediaConfigured,
	}, contents, mediaStore, source, invalidator, publisher)

	tmpl, err := render.Templates()
	if err != nil {
		s.Cleanup()
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.SetHTMLTemplate(tmpl)

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Timeout(cfg.RequestTimeout))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics())
	}

	s.router = router
	s.setupRoutes()

	return s, nil
}

// connect подключает включенные в конфигурации внешние сервисы
func (s *Server) connect() error {
	cfg := s.config

	if cfg.Database.Enabled {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = db
		if err := db.RunMigrations(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		s.repos = repository.NewRepositories(db)
	}

	if cfg.Cache.Enabled {
		dc, err := cache.NewDocumentCache(cfg.Cache)
		if err != nil {
			slog.Warn("Document cache unavailable, serving without cache", "error", err)
		} else {
			s.cache = dc
		}
	}

	if cfg.NATS.Enabled {
		nc, err := messaging.NewNATSClient(cfg.NATS)
		if err != nil {
			slog.Warn("NATS unavailable, commit events will not be published", "error", err)
		} else {
			s.nats = nc
		}
	}

	if cfg.MediaBackend == config.MediaBackendMinIO {
		if !cfg.MinIOConfigured() {
			slog.Warn("MinIO media backend selected but credentials are missing")
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ms, err := storage.NewMinIOStore(ctx, cfg.MinIO)
		if err != nil {
			return fmt.Errorf("failed to connect to object store: %w", err)
		}
		s.media = ms
	}

	return nil
}

// setupRoutes настраивает все роуты
func (s *Server) setupRoutes() {
	opts := handlers.Options{UploadMaxBytes: s.config.UploadMaxBytes}
	if s.repos != nil {
		opts.Commits = s.repos.Commits
	}
	if s.media != nil {
		opts.Media = s.media
	}
	h := handlers.NewHandlers(s.services, opts)

	s.router.NoMethod(handlers.MethodNotAllowed)
	s.router.NoRoute(handlers.NotFound)

	// Публичный сайт
	s.router.GET("/", h.Home)
	s.router.GET("/events/:id", h.EventPage)
	s.router.GET("/data/events.json", h.Document)
	s.router.Static("/static", filepath.Join(s.config.SiteDir, "static"))
	if s.media != nil {
		s.router.GET("/media/*path", h.Media)
	} else {
		s.router.Static("/media", filepath.Join(s.config.SiteDir, "media"))
	}

	// Админка; пароль проверяет сервис, а не middleware
	admin := s.router.Group("/api/admin")
	{
		admin.POST("/save", h.Save)
		admin.POST("/upload", h.Upload)
		admin.GET("/commits", middleware.AdminAuth(s.config.AdminPassword), h.ListCommits)
	}

	// Старые адреса функций админки
	legacy := s.router.Group("/.netlify/functions")
	{
		legacy.POST("/admin-save", h.Save)
		legacy.POST("/admin-upload", h.Upload)
	}

	s.router.GET("/health", s.healthCheck)
	if s.config.MetricsEnabled {
		s.router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
}

// healthCheck обрабатывает health check запросы
func (s *Server) healthCheck(c *gin.Context) {
	resp := gin.H{
		"status":  "ok",
		"service": "basstatic-api",
		"version": "1.0.0",
	}
	if s.db != nil {
		check := s.db.HealthCheck(c.Request.Context())
		resp["database"] = check
		if check.Status != "healthy" {
			resp["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			slog.Error("Error closing cache connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
