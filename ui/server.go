package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net/http"
	"strings"
	"time"

	"heartbi/domain/core"
	"heartbi/internal"
	"heartbi/internal/dataset"
	"heartbi/internal/metrics"
	"heartbi/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html static/css/*
var embeddedFiles embed.FS

// SessionStore is the per-visitor dataset state the handlers read and replace
type SessionStore interface {
	Get(ctx context.Context, id core.SessionID) *session.Snapshot
	Replace(ctx context.Context, id core.SessionID, upload *dataset.Upload) *session.Snapshot
	Reset(ctx context.Context, id core.SessionID) *session.Snapshot
}

// Options configures the dashboard server
type Options struct {
	Sessions       SessionStore
	Metrics        *metrics.Metrics
	Logger         *internal.Logger
	AssetsDir      string
	MaxUploadBytes int64
	CORSOrigins    []string
}

// Server represents the web server for the heart-disease dashboard
type Server struct {
	router         *gin.Engine
	sessions       SessionStore
	metrics        *metrics.Metrics
	logger         *internal.Logger
	templates      *template.Template
	assetsDir      string
	maxUploadBytes int64
}

// NewServer parses the embedded templates and registers middleware and routes
func NewServer(opts Options) (*Server, error) {
	if opts.Sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if opts.AssetsDir == "" {
		opts.AssetsDir = "."
	}

	s := &Server{
		router:         gin.New(),
		sessions:       opts.Sessions,
		metrics:        opts.Metrics,
		logger:         logger.With("UI"),
		assetsDir:      opts.AssetsDir,
		maxUploadBytes: opts.MaxUploadBytes,
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}

	s.setupMiddleware(opts.CORSOrigins)
	s.setupRoutes()
	return s, nil
}

func (s *Server) parseTemplates() error {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"pct": func(v, of float64) float64 {
			if of == 0 {
				return 0
			}
			return v / of * 100
		},
		"fixed": func(v float64) string {
			if math.IsNaN(v) {
				return "—"
			}
			return fmt.Sprintf("%.2f", v)
		},
		"upper": strings.ToUpper,
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = templates
	s.logger.Debug("parsed templates: %s", templates.DefinedTemplates())
	return nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(gin.Logger(), gin.Recovery())

	if len(origins) > 0 {
		s.router.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
		s.logger.Info("CORS enabled for %v", origins)
	}

	s.router.Use(sessionMiddleware(s.logger))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		s.logger.Error("error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/health", s.handleHealth)

	// Dataset
	s.router.POST("/dataset/upload", s.handleDatasetUpload)
	s.router.POST("/dataset/reset", s.handleDatasetReset)

	// Prediction, form or JSON
	s.router.POST("/predict", s.handlePredict)

	// JSON endpoints
	api := s.router.Group("/api")
	api.GET("/dataset/overview", s.handleDatasetOverview)
	api.GET("/dataset/describe", s.handleDatasetDescribe)
	api.GET("/dataset/histogram", s.handleDatasetHistogram)
	api.GET("/results", s.handleResults)

	// Downloads
	s.router.GET("/export/:format", s.handleExport)
	s.router.GET("/assets/:name", s.handleAsset)
}

// Handler exposes the router, e.g. for httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("starting dashboard on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
