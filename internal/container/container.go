package container

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"heartbi/internal"
	"heartbi/internal/config"
	"heartbi/internal/dataset"
	"heartbi/internal/metrics"
	"heartbi/internal/session"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	HTTPClient *http.Client
	Metrics    *metrics.Metrics

	// Dataset components
	Loader   *dataset.Loader
	Sessions *session.Store
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level), os.Stderr),
	}

	c.initInfrastructure()
	c.initDataset()

	c.Logger.With("Container").Info("container initialized (dataset url %s, session ttl %s)",
		cfg.Data.DefaultURL, cfg.Session.TTL)
	return c, nil
}

// initInfrastructure creates the shared HTTP client and metrics registry
func (c *Container) initInfrastructure() {
	c.HTTPClient = &http.Client{Timeout: c.Config.Data.FetchTimeout}
	c.Metrics = metrics.New()
}

// initDataset wires the loader into the per-session store
func (c *Container) initDataset() {
	c.Loader = dataset.NewLoader(c.HTTPClient, c.Logger)
	c.Sessions = session.NewStore(c.Loader, session.Options{
		DefaultURL: c.Config.Data.DefaultURL,
		TTL:        c.Config.Session.TTL,
		Metrics:    c.Metrics,
		Logger:     c.Logger,
	})
}

// Shutdown releases held resources
func (c *Container) Shutdown(ctx context.Context) error {
	c.HTTPClient.CloseIdleConnections()
	c.Logger.With("Container").Info("container shutdown complete")
	return nil
}
