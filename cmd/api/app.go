package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"

	"vedur/internal/config"
	"vedur/internal/locations"
	"vedur/internal/search"
	"vedur/internal/view"
	"vedur/internal/weather"
)

// App encapsulates application dependencies
type App struct {
	router         *gin.Engine
	api            huma.API
	logger         *slog.Logger
	cfg            *config.Config
	catalog        *locations.Catalog
	view           *view.View
	search         *search.Controller
	weatherService weather.Service
	assets         fs.FS
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize weather service
	weatherSvc, err := weather.NewWeatherService(cfg, logger)
	if err != nil {
		return nil, err
	}

	return NewAppWithServices(cfg, logger, weatherSvc)
}

// NewAppWithServices creates an application around the given weather service
func NewAppWithServices(cfg *config.Config, logger *slog.Logger, weatherSvc weather.Service) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	locs := cfg.Locations
	if len(locs) == 0 {
		locs = locations.Defaults
	}
	catalog, err := locations.NewCatalog(locs)
	if err != nil {
		return nil, fmt.Errorf("failed to build location catalog: %w", err)
	}

	formatter, err := view.NewFormatter(cfg.App.Locale, cfg.App.DisplayTimezone)
	if err != nil {
		return nil, err
	}
	v := view.New(formatter)

	assets, err := fs.Sub(view.Assets, "assets")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded assets: %w", err)
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// Create Huma API on the gin router
	humaConfig := huma.DefaultConfig("Veðrið API", "1.0.0")
	humaConfig.Info.Description = "Hourly temperature and precipitation forecasts for a fixed set of locations"
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://localhost%s", cfg.GetServerAddr()), Description: "Development server"},
	}

	app := &App{
		router:         router,
		api:            humagin.New(router, humaConfig),
		logger:         logger,
		cfg:            cfg,
		catalog:        catalog,
		view:           v,
		search:         search.NewController(weatherSvc, v, logger),
		weatherService: weatherSvc,
		assets:         assets,
	}

	logger.Info("application initialized",
		"locations", len(locs),
		"locale", formatter.Locale().String(),
	)

	// Register routes
	app.registerRoutes()

	return app, nil
}

// Handler returns the HTTP handler serving the application
func (app *App) Handler() http.Handler {
	return app.router
}

// Run serves HTTP on addr until ctx is cancelled
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
