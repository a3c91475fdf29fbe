// Package api assembles the HTTP server: services, middleware and routes.
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/andraskurtos/movie-recommender/internal/catalog"
	"github.com/andraskurtos/movie-recommender/internal/config"
	"github.com/andraskurtos/movie-recommender/internal/events"
	"github.com/andraskurtos/movie-recommender/internal/genres"
	"github.com/andraskurtos/movie-recommender/internal/recommender"
	"github.com/andraskurtos/movie-recommender/internal/search"
	"github.com/andraskurtos/movie-recommender/internal/users"
)

// Server handles HTTP requests for the movie recommender API.
type Server struct {
	echo   *echo.Echo
	db     *sql.DB
	hub    *events.Hub
	logger zerolog.Logger
	cfg    *config.Config

	catalogService     *catalog.Service
	searchService      *search.Service
	genreService       *genres.Service
	userService        *users.Service
	recommenderService *recommender.Service
}

// NewServer creates a new API server instance.
func NewServer(db *sql.DB, hub *events.Hub, cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:   e,
		db:     db,
		hub:    hub,
		logger: logger,
		cfg:    cfg,
	}

	s.catalogService = catalog.NewService(db, hub, logger)
	s.searchService = search.NewService(s.catalogService.Store(), logger)
	s.genreService = genres.NewService(db, logger)

	tokens, err := users.NewTokenService(db, cfg.Auth.JWTSecret)
	if err != nil {
		return nil, err
	}
	s.userService = users.NewService(db, tokens, logger)

	predictor := recommender.NewScriptPredictor(
		cfg.Recommender.Python,
		cfg.Recommender.Script,
		cfg.Recommender.Timeout,
		logger,
	)
	s.recommenderService = recommender.NewService(s.catalogService, s.userService, predictor, logger)

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogMethod:   true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Err(v.Error).
					Msg("request error")
			} else {
				s.logger.Info().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Msg("request")
			}
			return nil
		},
	}))

	s.echo.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			// Skip compression for WebSocket
			return c.Request().Header.Get("Upgrade") == "websocket"
		},
	}))
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ws", s.hub.HandleWebSocket)

	api := s.echo.Group("/api/v1")
	api.GET("/status", s.getStatus)

	moviesGroup := api.Group("/movies")
	catalog.NewHandlers(s.catalogService).RegisterRoutes(moviesGroup)
	search.NewHandlers(s.searchService).RegisterRoutes(moviesGroup)

	genres.NewHandlers(s.genreService).RegisterRoutes(api.Group("/genres"))

	users.NewHandlers(s.userService).RegisterRoutes(api.Group("/users"), api.Group("/auth"))

	recommender.NewHandlers(s.recommenderService).RegisterRoutes(api.Group("/recommendations"))
}

// Start begins listening for HTTP requests.
func (s *Server) Start(address string) error {
	s.logger.Info().Str("address", address).Msg("starting HTTP server")
	return s.echo.Start(address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// EnsureDefaults seeds reference data such as the genre taxonomy.
func (s *Server) EnsureDefaults(ctx context.Context) error {
	return genres.EnsureDefaults(ctx, s.db)
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getStatus(c echo.Context) error {
	ctx := c.Request().Context()

	movieCount, _ := s.catalogService.Count(ctx)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"version":    "0.1.0",
		"startTime":  time.Now().Format(time.RFC3339),
		"movieCount": movieCount,
	})
}
