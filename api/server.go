package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/IliyaMhz/PersonalBlog/config"
	"github.com/IliyaMhz/PersonalBlog/database"
	"github.com/IliyaMhz/PersonalBlog/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	defaultAPIPrefix      = "/api"
	defaultAcceptedOrigin = "http://localhost:5173"
	defaultMaxBodyBytes   = 1 << 20
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database, c map[string]string) (Server, error) {
	// Ensure correct port is set
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(database, withConfig(c), withStartupTime(startupTime))

	// Get timeout values from config with sensible defaults
	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	blogService BlogService
	blogURL     func(id int64) string
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

// withBlogService replaces the service built from the database's repository.
func withBlogService(blogService BlogService) func(*router) {
	return func(r *router) {
		r.blogService = blogService
	}
}

// normalizePrefix turns "api", "/api/" and "/api" into "/api"; "" and "/" mean no prefix.
func normalizePrefix(prefix string) string {
	trimmed := strings.Trim(prefix, "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}

func newRouter(database database.Database, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	apiPrefix := normalizePrefix(config.GetString(router.config, "API_PREFIX", defaultAPIPrefix))
	baseURL := services.GetBaseURL(router.config)
	router.blogURL = func(id int64) string {
		return services.BuildBlogURL(baseURL, apiPrefix, id)
	}

	// Initialize all handlers
	handlers := initializeHandlers(database, router)

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestIDMiddleware)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(MetricsMiddleware)

	// Apply CORS middleware
	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS", []string{defaultAcceptedOrigin})
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))
	chiRouter.Use(ColoredHTTPLoggingMiddleware)

	setupOperationalRoutes(chiRouter, handlers)

	maxBodyBytes := int64(config.GetInt(router.config, "MAX_BODY_BYTES", defaultMaxBodyBytes))
	apiRoutes := func(r chi.Router) {
		r.Use(MaxBodyMiddleware(maxBodyBytes))
		setupBlogRoutes(r, handlers)
	}
	if apiPrefix == "" {
		chiRouter.Group(apiRoutes)
	} else {
		chiRouter.Route(apiPrefix, apiRoutes)
	}

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
