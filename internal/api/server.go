// Package api exposes internal/service.Compiler over HTTP using huma
// for OpenAPI-documented operations and chi for routing, mirroring the
// teacher's internal/api package shape.
package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/servak/infragraph/internal/api/handler"
	apimiddleware "github.com/servak/infragraph/internal/api/middleware"
	"github.com/servak/infragraph/internal/service"
	"github.com/servak/infragraph/pkg/logger"
)

// Server wires a compiled-graph HTTP surface over a Compiler.
type Server struct {
	api      huma.API
	router   chi.Router
	compiler *service.Compiler
	logger   *logger.Logger
}

// NewServer builds the chi router and registers every huma operation.
func NewServer(compiler *service.Compiler, appLogger *logger.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(apimiddleware.CORS)

	config := huma.DefaultConfig("Infrastructure Graph Compiler API", "1.0.0")
	config.DocsPath = "/docs"
	config.Info.Description = "Compile declarative infrastructure documents into a queryable endpoint graph"
	api := humachi.New(router, config)

	server := &Server{
		api:      api,
		router:   router,
		compiler: compiler,
		logger:   appLogger,
	}
	server.registerRoutes()
	return server
}

func (s *Server) registerRoutes() {
	handler.NewCompilerHandler(s.compiler, s.logger).Register(s.api)
	handler.NewHealthHandler().Register(s.api)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}
