// Package ui exposes the comparison engine over HTTP.
package ui

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"geoks/adapters/postgres"
	"geoks/adapters/stats/kstest"
	"geoks/internal/config"
)

// Server represents the web server for the comparison API
type Server struct {
	router  *gin.Engine
	tester  *kstest.Tester
	results *postgres.ResultRepository // nil when persistence is not configured
	cfg     config.Config
}

// NewServer creates a new web server instance. A nil repository disables the
// results endpoints; compare and filter still work.
func NewServer(cfg config.Config, tester *kstest.Tester, results *postgres.ResultRepository) *Server {
	gin.SetMode(cfg.Server.GinMode)
	s := &Server{
		router:  gin.Default(),
		tester:  tester,
		results: results,
		cfg:     cfg,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	api.POST("/compare", s.handleCompare)
	api.POST("/filter", s.handleFilter)
	api.POST("/visualize", s.handleVisualize)
	api.POST("/report", s.handleReport)

	if s.results != nil {
		api.GET("/results", s.handleListResults)
		api.GET("/results/:id", s.handleGetResult)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Server.Port)
	log.Printf("[Server] listening on %s (persistence: %v)", addr, s.results != nil)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}
