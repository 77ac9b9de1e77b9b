// Package ui exposes the profiling engine over HTTP. Handlers are thin: they
// validate the request, call the engine, and serialize the result; every
// engine error surfaces as a JSON body with the proper status code.
package ui

import (
	"github.com/gin-gonic/gin"

	"datascope/internal"
	"datascope/internal/config"
	"datascope/internal/errors"
	"datascope/ports"
)

// Server represents the web server for the profiling API
type Server struct {
	router *gin.Engine
	store  ports.DatasetStore
	charts ports.ChartRenderer
	cfg    *config.Config
	log    *internal.Logger
}

// NewServer creates a new web server instance
func NewServer(store ports.DatasetStore, charts ports.ChartRenderer, cfg *config.Config, log *internal.Logger) *Server {
	gin.SetMode(cfg.Server.GinMode)
	s := &Server{
		router: gin.Default(),
		store:  store,
		charts: charts,
		cfg:    cfg,
		log:    log,
	}
	s.router.MaxMultipartMemory = cfg.Server.MaxUploadBytes
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.POST("/upload", s.handleUpload)
	api.GET("/datasets", s.handleListDatasets)
	api.DELETE("/datasets/:id", s.handleEvictDataset)

	api.GET("/columns/:id", s.handleColumns)
	api.GET("/data-preview/:id", s.handleDataPreview)
	api.GET("/basic-stats/:id", s.handleBasicStats)
	api.GET("/distribution/:id/:column", s.handleDistribution)
	api.POST("/scatter/:id", s.handleScatter)
	api.GET("/correlation/:id", s.handleCorrelation)
	api.GET("/pairplot/:id", s.handlePairPlot)
	api.GET("/missing-analysis/:id", s.handleMissingAnalysis)
	api.GET("/outliers/:id", s.handleOutliers)
	api.POST("/groupby/:id", s.handleGroupBy)
}

// Router exposes the gin engine for tests and for mounting.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := ":" + s.cfg.Server.Port
	s.log.Info("profiling API listening on %s", addr)
	return s.router.Run(addr)
}

// renderError writes the error as JSON with its mapped status code.
func (s *Server) renderError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= 500 {
		s.log.Error("request failed: %v", err)
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
