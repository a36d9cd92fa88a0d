// Package server wires the Gin router, the API and the embedded web page.
package server

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/api"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/config"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/fetch"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/service/dataset"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/table"
)

//go:embed web
var staticFiles embed.FS

// Server is the HTTP server.
type Server struct {
	router *gin.Engine
	store  *dataset.Store
	api    *api.Handler
}

// NewServer creates the server with its pipeline dependencies.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	store := dataset.NewStore()
	fetcher := fetch.NewClient(time.Duration(cfg.Data.TimeoutSeconds) * time.Second)
	mapping := table.Mapping{
		FarmerCode: cfg.Columns.FarmerCode,
		Village:    cfg.Columns.Village,
		Group:      cfg.Columns.Group,
	}
	builder := dataset.NewBuilder(fetcher, mapping, store)

	s := &Server{
		router: gin.Default(),
		store:  store,
		api:    api.NewHandler(cfg, builder, store),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	sub, _ := fs.Sub(staticFiles, "web")
	s.router.GET("/", func(c *gin.Context) {
		data, _ := fs.ReadFile(sub, "index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
	s.router.NoRoute(func(c *gin.Context) {
		data, _ := fs.ReadFile(sub, "index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
