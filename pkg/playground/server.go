// Package playground serves the tagl pipeline over HTTP.
package playground

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/tylerb/graceful.v1"
)

// Defaults for a zero Config.
const (
	DefaultAddress        = ":8642"
	DefaultTimeout        = 5 * time.Second
	DefaultMaxSourceBytes = 64 * 1024
	DefaultMaxCallDepth   = 1000
)

// Config tunes the playground server.
type Config struct {
	Address        string
	Timeout        time.Duration
	MaxSourceBytes int64
	MaxCallDepth   int
	Version        string
	GitHash        string
	Debug          bool
}

func (cfg Config) withDefaults() Config {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxSourceBytes <= 0 {
		cfg.MaxSourceBytes = DefaultMaxSourceBytes
	}
	if cfg.MaxCallDepth <= 0 {
		cfg.MaxCallDepth = DefaultMaxCallDepth
	}
	if cfg.Version == "" {
		cfg.Version = "development"
	}
	return cfg
}

// Server is the HTTP playground.
type Server struct {
	Config Config
	router *gin.Engine
}

// NewServer builds the router.
func NewServer(cfg Config) *Server {
	s := &Server{Config: cfg.withDefaults()}
	s.router = s.newRouter()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) newRouter() *gin.Engine {
	if !s.Config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// /version API endpoint (without logging!)
	router.GET("/version", s.DoVersion)

	router.Use(requestLogger())
	router.Use(gin.Recovery())
	router.Use(cors("*"))

	router.POST("/run", s.DoRun)
	router.POST("/check", s.DoCheck)
	router.POST("/tokens", s.DoTokens)
	router.POST("/ast", s.DoAST)
	router.GET("/logging/level", s.DoLoggingLevel)
	router.PUT("/logging/level", s.DoLoggingLevel)
	return router
}

// ListenAndServe serves until interrupted, then drains in-flight requests.
func (s *Server) ListenAndServe() error {
	ep := &http.Server{Addr: s.Config.Address, Handler: s.router}
	ep.ReadTimeout = 2 * s.Config.Timeout
	ep.WriteTimeout = 2 * s.Config.Timeout

	worker := &graceful.Server{
		Timeout: s.Config.Timeout,
		Server:  ep,
	}

	log.WithFields(map[string]interface{}{
		"address":          s.Config.Address,
		"timeout":          s.Config.Timeout,
		"max-source-bytes": s.Config.MaxSourceBytes,
		"max-call-depth":   s.Config.MaxCallDepth,
	}).Info("starting playground...")

	if err := worker.ListenAndServe(); err != nil {
		return err
	}
	log.Info("playground stopped")
	return nil
}
