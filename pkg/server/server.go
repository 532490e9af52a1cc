// Package server exposes routing over HTTP: classification, dispatch,
// live config, and stats.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zen-systems/tiergate/pkg/config"
	"github.com/zen-systems/tiergate/pkg/gateway"
	"github.com/zen-systems/tiergate/pkg/router"
)

// Server wires the routing components behind a gin engine.
type Server struct {
	store   *config.Store
	router  *router.Router
	gateway *gateway.Gateway
	engine  *gin.Engine
}

// New assembles the HTTP surface. The gin engine is ready to serve after
// this returns; Run attaches it to a listener.
func New(store *config.Store, r *router.Router, gw *gateway.Gateway) *Server {
	s := &Server{
		store:   store,
		router:  r,
		gateway: gw,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), cors.Default())

	engine.GET("/healthz", s.handleHealth)

	v1 := engine.Group("/v1")
	{
		v1.GET("/routing/config", s.handleGetConfig)
		v1.POST("/routing/config", s.handleMergeConfig)
		v1.GET("/routing/stats", s.handleStats)
		v1.POST("/route", s.handleRoute)
		v1.POST("/ask", s.handleAsk)
	}

	s.engine = engine
	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is canceled, then drains in-flight
// requests before returning.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Printf("[server] listening on %s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestID tags each request with an id for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleMergeConfig(c *gin.Context) {
	var patch config.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	merged, err := s.store.MergeAndPersist(&patch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, merged)
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.router.Stats().Snapshot())
}

type routeRequest struct {
	Prompt string   `json:"prompt" binding:"required"`
	System string   `json:"system"`
	Tools  []string `json:"tools"`
}

func (s *Server) handleRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dec, err := s.router.Route(router.Request{
		UserText:     req.Prompt,
		SystemText:   req.System,
		ForceAgentic: len(req.Tools) > 0,
	})
	if err != nil {
		if errors.Is(err, router.ErrNoCandidate) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dec)
}

type askRequest struct {
	Prompt    string   `json:"prompt" binding:"required"`
	System    string   `json:"system"`
	Tools     []string `json:"tools"`
	SessionID string   `json:"session_id"`
}

func (s *Server) handleAsk(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := s.gateway.Ask(c.Request.Context(), gateway.Request{
		Prompt:    req.Prompt,
		System:    req.System,
		Tools:     req.Tools,
		SessionID: req.SessionID,
	})
	if err != nil {
		if errors.Is(err, router.ErrNoCandidate) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reply)
}
