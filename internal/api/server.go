// Package api is the thin HTTP shell around the pipeline core: request
// shaping, status mapping and nothing else. Business rules live in the agent
// packages.
package api

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"

	"github.com/shopassist-poc/server/internal/agent/model"
	"github.com/shopassist-poc/server/internal/agent/pipeline"
	"github.com/shopassist-poc/server/internal/agent/tools"
	errx "github.com/shopassist-poc/server/internal/core/error"
	logx "github.com/shopassist-poc/server/pkg/logger"
)

// Server exposes the chat pipeline and the tool registry over HTTP.
type Server struct {
	hertz    *server.Hertz
	runner   *pipeline.Runner
	registry *tools.Registry
}

// NewServer assembles routes onto a default hertz server (which includes
// recovery middleware, so an unexpected panic in a handler becomes a 500
// instead of killing the process).
func NewServer(cfg model.ServerConfig, runner *pipeline.Runner, registry *tools.Registry) *Server {
	h := server.Default(server.WithHostPorts(cfg.Addr))
	s := &Server{hertz: h, runner: runner, registry: registry}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.hertz.GET("/healthz", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	api := s.hertz.Group("/api")
	api.POST("/chat", s.handleChat)
	api.POST("/tools", s.handleToolInvoke)
	api.GET("/tools", s.handleToolDemo)
}

// Spin serves until interrupted, with hertz's built-in graceful shutdown.
func (s *Server) Spin() {
	s.hertz.Spin()
}

// Engine exposes the route engine for in-process testing.
func (s *Server) Engine() *route.Engine {
	return s.hertz.Engine
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(ctx context.Context, c *app.RequestContext) {
	var req chatRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "Invalid JSON format in request body"})
		return
	}
	if req.Message == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "Message is required"})
		return
	}

	result := s.runner.Run(ctx, req.Message)
	c.JSON(consts.StatusOK, utils.H{
		"trace":    result.Trace,
		"response": result.FinalMessage,
	})
}

type toolRequest struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
}

func (s *Server) handleToolInvoke(ctx context.Context, c *app.RequestContext) {
	var req toolRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "Invalid JSON format in request body"})
		return
	}
	if req.Tool == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "Tool name is required"})
		return
	}

	result, err := s.registry.Invoke(req.Tool, req.Parameters)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"result": result})
}

func (s *Server) handleToolDemo(ctx context.Context, c *app.RequestContext) {
	tool := c.Query("tool")
	if tool == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "Tool name is required"})
		return
	}

	result, err := s.registry.Demo(tool)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{
		"tool":      tool,
		"result":    result,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeError maps AppError statuses onto the response; anything else is an
// unexpected internal fault reported generically.
func writeError(c *app.RequestContext, err error) {
	var appErr *errx.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, utils.H{"error": appErr.Message})
		return
	}
	logx.Error().Err(err).Msg("unexpected failure handling request")
	c.JSON(consts.StatusInternalServerError, utils.H{"error": errx.SystemErrorMessage})
}
