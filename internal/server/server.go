// Package server exposes the paper-writing workflow as a REST API. One
// session per paper; the session layer serializes mutation.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperforge/paperforge/internal/ingest"
	"github.com/paperforge/paperforge/internal/llm"
	"github.com/paperforge/paperforge/internal/outline"
	"github.com/paperforge/paperforge/internal/section"
	"github.com/paperforge/paperforge/internal/session"
)

// Options configures a Server. Generator and Index are optional:
// endpoints that need them return 503 when absent.
type Options struct {
	Generator llm.Generator
	Index     *ingest.Index
}

// Server routes API requests to the paper-writing components.
type Server struct {
	sessions *session.Manager
	gen      llm.Generator
	index    *ingest.Index
	builder  *outline.Builder
	writer   *section.Writer
}

// New creates a Server with a fresh session manager.
func New(opts Options) *Server {
	s := &Server{
		sessions: session.NewManager(),
		gen:      opts.Generator,
		index:    opts.Index,
	}

	var src outline.ContextSource
	if opts.Index != nil {
		src = opts.Index
	}
	if opts.Generator != nil {
		s.builder = outline.NewBuilder(opts.Generator, src)
		var secSrc section.ContextSource
		if opts.Index != nil {
			secSrc = opts.Index
		}
		s.writer = section.NewWriter(opts.Generator, secSrc)
	}

	return s
}

// Router builds the gin handler for the API.
func (s *Server) Router() http.Handler {
	router := gin.Default()

	v1 := router.Group("/api/v1")
	{
		v1.POST("/sessions", s.createSession)
		v1.DELETE("/sessions/:id", s.deleteSession)
		v1.POST("/sessions/:id/outline", s.generateOutline)
		v1.POST("/sessions/:id/sections/:name", s.generateSection)
		v1.POST("/sessions/:id/citations", s.addCitation)
		v1.PUT("/sessions/:id/citations/style", s.setStyle)
		v1.GET("/sessions/:id/bibliography", s.bibliography)
		v1.GET("/sessions/:id/citations/:cid/marker", s.marker)
		v1.POST("/sessions/:id/references/ingest", s.ingestReferences)
		v1.POST("/sessions/:id/export", s.exportPaper)
		v1.POST("/sessions/:id/save", s.saveState)
		v1.POST("/sessions/:id/load", s.loadState)
	}

	return router
}

// Run starts the HTTP server on the given host and port.
func (s *Server) Run(host string, port int) error {
	return http.ListenAndServe(fmt.Sprintf("%s:%d", host, port), s.Router())
}
