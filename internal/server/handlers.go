package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperforge/paperforge/internal/citation"
	"github.com/paperforge/paperforge/internal/export"
	"github.com/paperforge/paperforge/internal/ingest"
	"github.com/paperforge/paperforge/internal/outline"
	"github.com/paperforge/paperforge/internal/paper"
	"github.com/paperforge/paperforge/internal/section"
	"github.com/paperforge/paperforge/internal/session"
)

func (s *Server) createSession(c *gin.Context) {
	sess := s.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{
		"session_id": sess.ID,
		"created_at": sess.Created,
	})
}

func (s *Server) deleteSession(c *gin.Context) {
	id := c.Param("id")
	if err := s.sessions.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": id, "deleted": true})
}

// lookup fetches the session for the request, writing a 404 on failure.
func (s *Server) lookup(c *gin.Context) (*session.Session, bool) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return sess, true
}

func (s *Server) generateOutline(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	if s.builder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no language model configured"})
		return
	}

	var req struct {
		Topic        string `json:"topic"`
		Instructions string `json:"instructions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := s.builder.Build(c.Request.Context(), req.Topic, req.Instructions)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	sess.Update(func(p *paper.Paper, refs *citation.Store) error {
		p.Topic = o.Topic
		p.Outline = o
		return nil
	})

	c.JSON(http.StatusOK, gin.H{"outline": o})
}

func (s *Server) generateSection(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	if s.writer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no language model configured"})
		return
	}

	var req struct {
		Feedback string `json:"feedback"`
	}
	// An empty body means generate without feedback.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	name := c.Param("name")
	var content paper.SectionContent
	err := sess.Update(func(p *paper.Paper, refs *citation.Store) error {
		var werr error
		content, werr = s.writer.Write(c.Request.Context(), p, name, req.Feedback)
		if werr != nil {
			return werr
		}
		p.SetSection(content)
		return nil
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": content})
}

func (s *Server) addCitation(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}

	var rec citation.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var id, marker string
	err := sess.Update(func(p *paper.Paper, refs *citation.Store) error {
		var aerr error
		id, aerr = refs.Add(rec)
		if aerr != nil {
			return aerr
		}
		marker, _ = refs.Marker(id)
		p.SyncRefs(refs)
		return nil
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"citation_id": id, "marker": marker})
}

func (s *Server) setStyle(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}

	var req struct {
		Style string `json:"style"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	style, err := citation.ParseStyle(req.Style)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess.Update(func(p *paper.Paper, refs *citation.Store) error {
		refs.SetStyle(style)
		p.CitationStyle = style
		return nil
	})

	c.JSON(http.StatusOK, gin.H{"style": style})
}

func (s *Server) bibliography(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}

	var (
		bib   string
		style citation.Style
		count int
	)
	err := sess.View(func(p *paper.Paper, refs *citation.Store) error {
		style = refs.Style()
		if q := c.Query("style"); q != "" {
			parsed, perr := citation.ParseStyle(q)
			if perr != nil {
				return perr
			}
			style = parsed
		}
		bib = refs.Render(style)
		count = refs.Len()
		return nil
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"style": style, "bibliography": bib, "count": count})
}

func (s *Server) marker(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}

	var m string
	err := sess.View(func(p *paper.Paper, refs *citation.Store) error {
		var merr error
		m, merr = refs.Marker(c.Param("cid"))
		return merr
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"citation_id": c.Param("cid"), "marker": m})
}

func (s *Server) ingestReferences(c *gin.Context) {
	if _, ok := s.lookup(c); !ok {
		return
	}
	if s.index == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no reference index configured"})
		return
	}

	var req struct {
		FolderPath string `json:"folder_path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ingest.NewIngestor(s.index).IngestFolder(req.FolderPath)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) exportPaper(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}

	var req struct {
		OutputDir string `json:"output_dir"`
		Style     string `json:"style"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var files *export.Files
	err := sess.View(func(p *paper.Paper, refs *citation.Store) error {
		style := refs.Style()
		if req.Style != "" {
			parsed, perr := citation.ParseStyle(req.Style)
			if perr != nil {
				return perr
			}
			style = parsed
		}
		var werr error
		files, werr = export.Write(p, refs, style, req.OutputDir)
		return werr
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, files)
}

func (s *Server) saveState(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}

	var req struct {
		FilePath string `json:"file_path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.FilePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_path is required"})
		return
	}

	err := sess.Update(func(p *paper.Paper, refs *citation.Store) error {
		p.SyncRefs(refs)
		return paper.Save(p, req.FilePath)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"file_path": req.FilePath, "saved": true})
}

func (s *Server) loadState(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}

	var req struct {
		FilePath string `json:"file_path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.FilePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_path is required"})
		return
	}

	p, err := paper.Load(req.FilePath)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	sess.Replace(p)

	c.JSON(http.StatusOK, gin.H{"file_path": req.FilePath, "title": p.Title})
}

// statusFor maps domain errors to HTTP status codes. Unmatched errors
// are treated as server faults.
func statusFor(err error) int {
	var missing *export.MissingSectionsError
	switch {
	case errors.Is(err, citation.ErrInvalid),
		errors.Is(err, citation.ErrUnknownStyle),
		errors.Is(err, paper.ErrUnknownSection),
		errors.Is(err, outline.ErrEmptyTopic),
		errors.Is(err, ingest.ErrFolderNotFound),
		errors.Is(err, ingest.ErrNotDirectory),
		errors.As(err, &missing):
		return http.StatusBadRequest
	case errors.Is(err, outline.ErrBadResponse),
		errors.Is(err, section.ErrBadResponse):
		return http.StatusBadGateway
	case errors.Is(err, citation.ErrNotFound),
		errors.Is(err, paper.ErrStateNotFound),
		errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, paper.ErrStateInvalid):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
