package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/innovatelu/docstore/internal/document"
	"github.com/innovatelu/docstore/internal/document/repository"
	"github.com/innovatelu/docstore/internal/document/service"
)

// Exporter uploads a snapshot of the store somewhere durable and returns
// the object key it wrote.
type Exporter interface {
	Snapshot(ctx context.Context, docs []*document.Document) (string, error)
}

// RegisterDocumentRoutes exposes the store operations over HTTP. The store
// itself has no opinion on transport; this is the embedding application's
// surface.
func RegisterDocumentRoutes(r *gin.Engine, svc *service.Service) {
	r.POST("/api/documents", func(c *gin.Context) {
		var doc document.Document
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		saved, err := svc.Save(c.Request.Context(), &doc)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, repository.ErrInvalidArgument) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, saved)
	})

	r.GET("/api/documents/:id", func(c *gin.Context) {
		doc, err := svc.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if doc == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, doc)
	})

	r.POST("/api/documents/search", func(c *gin.Context) {
		var req document.SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		docs, err := svc.Search(c.Request.Context(), &req)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, repository.ErrInvalidArgument) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, docs)
	})
}

// RegisterExportRoute adds a manual snapshot trigger. Registered separately
// because the exporter is optional infrastructure.
func RegisterExportRoute(r *gin.Engine, svc *service.Service, exp Exporter) {
	r.POST("/api/export", func(c *gin.Context) {
		docs, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		key, err := exp.Snapshot(c.Request.Context(), docs)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"object": key, "count": len(docs)})
	})
}
