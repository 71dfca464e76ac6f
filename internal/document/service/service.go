package service

import (
	"context"
	"sync"

	"github.com/innovatelu/docstore/internal/document"
	"github.com/innovatelu/docstore/internal/document/repository"
	"github.com/innovatelu/docstore/pkg/metrics"
)

// Service serializes access to a Repository and records metrics. The
// repositories themselves do no locking, so the single mutex here is the
// synchronization point for the whole process.
type Service struct {
	mu   sync.Mutex
	repo repository.Repository
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Save(ctx context.Context, doc *document.Document) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved, err := s.repo.Save(ctx, doc)
	if err != nil {
		return nil, err
	}
	metrics.DocumentsSaved.Inc()
	return saved, nil
}

func (s *Service) Search(ctx context.Context, req *document.SearchRequest) ([]*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := s.repo.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	metrics.SearchRequests.Inc()
	metrics.SearchMatches.Add(float64(len(docs)))
	return docs, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.List(ctx)
}
