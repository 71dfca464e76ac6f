package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/innovatelu/docstore/internal/document"
)

// ErrInvalidArgument is returned when Save or Search receive a nil value.
// A missing id in FindByID is not an error; it yields (nil, nil).
var ErrInvalidArgument = errors.New("invalid argument")

// Repository defines the document storage operations shared by the memory
// and Mongo implementations.
type Repository interface {
	Save(ctx context.Context, doc *document.Document) (*document.Document, error)
	Search(ctx context.Context, req *document.SearchRequest) ([]*document.Document, error)
	FindByID(ctx context.Context, id string) (*document.Document, error)
	List(ctx context.Context) ([]*document.Document, error)
}

// MemoryRepo is a map-backed document repository. It performs no internal
// locking: callers sharing an instance across goroutines must serialize
// access themselves (the service layer does this with a single mutex).
type MemoryRepo struct {
	store map[string]*document.Document
}

func NewMemoryRepo() *MemoryRepo {
	return NewMemoryRepoFrom(make(map[string]*document.Document))
}

// NewMemoryRepoFrom wraps an existing backing map, mainly for test seeding.
func NewMemoryRepoFrom(store map[string]*document.Document) *MemoryRepo {
	if store == nil {
		store = make(map[string]*document.Document)
	}
	return &MemoryRepo{store: store}
}

// Save upserts the document and returns it with a non-empty id and a
// non-nil created timestamp. An empty id gets a fresh UUID. Created is
// assigned on first save and carried forward on every later save of the
// same id, whatever the incoming value says.
func (m *MemoryRepo) Save(ctx context.Context, doc *document.Document) (*document.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("save: nil document: %w", ErrInvalidArgument)
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if prev, ok := m.store[doc.ID]; ok && prev.Created != nil {
		doc.Created = prev.Created
	} else if doc.Created == nil {
		now := time.Now()
		doc.Created = &now
	}
	m.store[doc.ID] = doc
	return doc, nil
}

// Search scans the whole store and returns every document satisfying at
// least one populated criterion. Criteria combine with OR: a request with
// both titlePrefixes and authorIds returns the union of both matches, and
// a request with no criteria matches nothing. Result order follows map
// iteration and is not stable across calls.
func (m *MemoryRepo) Search(ctx context.Context, req *document.SearchRequest) ([]*document.Document, error) {
	if req == nil {
		return nil, fmt.Errorf("search: nil request: %w", ErrInvalidArgument)
	}
	out := make([]*document.Document, 0)
	for _, d := range m.store {
		if matchesRequest(d, req) {
			out = append(out, d)
		}
	}
	return out, nil
}

// FindByID returns the stored document, or (nil, nil) when the id is unknown.
func (m *MemoryRepo) FindByID(ctx context.Context, id string) (*document.Document, error) {
	return m.store[id], nil
}

// List returns all stored documents in map iteration order.
func (m *MemoryRepo) List(ctx context.Context) ([]*document.Document, error) {
	out := make([]*document.Document, 0, len(m.store))
	for _, d := range m.store {
		out = append(out, d)
	}
	return out, nil
}

func matchesRequest(d *document.Document, req *document.SearchRequest) bool {
	return matchesTitlePrefixes(d, req.TitlePrefixes) ||
		matchesContents(d, req.ContainsContents) ||
		matchesAuthorIDs(d, req.AuthorIDs) ||
		matchesCreatedFrom(d, req.CreatedFrom) ||
		matchesCreatedTo(d, req.CreatedTo)
}

// An absent title never matches, regardless of the prefixes given.
func matchesTitlePrefixes(d *document.Document, prefixes []string) bool {
	if len(prefixes) == 0 || d.Title == nil {
		return false
	}
	title := strings.ToLower(*d.Title)
	for _, p := range prefixes {
		if strings.HasPrefix(title, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func matchesContents(d *document.Document, contents []string) bool {
	if len(contents) == 0 || d.Content == nil {
		return false
	}
	body := strings.ToLower(*d.Content)
	for _, c := range contents {
		if strings.Contains(body, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

func matchesAuthorIDs(d *document.Document, ids []string) bool {
	for _, id := range ids {
		if d.Author.ID == id {
			return true
		}
	}
	return false
}

// Both bounds are strict: a document created exactly at the bound does not match.
func matchesCreatedFrom(d *document.Document, from *time.Time) bool {
	return from != nil && d.Created != nil && d.Created.After(*from)
}

func matchesCreatedTo(d *document.Document, to *time.Time) bool {
	return to != nil && d.Created != nil && d.Created.Before(*to)
}
