package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/innovatelu/docstore/internal/document"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func docIDs(docs []*document.Document) []string {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestSave_AssignsIDWhenAbsent(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	first, err := r.Save(ctx, &document.Document{Title: strPtr("one")})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.NotNil(t, first.Created)

	second, err := r.Save(ctx, &document.Document{Title: strPtr("two")})
	require.NoError(t, err)
	require.NotEmpty(t, second.ID)
	require.NotEqual(t, first.ID, second.ID)
}

func TestSave_KeepsPresetID(t *testing.T) {
	r := NewMemoryRepo()
	d, err := r.Save(context.Background(), &document.Document{ID: "doc-1"})
	require.NoError(t, err)
	require.Equal(t, "doc-1", d.ID)
}

func TestSave_NilDocument(t *testing.T) {
	r := NewMemoryRepo()
	_, err := r.Save(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSave_CreatedIsImmutable(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	t1 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	saved, err := r.Save(ctx, &document.Document{ID: "doc-1", Created: timePtr(t1)})
	require.NoError(t, err)
	require.Equal(t, t1, *saved.Created)

	// re-save with an absent created: the original timestamp survives
	saved, err = r.Save(ctx, &document.Document{ID: "doc-1", Title: strPtr("updated")})
	require.NoError(t, err)
	require.Equal(t, t1, *saved.Created)

	// re-save with a different created: still the original timestamp
	t2 := t1.Add(48 * time.Hour)
	saved, err = r.Save(ctx, &document.Document{ID: "doc-1", Created: timePtr(t2)})
	require.NoError(t, err)
	require.Equal(t, t1, *saved.Created)

	got, err := r.FindByID(ctx, "doc-1")
	require.NoError(t, err)
	require.Equal(t, t1, *got.Created)
}

func TestSave_UpsertReplacesAllMutableFields(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	_, err := r.Save(ctx, &document.Document{
		ID:      "doc-1",
		Title:   strPtr("old title"),
		Content: strPtr("old content"),
		Author:  document.Author{ID: "u1", Name: "Alice"},
	})
	require.NoError(t, err)

	_, err = r.Save(ctx, &document.Document{
		ID:     "doc-1",
		Author: document.Author{ID: "u2", Name: "Bob"},
	})
	require.NoError(t, err)

	got, err := r.FindByID(ctx, "doc-1")
	require.NoError(t, err)
	require.Nil(t, got.Title)
	require.Nil(t, got.Content)
	require.Equal(t, "u2", got.Author.ID)
}

func TestFindByID_RoundTrip(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	saved, err := r.Save(ctx, &document.Document{
		Title:   strPtr("Report Q1"),
		Content: strPtr("numbers"),
		Author:  document.Author{ID: "u1", Name: "Alice"},
	})
	require.NoError(t, err)

	got, err := r.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, saved, got)
}

func TestFindByID_MissingIsNotAnError(t *testing.T) {
	r := NewMemoryRepo()
	got, err := r.FindByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSearch_NilRequest(t *testing.T) {
	r := NewMemoryRepo()
	_, err := r.Search(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSearch_UnionAcrossCriteria(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	a, err := r.Save(ctx, &document.Document{Title: strPtr("Report Q1")})
	require.NoError(t, err)
	_, err = r.Save(ctx, &document.Document{Content: strPtr("urgent matter")})
	require.NoError(t, err)
	c, err := r.Save(ctx, &document.Document{Author: document.Author{ID: "u1"}})
	require.NoError(t, err)

	// criteria are OR-combined: the result is the union of the title
	// matches and the author matches, not their intersection
	got, err := r.Search(ctx, &document.SearchRequest{
		TitlePrefixes: []string{"report"},
		AuthorIDs:     []string{"u1"},
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{a.ID, c.ID}, docIDs(got))
}

func TestSearch_EmptyRequestMatchesNothing(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	_, err := r.Save(ctx, &document.Document{Title: strPtr("anything")})
	require.NoError(t, err)

	got, err := r.Search(ctx, &document.SearchRequest{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSearch_CaseInsensitiveMatching(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	a, err := r.Save(ctx, &document.Document{Title: strPtr("Annual Report")})
	require.NoError(t, err)
	b, err := r.Save(ctx, &document.Document{Content: strPtr("Urgent Matter")})
	require.NoError(t, err)

	got, err := r.Search(ctx, &document.SearchRequest{TitlePrefixes: []string{"annual"}})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{a.ID}, docIDs(got))

	got, err = r.Search(ctx, &document.SearchRequest{ContainsContents: []string{"matter"}})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{b.ID}, docIDs(got))
}

func TestSearch_AbsentFieldsNeverMatch(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	// no title and no content: text criteria cannot match this document
	_, err := r.Save(ctx, &document.Document{Author: document.Author{ID: "u1"}})
	require.NoError(t, err)

	got, err := r.Search(ctx, &document.SearchRequest{TitlePrefixes: []string{""}})
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = r.Search(ctx, &document.SearchRequest{ContainsContents: []string{""}})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSearch_CreatedBoundsAreStrict(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	d, err := r.Save(ctx, &document.Document{ID: "doc-1", Created: timePtr(at)})
	require.NoError(t, err)

	// created == createdFrom: strictly-after excludes it
	got, err := r.Search(ctx, &document.SearchRequest{CreatedFrom: timePtr(at)})
	require.NoError(t, err)
	require.Empty(t, got)

	// created == createdTo: strictly-before excludes it
	got, err = r.Search(ctx, &document.SearchRequest{CreatedTo: timePtr(at)})
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = r.Search(ctx, &document.SearchRequest{CreatedFrom: timePtr(at.Add(-time.Second))})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{d.ID}, docIDs(got))

	got, err = r.Search(ctx, &document.SearchRequest{CreatedTo: timePtr(at.Add(time.Second))})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{d.ID}, docIDs(got))
}

func TestNewMemoryRepoFrom_SeededState(t *testing.T) {
	seeded := &document.Document{ID: "doc-1", Title: strPtr("seeded"), Created: timePtr(time.Now())}
	r := NewMemoryRepoFrom(map[string]*document.Document{"doc-1": seeded})

	got, err := r.FindByID(context.Background(), "doc-1")
	require.NoError(t, err)
	require.Equal(t, seeded, got)

	// instances are independent: a fresh repo does not see the seed
	other := NewMemoryRepo()
	got, err = other.FindByID(context.Background(), "doc-1")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestList_ReturnsEverything(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	a, err := r.Save(ctx, &document.Document{Title: strPtr("a")})
	require.NoError(t, err)
	b, err := r.Save(ctx, &document.Document{Title: strPtr("b")})
	require.NoError(t, err)

	got, err := r.List(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{a.ID, b.ID}, docIDs(got))
}
