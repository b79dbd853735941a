package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"bookstore/internal/domain"
	"bookstore/internal/repository/reference"
)

type stubBookRepo struct {
	items []domain.Book
}

func (s *stubBookRepo) Create(_ context.Context, b domain.Book) (*domain.Book, error) {
	b.ID = int64(len(s.items) + 1)
	s.items = append(s.items, b)
	return &b, nil
}

type stubRefStore struct {
	nextID int64
	byKind map[reference.Kind][]domain.Reference
}

func newStubRefStore() *stubRefStore {
	return &stubRefStore{nextID: 1, byKind: make(map[reference.Kind][]domain.Reference)}
}

func (s *stubRefStore) List(_ context.Context, kind reference.Kind) ([]domain.Reference, error) {
	return s.byKind[kind], nil
}

func (s *stubRefStore) Create(_ context.Context, kind reference.Kind, name string) (*domain.Reference, error) {
	ref := domain.Reference{ID: s.nextID, Name: name}
	s.nextID++
	s.byKind[kind] = append(s.byKind[kind], ref)
	return &ref, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `title,price,description,author,genre,publisher,cover_image_url
Dune,12.50,Desert planet epic,Frank Herbert,Science Fiction,Ace,https://example.com/dune.jpg
Dune Messiah,11.00,The sequel,Frank Herbert,Science Fiction,Ace,
Hyperion,9.99,Pilgrims tell tales,Dan Simmons,Science Fiction,Doubleday,`

	books := &stubBookRepo{}
	refs := newStubRefStore()
	imp := NewCSVImporter(strings.NewReader(csvData), books, refs)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 books imported, got %d", count)
	}

	// Repeated names resolve to the same reference row.
	if len(refs.byKind[reference.Authors]) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(refs.byKind[reference.Authors]))
	}
	if len(refs.byKind[reference.Genres]) != 1 {
		t.Fatalf("expected 1 genre, got %d", len(refs.byKind[reference.Genres]))
	}
	if len(refs.byKind[reference.Publishers]) != 2 {
		t.Fatalf("expected 2 publishers, got %d", len(refs.byKind[reference.Publishers]))
	}

	if books.items[0].AuthorID != books.items[1].AuthorID {
		t.Fatal("expected both Herbert books to share an author id")
	}
	if books.items[0].Title != "Dune" || !books.items[0].Price.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("unexpected book data: %+v", books.items[0])
	}
	if books.items[0].CoverImagePath != "https://example.com/dune.jpg" {
		t.Fatalf("cover not picked up: %q", books.items[0].CoverImagePath)
	}
}

func TestCSVImporter_RejectsBadPrice(t *testing.T) {
	csvData := `title,price,description,author,genre,publisher,cover_image_url
Broken,abc,oops,A,G,P,`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubBookRepo{}, newStubRefStore())
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for bad price")
	}
}
