package catalog

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bookstore/internal/domain"
	bookrepo "bookstore/internal/repository/book"
	"bookstore/internal/repository/reference"
)

// searchSpy records the input the service hands to the repository.
type searchSpy struct {
	got   bookrepo.SearchInput
	books []domain.Book
	total int
}

func (s *searchSpy) SearchPaged(_ context.Context, in bookrepo.SearchInput) ([]domain.Book, int, error) {
	s.got = in
	return s.books, s.total, nil
}

func (s *searchSpy) GetByID(context.Context, int64) (*domain.Book, error) {
	return nil, domain.ErrNotFound
}
func (s *searchSpy) PricesByIDs(context.Context, []int64) (map[int64]bookrepo.PriceSnapshot, error) {
	return nil, nil
}
func (s *searchSpy) Create(_ context.Context, b domain.Book) (*domain.Book, error) {
	b.ID = 1
	return &b, nil
}
func (s *searchSpy) Update(_ context.Context, b domain.Book) (*domain.Book, error) { return &b, nil }
func (s *searchSpy) Delete(context.Context, int64) error                           { return nil }
func (s *searchSpy) Count(context.Context) (int, error)                            { return s.total, nil }

type refStub struct {
	refs map[reference.Kind][]domain.Reference
}

func (r *refStub) List(_ context.Context, kind reference.Kind) ([]domain.Reference, error) {
	return r.refs[kind], nil
}
func (r *refStub) GetByID(context.Context, reference.Kind, int64) (*domain.Reference, error) {
	return nil, domain.ErrNotFound
}
func (r *refStub) Create(_ context.Context, kind reference.Kind, name string) (*domain.Reference, error) {
	ref := domain.Reference{ID: 1, Name: name}
	r.refs[kind] = append(r.refs[kind], ref)
	return &ref, nil
}
func (r *refStub) Rename(_ context.Context, _ reference.Kind, id int64, name string) (*domain.Reference, error) {
	return &domain.Reference{ID: id, Name: name}, nil
}
func (r *refStub) Delete(context.Context, reference.Kind, int64) error { return nil }
func (r *refStub) Count(context.Context, reference.Kind) (int, error)  { return 0, nil }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSearch_ClampsPaging(t *testing.T) {
	spy := &searchSpy{}
	svc := New(spy, &refStub{refs: map[reference.Kind][]domain.Reference{}}, zerolog.Nop())

	res, err := svc.Search(context.Background(), SearchInput{Page: -3, PageSize: 0})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if spy.got.Page != 1 || spy.got.PageSize != defaultPageSize {
		t.Fatalf("paging not clamped: page=%d size=%d", spy.got.Page, spy.got.PageSize)
	}
	if res.Books == nil {
		t.Fatal("books must not be nil")
	}

	if _, err := svc.Search(context.Background(), SearchInput{Page: 1, PageSize: 5000}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if spy.got.PageSize != maxPageSize {
		t.Fatalf("page size not capped: %d", spy.got.PageSize)
	}
}

func TestSearch_SwapsInvertedPriceRange(t *testing.T) {
	spy := &searchSpy{}
	svc := New(spy, &refStub{refs: map[reference.Kind][]domain.Reference{}}, zerolog.Nop())

	min := dec("30.00")
	max := dec("10.00")
	if _, err := svc.Search(context.Background(), SearchInput{MinPrice: &min, MaxPrice: &max}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if !spy.got.MinPrice.Equal(dec("10.00")) || !spy.got.MaxPrice.Equal(dec("30.00")) {
		t.Fatalf("range not swapped: min=%s max=%s", spy.got.MinPrice, spy.got.MaxPrice)
	}
}

func TestSearch_TrimsQuery(t *testing.T) {
	spy := &searchSpy{}
	svc := New(spy, &refStub{refs: map[reference.Kind][]domain.Reference{}}, zerolog.Nop())

	if _, err := svc.Search(context.Background(), SearchInput{Query: "  dune  "}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if spy.got.Query != "dune" {
		t.Fatalf("query not trimmed: %q", spy.got.Query)
	}
}

func TestBookInputValidation(t *testing.T) {
	svc := New(&searchSpy{}, &refStub{refs: map[reference.Kind][]domain.Reference{}}, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.CreateBook(ctx, BookInput{Title: "  ", Price: dec("1.00")}); err == nil {
		t.Fatal("expected error for blank title")
	}
	if _, err := svc.CreateBook(ctx, BookInput{Title: "Dune", Price: dec("-1.00")}); err == nil {
		t.Fatal("expected error for negative price")
	}
	b, err := svc.CreateBook(ctx, BookInput{Title: " Dune ", Price: dec("12.50"), AuthorID: 1, GenreID: 1, PublisherID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Title != "Dune" {
		t.Fatalf("title not trimmed: %q", b.Title)
	}
}

func TestReferenceNameRequired(t *testing.T) {
	svc := New(&searchSpy{}, &refStub{refs: map[reference.Kind][]domain.Reference{}}, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.CreateReference(ctx, reference.Authors, "   "); err == nil {
		t.Fatal("expected error for blank name")
	}
	ref, err := svc.CreateReference(ctx, reference.Genres, " Sci-Fi ")
	if err != nil {
		t.Fatalf("create reference: %v", err)
	}
	if ref.Name != "Sci-Fi" {
		t.Fatalf("name not trimmed: %q", ref.Name)
	}
}
