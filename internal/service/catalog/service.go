package catalog

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bookstore/internal/domain"
	bookrepo "bookstore/internal/repository/book"
	"bookstore/internal/repository/reference"
)

const (
	defaultPageSize = 12
	maxPageSize     = 60
)

// Service exposes the public catalog plus the back-office book and
// reference management.
type Service struct {
	books bookrepo.Repository
	refs  reference.Store
	log   zerolog.Logger
}

func New(books bookrepo.Repository, refs reference.Store, log zerolog.Logger) *Service {
	return &Service{
		books: books,
		refs:  refs,
		log:   log.With().Str("service", "catalog").Logger(),
	}
}

// SearchInput mirrors the catalog query parameters.
type SearchInput struct {
	Query    string
	Page     int
	PageSize int
	GenreID  *int64
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// SearchResult is one page of the catalog.
type SearchResult struct {
	Books    []domain.Book `json:"books"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

// Search runs a paginated catalog query. Out-of-range paging values are
// clamped and an inverted price range is swapped rather than rejected.
func (s *Service) Search(ctx context.Context, in SearchInput) (*SearchResult, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 {
		in.PageSize = defaultPageSize
	}
	if in.PageSize > maxPageSize {
		in.PageSize = maxPageSize
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		in.MinPrice, in.MaxPrice = in.MaxPrice, in.MinPrice
	}

	books, total, err := s.books.SearchPaged(ctx, bookrepo.SearchInput{
		Query:    strings.TrimSpace(in.Query),
		Page:     in.Page,
		PageSize: in.PageSize,
		GenreID:  in.GenreID,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
	})
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []domain.Book{}
	}
	return &SearchResult{Books: books, Total: total, Page: in.Page, PageSize: in.PageSize}, nil
}

// GetBook returns a single catalog entry with its reference names resolved.
func (s *Service) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	return s.books.GetByID(ctx, id)
}

// BookInput carries the editable fields of a book.
type BookInput struct {
	Title          string          `json:"title"`
	Price          decimal.Decimal `json:"price"`
	Description    string          `json:"description"`
	AuthorID       int64           `json:"authorId"`
	GenreID        int64           `json:"genreId"`
	PublisherID    int64           `json:"publisherId"`
	CoverImagePath string          `json:"coverImagePath"`
}

func (in BookInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Invalidf("title required")
	}
	if in.Price.IsNegative() {
		return domain.Invalidf("price must not be negative")
	}
	return nil
}

func (in BookInput) toDomain(id int64) domain.Book {
	return domain.Book{
		ID:             id,
		Title:          strings.TrimSpace(in.Title),
		Price:          in.Price,
		Description:    in.Description,
		AuthorID:       in.AuthorID,
		GenreID:        in.GenreID,
		PublisherID:    in.PublisherID,
		CoverImagePath: in.CoverImagePath,
	}
}

func (s *Service) CreateBook(ctx context.Context, in BookInput) (*domain.Book, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	b, err := s.books.Create(ctx, in.toDomain(0))
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("book_id", b.ID).Str("title", b.Title).Msg("book created")
	return b, nil
}

func (s *Service) UpdateBook(ctx context.Context, id int64, in BookInput) (*domain.Book, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.books.Update(ctx, in.toDomain(id))
}

func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	return s.books.Delete(ctx, id)
}

// ListReferences returns every entry of one lookup kind.
func (s *Service) ListReferences(ctx context.Context, kind reference.Kind) ([]domain.Reference, error) {
	refs, err := s.refs.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	if refs == nil {
		refs = []domain.Reference{}
	}
	return refs, nil
}

func (s *Service) CreateReference(ctx context.Context, kind reference.Kind, name string) (*domain.Reference, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalidf("name required")
	}
	return s.refs.Create(ctx, kind, name)
}

func (s *Service) RenameReference(ctx context.Context, kind reference.Kind, id int64, name string) (*domain.Reference, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalidf("name required")
	}
	return s.refs.Rename(ctx, kind, id, name)
}

// DeleteReference removes a lookup entry. Entries still referenced by a
// book come back as domain.ErrInUse.
func (s *Service) DeleteReference(ctx context.Context, kind reference.Kind, id int64) error {
	return s.refs.Delete(ctx, kind, id)
}
