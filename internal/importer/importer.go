// Package importer loads book catalog exports from CSV. Author, genre and
// publisher columns are free-form names resolved to reference rows on the
// fly, so a fresh database can be filled from a single file.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"bookstore/internal/domain"
	"bookstore/internal/repository/reference"
)

type BookWriter interface {
	Create(ctx context.Context, b domain.Book) (*domain.Book, error)
}

type ReferenceStore interface {
	List(ctx context.Context, kind reference.Kind) ([]domain.Reference, error)
	Create(ctx context.Context, kind reference.Kind, name string) (*domain.Reference, error)
}

// CSVImporter reads catalog CSV rows and inserts books.
type CSVImporter struct {
	reader *csv.Reader
	books  BookWriter
	refs   ReferenceStore

	idCache map[reference.Kind]map[string]int64
}

func NewCSVImporter(r io.Reader, books BookWriter, refs ReferenceStore) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:  csvr,
		books:   books,
		refs:    refs,
		idCache: make(map[reference.Kind]map[string]int64),
	}
}

type csvRow struct {
	Title     string
	Price     string
	Desc      string
	Author    string
	Genre     string
	Publisher string
	CoverURL  string
}

// Run parses CSV rows and inserts one book per row. It returns the number
// of books written; a malformed row aborts the run.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Title == "" || row.Price == "" || row.Author == "" || row.Genre == "" || row.Publisher == "" {
		return fmt.Errorf("invalid book row (missing required fields) for title %q", row.Title)
	}
	price, err := decimal.NewFromString(row.Price)
	if err != nil || price.IsNegative() {
		return fmt.Errorf("invalid price for title %q: %s", row.Title, row.Price)
	}

	authorID, err := i.resolve(ctx, reference.Authors, row.Author)
	if err != nil {
		return err
	}
	genreID, err := i.resolve(ctx, reference.Genres, row.Genre)
	if err != nil {
		return err
	}
	publisherID, err := i.resolve(ctx, reference.Publishers, row.Publisher)
	if err != nil {
		return err
	}

	_, err = i.books.Create(ctx, domain.Book{
		Title:          row.Title,
		Price:          price,
		Description:    row.Desc,
		AuthorID:       authorID,
		GenreID:        genreID,
		PublisherID:    publisherID,
		CoverImagePath: row.CoverURL,
	})
	if err != nil {
		return fmt.Errorf("insert book %q: %w", row.Title, err)
	}
	return nil
}

// resolve maps a reference name to its id, creating the row on first sight.
func (i *CSVImporter) resolve(ctx context.Context, kind reference.Kind, name string) (int64, error) {
	cache := i.idCache[kind]
	if cache == nil {
		cache = make(map[string]int64)
		refs, err := i.refs.List(ctx, kind)
		if err != nil {
			return 0, fmt.Errorf("list %s: %w", kind, err)
		}
		for _, ref := range refs {
			cache[strings.ToLower(ref.Name)] = ref.ID
		}
		i.idCache[kind] = cache
	}

	if id, ok := cache[strings.ToLower(name)]; ok {
		return id, nil
	}
	ref, err := i.refs.Create(ctx, kind, name)
	if err != nil {
		return 0, fmt.Errorf("create %s %q: %w", kind, name, err)
	}
	cache[strings.ToLower(name)] = ref.ID
	return ref.ID, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	row := &csvRow{
		Title:     pick(record, index, "title"),
		Price:     pick(record, index, "price"),
		Desc:      pick(record, index, "description"),
		Author:    pick(record, index, "author"),
		Genre:     pick(record, index, "genre"),
		Publisher: pick(record, index, "publisher"),
		CoverURL:  pick(record, index, "cover_image_url"),
	}
	if row.Title == "" && row.Author == "" {
		return nil
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
