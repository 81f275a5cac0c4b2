package contact

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

const utf8BOM = "\ufeff"

type ImportSource interface {
	Open(ctx context.Context, sourcePath string) (io.ReadCloser, error)
}

// Row is one data line of the input file. Exactly one of Record or Err is set;
// a non-nil Err always wraps domain.ErrMalformedRow.
type Row struct {
	Index  int64
	Record domain.Record
	Err    error
}

// Ingestor turns a stored CSV file into a stream of rows.
type Ingestor struct {
	source ImportSource
}

func NewIngestor(source ImportSource) *Ingestor {
	return &Ingestor{source: source}
}

// Open reads the header line and returns a reader positioned on the first data
// row. Missing, unreadable or empty files fail with domain.ErrSourceUnavailable.
func (i *Ingestor) Open(ctx context.Context, sourcePath string) (*RowReader, error) {
	rc, err := i.source.Open(ctx, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		_ = rc.Close()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is empty", domain.ErrSourceUnavailable, sourcePath)
		}
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrSourceUnavailable, err)
	}

	columns, headerErr := normalizeHeader(header)

	return &RowReader{
		closer:    rc,
		csv:       reader,
		columns:   columns,
		headerErr: headerErr,
	}, nil
}

// RowReader is a forward-only, single-pass cursor over the data rows.
type RowReader struct {
	closer    io.Closer
	csv       *csv.Reader
	columns   []string
	headerErr error
	index     int64
}

// Next returns the next row in file order, or io.EOF once the file is
// exhausted. Structural problems with a row are reported through Row.Err;
// a returned error means the source itself failed.
func (r *RowReader) Next() (Row, error) {
	fields, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			row := Row{Index: r.index, Err: fmt.Errorf("%w: %v", domain.ErrMalformedRow, parseErr)}
			r.index++
			return row, nil
		}

		return Row{}, fmt.Errorf("%w: read row %d: %v", domain.ErrSourceUnavailable, r.index, err)
	}

	row := Row{Index: r.index}
	r.index++

	record, mapErr := r.mapRow(fields)
	if mapErr != nil {
		row.Err = mapErr
		return row, nil
	}

	row.Record = record
	return row, nil
}

func (r *RowReader) Close() error {
	return r.closer.Close()
}

func (r *RowReader) mapRow(fields []string) (domain.Record, error) {
	if r.headerErr != nil {
		return domain.Record{}, fmt.Errorf("%w: %v", domain.ErrMalformedRow, r.headerErr)
	}
	if len(fields) != len(r.columns) {
		return domain.Record{}, fmt.Errorf("%w: expected %d fields, got %d", domain.ErrMalformedRow, len(r.columns), len(fields))
	}

	values := make(map[string]string, len(fields))
	for i, column := range r.columns {
		values[column] = fields[i]
	}

	record, err := domain.NewRecord(values["name"], values["email"], values["phone"])
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: %w", domain.ErrMalformedRow, err)
	}
	return record, nil
}

func normalizeHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))

	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		columns[i] = name

		if _, ok := seen[name]; ok {
			return columns, fmt.Errorf("duplicate header column %q", name)
		}
		seen[name] = struct{}{}
	}

	return columns, nil
}
