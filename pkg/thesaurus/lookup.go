package thesaurus

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/codesync/pkg/errors"
	"github.com/agentstation/codesync/pkg/logging"
)

// minChunk keeps small inputs on a single goroutine.
const minChunk = 4096

// Lookup maps codes to their authoritative records.
type Lookup struct {
	records    map[string]*Record
	duplicates int
}

// Get returns the record for code. Matching is exact and case-sensitive.
func (l *Lookup) Get(code string) (*Record, bool) {
	r, ok := l.records[code]
	return r, ok
}

// Len returns the number of distinct codes.
func (l *Lookup) Len() int {
	return len(l.records)
}

// Duplicates returns how many rows overwrote an earlier row with the same
// code.
func (l *Lookup) Duplicates() int {
	return l.duplicates
}

// Load opens and parses a thesaurus file.
func Load(ctx context.Context, path string, opts ...Option) (*Lookup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	return Parse(ctx, f, append([]Option{WithSource(path)}, opts...)...)
}

// Parse reads tab-delimited thesaurus rows from r and builds the lookup.
// The file has no header and exactly nine columns per row; any bad row
// fails the whole parse.
func Parse(ctx context.Context, r io.Reader, opts ...Option) (*Lookup, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []Row
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(o.source, err)
		}
		line, _ := reader.FieldPos(0)
		row, err := rowFromFields(line, fields)
		if err != nil {
			return nil, withSource(err, o.source)
		}
		rows = append(rows, row)
	}

	return build(ctx, rows, o)
}

// Build converts raw rows into a lookup. Later rows win over earlier rows
// with the same code.
func Build(ctx context.Context, rows []Row, opts ...Option) (*Lookup, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return build(ctx, rows, o)
}

func build(ctx context.Context, rows []Row, o *options) (*Lookup, error) {
	records, err := convert(ctx, rows, o.workers)
	if err != nil {
		return nil, withSource(err, o.source)
	}

	l := &Lookup{records: make(map[string]*Record, len(records))}
	for _, rec := range records {
		if _, exists := l.records[rec.Code]; exists {
			l.duplicates++
		}
		l.records[rec.Code] = rec
	}

	logger := o.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	logger.Debug().
		Str("source", o.source).
		Int("rows", len(rows)).
		Int("codes", l.Len()).
		Int("duplicates", l.duplicates).
		Msg("Built thesaurus lookup")

	return l, nil
}

// convert turns rows into records on up to workers goroutines. Results
// keep input order, and the reported error is the first bad row in input
// order regardless of scheduling.
func convert(ctx context.Context, rows []Row, workers int) ([]*Record, error) {
	records := make([]*Record, len(rows))
	errs := make([]error, len(rows))

	chunk := max((len(rows)+workers-1)/workers, minChunk)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(rows); start += chunk {
		end := min(start+chunk, len(rows))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				records[i], errs[i] = rows[i].record()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.WrapCanceled(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapCanceled(err)
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return records, nil
}

// csvError converts an encoding/csv error into a row-level ParseError.
func csvError(source string, err error) error {
	var csvErr *csv.ParseError
	if stderrors.As(err, &csvErr) {
		return &errors.ParseError{
			Format:  "tsv",
			File:    source,
			Line:    csvErr.StartLine,
			Column:  csvErr.Column,
			Message: csvErr.Err.Error(),
			Err:     err,
		}
	}
	return errors.WrapIO("read", source, err)
}

func withSource(err error, source string) error {
	var perr *errors.ParseError
	if source != "" && stderrors.As(err, &perr) && perr.File == "" {
		perr.File = source
	}
	return err
}
