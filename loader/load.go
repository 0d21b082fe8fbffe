// Package loader finds the variant table on disk (or in Google Storage),
// parses it and keeps the parsed table for the life of the process.
package loader

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	"github.com/carbocation/variantatlas"
	"github.com/carbocation/variantatlas/variant"
)

// Options control where Load looks and how it reports.
type Options struct {
	// Roots are searched in order. Each may be a local directory or a gs://
	// prefix. Empty means DefaultRoots().
	Roots []string

	// Candidates are file names tried under every root, in priority order.
	// Empty means DefaultCandidates.
	Candidates []string

	// Storage is needed only for gs:// roots.
	Storage *storage.Client

	Logger *zerolog.Logger
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}

	return o.Logger
}

// Paths lists every path Load will try, in order.
func (o Options) Paths() []string {
	roots := o.Roots
	if len(roots) == 0 {
		roots = DefaultRoots()
	}

	names := o.Candidates
	if len(names) == 0 {
		names = DefaultCandidates
	}

	return CandidatePaths(roots, names)
}

// Load reads the first candidate file that exists. It fails with an error
// matching ErrMissingDataFile when there is none, and with a *ParseError when
// the file cannot be read as a variant table.
func Load(ctx context.Context, opts Options) (*variant.Table, error) {
	log := opts.logger()
	started := time.Now()

	path, err := Resolve(ctx, opts.Paths(), opts.Storage)
	if err != nil {
		return nil, err
	}

	log.Info().Str("path", path).Msg("Loading variant data")

	f, err := variantatlas.Open(ctx, path, opts.Storage)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	table, err := Parse(f, path)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("path", path).
		Int("rows", table.Len()).
		Dur("elapsed", time.Since(started)).
		Msg("Loaded variant data")

	return table, nil
}

// Parse reads a variant table from r, which may be compressed. path is only
// used to label the table and any error.
func Parse(r io.Reader, path string) (*variant.Table, error) {
	rc, _, err := variantatlas.MaybeDecompressReadCloser(io.NopCloser(r))
	if err != nil {
		return nil, &ParseError{Path: path, Err: pfx.Err(err)}
	}
	defer rc.Close()

	br := bufio.NewReader(rc)

	header, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, &ParseError{Path: path, Err: pfx.Err(err)}
	}
	header = strings.TrimPrefix(header, "\ufeff")
	if strings.TrimSpace(header) == "" {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("no header row")}
	}

	delim := variantatlas.DetermineDelimiter(strings.TrimRight(header, "\r\n"))

	cr := csv.NewReader(newQuoteFixReader(io.MultiReader(strings.NewReader(header), br), delim))
	cr.Comma = delim
	cr.FieldsPerRecord = -1

	wr := &widthCheckingReader{Reader: cr}

	records := []*variant.Record{}
	if err := gocsv.UnmarshalCSV(wr, &records); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if missing := missingColumns(wr.header); len(missing) > 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))}
	}

	return variant.NewTable(path, records), nil
}

func missingColumns(header []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = struct{}{}
	}

	var out []string
	for _, col := range variant.RequiredColumns {
		if _, ok := present[col]; !ok {
			out = append(out, col)
		}
	}

	return out
}

// widthCheckingReader remembers the header and rejects rows that are wider
// than it. Shorter rows are allowed; their trailing cells read as missing.
type widthCheckingReader struct {
	*csv.Reader
	header []string
	line   int
}

func (w *widthCheckingReader) Read() ([]string, error) {
	row, err := w.Reader.Read()
	if err != nil {
		return row, err
	}
	w.line++

	if w.header == nil {
		for _, cell := range row {
			if !utf8.ValidString(cell) {
				return nil, fmt.Errorf("header: invalid UTF-8")
			}
		}
		w.header = append([]string(nil), row...)
		return row, nil
	}

	if len(row) > len(w.header) {
		return nil, fmt.Errorf("row %d has %d fields, but the header has %d", w.line, len(row), len(w.header))
	}

	for _, cell := range row {
		if !utf8.ValidString(cell) {
			return nil, fmt.Errorf("row %d: invalid UTF-8", w.line)
		}
	}

	return row, nil
}

func (w *widthCheckingReader) ReadAll() ([][]string, error) {
	var out [][]string
	for {
		row, err := w.Read()
		if err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
}
