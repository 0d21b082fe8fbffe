package variant

import "errors"

// ErrNoSuchRow is returned when a selection index does not address a row of
// the table it was resolved against.
var ErrNoSuchRow = errors.New("no such row")

// Table is an ordered, read-only set of records. Tables produced by Filter
// share *Record values with their source; nothing may modify a Record after
// it has been placed in a Table.
type Table struct {
	Source  string
	records []*Record
}

// NewTable wraps records without copying them.
func NewTable(source string, records []*Record) *Table {
	return &Table{Source: source, records: records}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.records)
}

// Row returns the record at index i.
func (t *Table) Row(i int) (*Record, error) {
	if i < 0 || i >= t.Len() {
		return nil, ErrNoSuchRow
	}

	return t.records[i], nil
}

// Head returns a view of at most n leading rows.
func (t *Table) Head(n int) *Table {
	if n < 0 || n >= t.Len() {
		return t
	}

	return &Table{Source: t.Source, records: t.records[:n:n]}
}

// Each calls fn for every row in order, stopping early if fn returns false.
func (t *Table) Each(fn func(i int, r *Record) bool) {
	if t == nil {
		return
	}

	for i, r := range t.records {
		if !fn(i, r) {
			return
		}
	}
}
