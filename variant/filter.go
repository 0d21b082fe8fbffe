package variant

import "strings"

// Query is the pair of free-text searches a user can apply.
type Query struct {
	Disease string
	Gene    string
}

// Normalized trims both searches. Whitespace-only searches become empty.
func (q Query) Normalized() Query {
	return Query{
		Disease: strings.TrimSpace(q.Disease),
		Gene:    strings.TrimSpace(q.Gene),
	}
}

// Active reports whether the query narrows the table at all. An active query
// that matches nothing is different from no query.
func (q Query) Active() bool {
	n := q.Normalized()
	return n.Disease != "" || n.Gene != ""
}

// Filter narrows t to rows whose PhenotypeList contains diseaseQuery and whose
// GeneSymbol contains geneQuery, both case-insensitively. Blank queries do not
// filter; when both are blank t itself is returned. Missing values never
// match a non-blank query.
func Filter(t *Table, diseaseQuery, geneQuery string) *Table {
	return Query{Disease: diseaseQuery, Gene: geneQuery}.Apply(t)
}

// Apply is Filter for a Query value.
func (q Query) Apply(t *Table) *Table {
	q = q.Normalized()
	if !q.Active() {
		return t
	}

	disease := strings.ToLower(q.Disease)
	gene := strings.ToLower(q.Gene)

	out := make([]*Record, 0)
	t.Each(func(_ int, r *Record) bool {
		if disease != "" && !containsFold(r.PhenotypeList, disease) {
			return true
		}
		if gene != "" && !containsFold(r.GeneSymbol, gene) {
			return true
		}
		out = append(out, r)
		return true
	})

	var source string
	if t != nil {
		source = t.Source
	}

	return NewTable(source, out)
}

// containsFold expects needle to be lower case already.
func containsFold(haystack Text, needle string) bool {
	if !haystack.Valid {
		return false
	}

	return strings.Contains(strings.ToLower(haystack.ValueOrZero()), needle)
}
