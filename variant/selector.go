package variant

import (
	"fmt"
	"strings"
)

// DefaultLabelLimit caps how many rows are offered for selection.
const DefaultLabelLimit = 500

const (
	nameLabelWidth      = 40
	phenotypeLabelWidth = 60
	ellipsis            = "..."
)

// EllipsisMode controls when a truncated label field gets a trailing "...".
type EllipsisMode int

const (
	// EllipsisAlways appends "..." to the name and phenotype fields whether or
	// not they were cut. This is what existing users of the dashboard see.
	EllipsisAlways EllipsisMode = iota

	// EllipsisWhenTruncated only marks fields that were actually shortened.
	EllipsisWhenTruncated
)

// ParseEllipsisMode accepts "always" and "truncated".
func ParseEllipsisMode(s string) (EllipsisMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "always":
		return EllipsisAlways, nil
	case "truncated", "when-truncated":
		return EllipsisWhenTruncated, nil
	}

	return EllipsisAlways, fmt.Errorf("unknown ellipsis mode %q", s)
}

func (m EllipsisMode) String() string {
	if m == EllipsisWhenTruncated {
		return "truncated"
	}
	return "always"
}

// Choice is one selectable row. Index addresses the row in the table the
// choices were built from and is the selection key; labels can collide.
type Choice struct {
	Label string `json:"label"`
	Index int    `json:"index"`
}

// BuildLabels describes at most limit leading rows of t, in order. A
// non-positive limit means DefaultLabelLimit.
func BuildLabels(t *Table, limit int, mode EllipsisMode) []Choice {
	if limit <= 0 {
		limit = DefaultLabelLimit
	}

	head := t.Head(limit)
	out := make([]Choice, 0, head.Len())
	head.Each(func(i int, r *Record) bool {
		out = append(out, Choice{Label: Label(r, mode), Index: i})
		return true
	})

	return out
}

// Label renders "<gene> | <name> | Disease: <phenotypes>" with the name cut
// to 40 and the phenotype list cut to 60 characters. Missing values print as
// "nan", as the labels always have.
func Label(r *Record, mode EllipsisMode) string {
	return fmt.Sprintf("%s | %s | Disease: %s",
		labelText(r.GeneSymbol),
		truncate(labelText(r.Name), nameLabelWidth, mode),
		truncate(labelText(r.PhenotypeList), phenotypeLabelWidth, mode),
	)
}

func labelText(t Text) string {
	if !t.Valid {
		return "nan"
	}
	return t.ValueOrZero()
}

func truncate(s string, width int, mode EllipsisMode) string {
	runes := []rune(s)
	if len(runes) <= width {
		if mode == EllipsisAlways {
			return s + ellipsis
		}
		return s
	}

	return string(runes[:width]) + ellipsis
}

// Select resolves a choice index against the table the choices came from.
func Select(t *Table, index int) (*Record, error) {
	return t.Row(index)
}
