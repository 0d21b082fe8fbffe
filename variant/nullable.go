package variant

import (
	"math"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Text is a nullable string cell. Empty cells are missing, the way a
// dataframe reads them.
type Text struct {
	null.String
}

func NewText(s string) Text {
	return Text{null.NewString(s, s != "")}
}

func (t *Text) UnmarshalCSV(value string) error {
	*t = NewText(value)
	return nil
}

func (t Text) MarshalCSV() (string, error) {
	return t.ValueOrZero(), nil
}

// RSID is a nullable dbSNP reference identifier. Anything that is not a
// non-negative integer becomes missing instead of failing the parse.
type RSID struct {
	null.Int
}

func NewRSID(id int64) RSID {
	return RSID{null.IntFrom(id)}
}

// ParseRSID coerces a raw cell. Integral floats such as "113993960.0" are
// accepted because exported tables often write the column as a float.
func ParseRSID(value string) RSID {
	value = strings.TrimSpace(value)
	if value == "" {
		return RSID{}
	}

	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		if id < 0 {
			return RSID{}
		}
		return NewRSID(id)
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) || f > math.MaxInt64 {
		return RSID{}
	}

	return NewRSID(int64(f))
}

func (r *RSID) UnmarshalCSV(value string) error {
	*r = ParseRSID(value)
	return nil
}

func (r RSID) MarshalCSV() (string, error) {
	if !r.Valid {
		return "", nil
	}
	return strconv.FormatInt(r.Int64, 10), nil
}

// Display renders the identifier as rs<id>, or N/A when missing.
func (r RSID) Display() string {
	if !r.Valid {
		return "N/A"
	}

	return "rs" + strconv.FormatInt(r.Int64, 10)
}

// Frequency is a nullable population allele frequency.
type Frequency struct {
	null.Float
}

func NewFrequency(f float64) Frequency {
	return Frequency{null.FloatFrom(f)}
}

// ParseFrequency coerces a raw cell; non-numeric values are missing.
func ParseFrequency(value string) Frequency {
	value = strings.TrimSpace(value)
	if value == "" {
		return Frequency{}
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Frequency{}
	}

	return NewFrequency(f)
}

func (f *Frequency) UnmarshalCSV(value string) error {
	*f = ParseFrequency(value)
	return nil
}

func (f Frequency) MarshalCSV() (string, error) {
	if !f.Valid {
		return "", nil
	}
	return strconv.FormatFloat(f.Float64, 'g', -1, 64), nil
}

// OrZero returns the frequency, or 0 when it is missing.
func (f Frequency) OrZero() float64 {
	return f.ValueOrZero()
}

// Positive reports whether the frequency counts as data.
func (f Frequency) Positive() bool {
	return f.Valid && f.Float64 > 0
}
