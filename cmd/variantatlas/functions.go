package main

import (
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/carbocation/variantatlas/variant"
)

// RandHeteroglyphs produces a string of n symbols which do
// not look like one another. (Derived to be the opposite of
// homoglyphs, which are symbols which look similar to one
// another and cannot be quickly distinguished.)
func RandHeteroglyphs(n int) string {
	var letters = []rune("abcdefghkmnpqrstwxyz")
	lenLetters := len(letters)
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(lenLetters)]
	}
	return string(b)
}

// queryFromRequest reads the disease and gene searches from the URL.
func queryFromRequest(r *http.Request) variant.Query {
	v := r.URL.Query()
	return variant.Query{
		Disease: v.Get("disease"),
		Gene:    v.Get("gene"),
	}.Normalized()
}

// encodeQuery is the inverse of queryFromRequest, for building links that
// keep the current filter.
func encodeQuery(q variant.Query) string {
	v := url.Values{}
	if q.Disease != "" {
		v.Set("disease", q.Disease)
	}
	if q.Gene != "" {
		v.Set("gene", q.Gene)
	}

	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// parseRow reads a row index. Blank means "not given".
func parseRow(s string) (row int, given bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}

	row, err = strconv.Atoi(s)
	if err != nil || row < 0 {
		return 0, true, errBadRow
	}

	return row, true, nil
}
