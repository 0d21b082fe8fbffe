package variantatlas

import (
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// Delimiters that a variant table may plausibly use, in order of preference.
// The detector also reports punctuation like '_' that merely recurs in column
// names, so its candidates are checked against this list.
var knownDelimiters = []string{",", "\t", ";", "|"}

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in a header line, assuming a CSV-like file. Comma wins when nothing
// else stands out.
func DetermineDelimiter(header string) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(strings.NewReader(header), '"')

	for _, known := range knownDelimiters {
		for _, candidate := range delimiters {
			if candidate == known {
				return rune(known[0])
			}
		}
	}

	// Single-line samples give the detector little to go on, so fall back to
	// whichever known delimiter occurs most often.
	best, bestCount := ',', 0
	for _, known := range knownDelimiters {
		if n := strings.Count(header, known); n > bestCount {
			best, bestCount = rune(known[0]), n
		}
	}

	return best
}
