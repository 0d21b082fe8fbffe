package loader

import (
	"bufio"
	"io"
	"strings"
)

// quoteFixReader transparently replaces the invalid \" escape with "", which
// is how some ClinVar exports quote phenotype names. A \" that ends a field
// (followed by the delimiter, a line break or the end of input) is a
// backslash followed by the closing quote and is left alone.
type quoteFixReader struct {
	r        *bufio.Reader
	delim    rune
	leftover *strings.Reader
	err      error
}

func newQuoteFixReader(r io.Reader, delim rune) *quoteFixReader {
	return &quoteFixReader{r: bufio.NewReader(r), delim: delim, leftover: &strings.Reader{}}
}

func (m *quoteFixReader) Read(p []byte) (int, error) {
	for m.leftover.Len() == 0 {
		if m.err != nil {
			return 0, m.err
		}

		line, err := m.r.ReadString('\n')
		m.err = err
		m.leftover = strings.NewReader(fixEscapedQuotes(line, m.delim))
	}

	return m.leftover.Read(p)
}

func fixEscapedQuotes(line string, delim rune) string {
	if !strings.Contains(line, `\"`) {
		return line
	}

	var b strings.Builder
	b.Grow(len(line))

	for i := 0; i < len(line); i++ {
		if line[i] == '\\' && i+1 < len(line) && line[i+1] == '"' && !endsField(line[i+2:], delim) {
			b.WriteString(`""`)
			i++
			continue
		}
		b.WriteByte(line[i])
	}

	return b.String()
}

func endsField(rest string, delim rune) bool {
	if rest == "" || rest[0] == '\n' || rest[0] == '\r' {
		return true
	}

	return strings.HasPrefix(rest, string(delim))
}
