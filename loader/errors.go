package loader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingDataFile means none of the candidate input files exist.
var ErrMissingDataFile = errors.New("variant data file not found")

// MissingDataFileError lists the paths that were tried. It matches
// ErrMissingDataFile under errors.Is.
type MissingDataFileError struct {
	Tried []string
}

func (e *MissingDataFileError) Error() string {
	return fmt.Sprintf("%s: make sure one of %s is present", ErrMissingDataFile, strings.Join(e.Tried, ", "))
}

func (e *MissingDataFileError) Is(target error) bool {
	return target == ErrMissingDataFile
}

// ParseError means the chosen input file exists but could not be read as a
// variant table.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error reading data file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
