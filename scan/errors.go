package scan

import "errors"

var (
	ErrBadValue       = errors.New("unsupported value layout")
	ErrNoDelimiter    = errors.New("delimiter not found")
	ErrNoLineBoundary = errors.New("no line boundary within window")
)
