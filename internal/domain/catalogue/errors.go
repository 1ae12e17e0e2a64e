package catalogue

import (
	"errors"
	"fmt"
)

// Sentinel kinds for catalogue load failures.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrUnknownKey    = errors.New("unrecognized musical key")
	ErrUnknownMode   = errors.New("unrecognized mode")
	ErrBadNumber     = errors.New("invalid numeric value")
	ErrShortRow      = errors.New("row has fewer fields than header")
)

// DataError reports a dataset problem found at load time. Row is the 1-based
// data row (0 for header problems).
type DataError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *DataError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("catalogue: %v: %s", e.Err, e.Column)
	}
	return fmt.Sprintf("catalogue: row %d column %s: %v: %q", e.Row, e.Column, e.Err, e.Value)
}

func (e *DataError) Unwrap() error { return e.Err }
