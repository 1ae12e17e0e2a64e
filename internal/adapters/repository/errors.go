package repository

import "errors"

// Sentinel kinds for catalogue source errors.
var (
	ErrUnsupportedSource = errors.New("unsupported catalogue source")
	ErrInvalidTable      = errors.New("invalid table name")
	ErrOpenSource        = errors.New("open catalogue source")
	ErrEmptyInput        = errors.New("catalogue input has no header")
)
