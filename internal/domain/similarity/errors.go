package similarity

import "errors"

var (
	// ErrNotFound is returned when the query song is not in the catalogue.
	ErrNotFound = errors.New("song not found")
	// ErrInvalidLimit is returned when fewer than one result is requested.
	ErrInvalidLimit = errors.New("limit must be at least 1")
)
