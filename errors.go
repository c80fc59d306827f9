package listpos

import "errors"

// ErrMalformed is returned when a saved-state value doesn't match the
// shape a wrapper's item manager expects.
var ErrMalformed = errors.New("listpos: malformed saved state")

// ErrCharShape is returned by Text's single-character setters when given
// a string whose rune length isn't exactly 1.
var ErrCharShape = errors.New("listpos: value is not a single character")
