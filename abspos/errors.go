package abspos

import "errors"

// ErrUnsupportedBunchID is returned by Encode when a bunch in the
// ancestor chain wasn't minted by the default "replicaID_counter" ID
// factory, so it can't be compressed into an AbsPosition.
var ErrUnsupportedBunchID = errors.New("abspos: bunch ID not in replicaID_counter form")

// ErrMalformed is returned by Decode when an AbsPosition's parallel
// arrays are inconsistent.
var ErrMalformed = errors.New("abspos: malformed AbsPosition")
