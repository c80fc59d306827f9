package sparseitems

import "errors"

// ErrNotEnoughPresent is returned by FindNthPresent when fewer than k+1
// present slots exist from startIndex onward.
var ErrNotEnoughPresent = errors.New("sparseitems: not enough present slots")

// ErrMalformed is returned by Deserialize when the wire-form array does not
// alternate present/deleted-count correctly.
var ErrMalformed = errors.New("sparseitems: malformed serialized form")

// ErrSlotAbsent is returned by SetScalar when the target slot is deleted.
var ErrSlotAbsent = errors.New("sparseitems: slot is not present")
