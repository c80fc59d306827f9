package itemlist

import (
	"errors"
	"fmt"

	"github.com/replistruct/listpos/order"
)

// Sentinel error kinds. Callers distinguish them with errors.Is.
var (
	ErrRangeError = errors.New("itemlist: index out of range")
	ErrEmptyBulk  = errors.New("itemlist: bulk insert with zero values")
	ErrLoadFailed = errors.New("itemlist: load failed")
)

// RangeErr wraps ErrRangeError with the offending index and the list's
// current length.
type RangeErr struct {
	Op     string
	Index  int
	Length int
}

func (e *RangeErr) Error() string {
	return fmt.Sprintf("itemlist: %s: index %d out of range [0, %d]", e.Op, e.Index, e.Length)
}

func (e *RangeErr) Unwrap() error { return ErrRangeError }

func rangeErr(op string, index, length int) error {
	return &RangeErr{Op: op, Index: index, Length: length}
}

// PositionErr wraps a sentinel with the offending Position.
type PositionErr struct {
	Kind     error
	Position order.Position
	Msg      string
}

func (e *PositionErr) Error() string {
	return fmt.Sprintf("%s: %s (%+v)", e.Kind, e.Msg, e.Position)
}

func (e *PositionErr) Unwrap() error { return e.Kind }

func positionErr(kind error, pos order.Position, msg string) error {
	return &PositionErr{Kind: kind, Position: pos, Msg: msg}
}
