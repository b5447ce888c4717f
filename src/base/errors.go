package base

import (
	"errors"
	"fmt"
)

// All of these are recoverable: the caller rejects the attempt and the
// board stays untouched.
var (
	ErrOutOfBounds        = errors.New("square out of bounds")
	ErrIllegalMove        = errors.New("illegal move")
	ErrNoPendingPromotion = errors.New("no pending promotion")
)

// InvalidFENError names the FEN field that failed its syntax rule.
type InvalidFENError struct {
	Field  string
	Reason string
}

func (e *InvalidFENError) Error() string {
	return fmt.Sprintf("invalid FEN %s: %s", e.Field, e.Reason)
}
