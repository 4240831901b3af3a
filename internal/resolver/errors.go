package resolver

import (
	"errors"
	"fmt"

	"github.com/marte-community/scorer-dev-tools/internal/parser"
)

var (
	// ErrUnknownReference is matched by *UnknownReferenceError.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrAccessMismatch is matched by *AccessMismatchError.
	ErrAccessMismatch = errors.New("access mismatch")

	// ErrScheduleViolation means a unit would read a value that is not
	// computed before its own stage.
	ErrScheduleViolation = errors.New("schedule violation")

	// ErrNameCollision means two values map to the same Go identifier.
	ErrNameCollision = errors.New("identifier collision")
)

// UnknownReferenceError is an input that is neither a unit nor a raw input.
type UnknownReferenceError struct {
	Unit     string
	Input    string
	Location string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("%s: unit '%s' reads '%s', which is neither a unit nor a raw input", e.Location, e.Unit, e.Input)
}

func (e *UnknownReferenceError) Unwrap() error { return ErrUnknownReference }

// AccessMismatchError is an input declared with the wrong access kind for
// how the value is stored.
type AccessMismatchError struct {
	Unit     string
	Input    string
	Declared parser.Access
	Stored   parser.Access
	Location string
}

func (e *AccessMismatchError) Error() string {
	return fmt.Sprintf("%s: unit '%s' declares %s%s but '%s' is stored as %s",
		e.Location, e.Unit, e.Declared.Tag(), e.Input, e.Input, e.Stored)
}

func (e *AccessMismatchError) Unwrap() error { return ErrAccessMismatch }
