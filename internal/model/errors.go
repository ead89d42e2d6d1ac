package model

import (
	"errors"
	"fmt"
)

// ErrUnstableStructure reports a structure without enough restraints to
// carry load
var ErrUnstableStructure = errors.New("unstable structure")

// InputError reports a malformed input document: missing references,
// non-positive geometry or stiffness, out-of-range load positions.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return "input error: " + e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Inputf builds an *InputError from a format string
func Inputf(format string, args ...any) error {
	return &InputError{Err: fmt.Errorf(format, args...)}
}

// Unstablef wraps ErrUnstableStructure with detail
func Unstablef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnstableStructure, fmt.Sprintf(format, args...))
}
