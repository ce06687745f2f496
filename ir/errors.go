// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes IR and reflection errors.
type ErrorKind uint8

const (
	// ErrFormat indicates a malformed or truncated word stream.
	ErrFormat ErrorKind = iota

	// ErrOutOfRangeID indicates an ID at or beyond the module bound.
	ErrOutOfRangeID

	// ErrUnknownEntryPoint indicates a named entry point that does not exist.
	ErrUnknownEntryPoint

	// ErrTypeMismatch indicates a slot bound to a different payload kind
	// than the one requested.
	ErrTypeMismatch

	// ErrLayout indicates a struct layout that cannot be resolved.
	ErrLayout

	// ErrUnsupported indicates a feature this layer does not implement.
	ErrUnsupported
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrFormat:
		return "Format"
	case ErrOutOfRangeID:
		return "OutOfRangeID"
	case ErrUnknownEntryPoint:
		return "UnknownEntryPoint"
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrLayout:
		return "Layout"
	case ErrUnsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// Error represents an IR-level error with enough context to diagnose a
// malformed or adversarial input: the offending ID and, for stream
// errors, the word offset of the instruction.
type Error struct {
	Kind    ErrorKind
	Message string

	// ID is the offending ID, when one is known.
	ID ID

	// Offset is the word offset of the offending instruction, when known.
	Offset uint32
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.ID != 0 && e.Offset != 0:
		return fmt.Sprintf("spvcross %s (id %d, word offset %d): %s", e.Kind, e.ID, e.Offset, e.Message)
	case e.ID != 0:
		return fmt.Sprintf("spvcross %s (id %d): %s", e.Kind, e.ID, e.Message)
	case e.Offset != 0:
		return fmt.Sprintf("spvcross %s (word offset %d): %s", e.Kind, e.Offset, e.Message)
	default:
		return fmt.Sprintf("spvcross %s: %s", e.Kind, e.Message)
	}
}

// NewError creates an error without ID or offset context.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewIDError creates an error referencing an offending ID.
func NewIDError(kind ErrorKind, id ID, message string) *Error {
	return &Error{Kind: kind, Message: message, ID: id}
}

// NewStreamError creates an error referencing an instruction word offset.
func NewStreamError(kind ErrorKind, offset uint32, message string) *Error {
	return &Error{Kind: kind, Message: message, Offset: offset}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
