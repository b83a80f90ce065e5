// Package errs defines the closed set of error kinds shared across the
// specification parser, codec, registry, index, session, and handle-table
// layers, plus the structured error type that carries them.
package errs

import (
	"errors"
	"fmt"
)

// Kind is one of the error kinds enumerated in the elucidator error model.
// Every fallible operation that can fail reports one of these; kinds never
// change meaning once assigned a Status (see status.go).
type Kind string

const (
	// Parse errors (spec package).
	UnexpectedChar         Kind = "UnexpectedChar"
	UnexpectedEof          Kind = "UnexpectedEof"
	InvalidIdent           Kind = "InvalidIdent"
	UnknownDtype           Kind = "UnknownDtype"
	StringAsArray          Kind = "StringAsArray"
	ZeroOrNegativeArrayLen Kind = "ZeroOrNegativeArrayLen"
	DuplicateMember        Kind = "DuplicateMember"
	TrailingGarbage        Kind = "TrailingGarbage"
	DesignationMismatch    Kind = "DesignationMismatch"

	// Registry errors (spec package).
	DuplicateDesignation Kind = "DuplicateDesignation"
	UnknownDesignation   Kind = "UnknownDesignation"

	// Index/session errors.
	UnknownSession     Kind = "UnknownSession"
	InvalidBoundingBox Kind = "InvalidBoundingBox"
	InvalidEpsilon     Kind = "InvalidEpsilon"
	InvalidBlobLength  Kind = "InvalidBlobLength"

	// Codec errors.
	TruncatedBlob Kind = "TruncatedBlob"
	TrailingBytes Kind = "TrailingBytes"

	// Runtime errors.
	PoisonedState Kind = "PoisonedState"
	OutOfMemory   Kind = "OutOfMemory"
)

// Error is the structured error value returned (wrapped) by every fallible
// elucidator operation. Offset and Lexeme are set by parser/codec errors
// that pinpoint a byte position in the input; they are zero-valued (Offset
// -1, Lexeme "") for errors that have no natural byte position.
type Error struct {
	Kind    Kind
	Message string
	Offset  int    // byte offset into the offending input, -1 if not applicable
	Lexeme  string // offending lexeme/token text, "" if not applicable
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		if e.Lexeme != "" {
			return fmt.Sprintf("%s: %s (at byte %d, near %q)", e.Kind, e.Message, e.Offset, e.Lexeme)
		}
		return fmt.Sprintf("%s: %s (at byte %d)", e.Kind, e.Message, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an Error with no associated byte position.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Offset: -1}
}

// At builds an Error anchored to a byte offset and offending lexeme.
func At(kind Kind, offset int, lexeme string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Offset: offset, Lexeme: lexeme}
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error, and reports ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	e, ok := AsError(err)
	if !ok {
		return "", false
	}
	return e.Kind, true
}

// AsError extracts the *Error from err if it (or something it wraps) is
// one, and reports ok=false otherwise.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
