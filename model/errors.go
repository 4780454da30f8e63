package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind enumerates the parse-failure categories of SPEC_FULL.md §7.
type ErrorKind int

const (
	// UnexpectedEnd: a primitive or segment read would pass the buffer end.
	UnexpectedEnd ErrorKind = iota
	// BadHeader: header prelude mismatch, unknown version digit, or wrong padding.
	BadHeader
	// TagMismatch: expected (index, kind) does not match the varint tag.
	TagMismatch
	// UnknownEnum: brush_type or color ordinal not in the defined table.
	UnknownEnum
	// UnknownBlockVersion: SceneItem block's current_version not in {1, 2}.
	UnknownBlockVersion
	// VarintOverflow: varint exceeds 10 bytes.
	VarintOverflow
	// Truncated: block_len or sub-block length exceeds remaining bytes.
	Truncated
	// UnsupportedVersion: header recognised a version this decoder doesn't implement (v3).
	UnsupportedVersion
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEnd:
		return "UnexpectedEnd"
	case BadHeader:
		return "BadHeader"
	case TagMismatch:
		return "TagMismatch"
	case UnknownEnum:
		return "UnknownEnum"
	case UnknownBlockVersion:
		return "UnknownBlockVersion"
	case VarintOverflow:
		return "VarintOverflow"
	case Truncated:
		return "Truncated"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	default:
		return "ErrorKind(?)"
	}
}

// ParseError is the error type returned by encoding/rm. Offset is the
// cursor position (bytes from the start of the buffer passed to Parse)
// at which the failure was detected; it is best-effort and may be 0 when
// the failing reader doesn't track position.
type ParseError struct {
	Kind    ErrorKind
	Offset  int
	Message string
	cause   error
}

func (e *ParseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.cause
}

// NewParseError constructs a ParseError, optionally wrapping a cause with
// github.com/pkg/errors.WithStack; the cause is reachable through Unwrap
// (errors.Is / errors.As).
func NewParseError(kind ErrorKind, offset int, cause error) *ParseError {
	pe := &ParseError{Kind: kind, Offset: offset}
	if cause != nil {
		pe.cause = errors.WithStack(cause)
	}
	return pe
}

func (e *ParseError) withMessagef(format string, args ...interface{}) *ParseError {
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// WithMessagef attaches a formatted message to a ParseError and returns it,
// for fluent construction at the call site.
func (e *ParseError) WithMessagef(format string, args ...interface{}) *ParseError {
	return e.withMessagef(format, args...)
}

// IsKind reports whether err is a *ParseError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
