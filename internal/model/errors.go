package model

import (
	"fmt"
	"io"
)

// Kind classifies a failure per the error taxonomy of spec.md §7.
type Kind int

// Error kinds. AnalysisUnavailable is the only non-fatal kind; every other
// kind aborts the export.
const (
	// PlanningError: an invariant was violated before any write began, e.g. a
	// track references a missing album, or the page allocator detected a
	// page conflict.
	PlanningError Kind = iota
	// PagingOverflow: a row does not fit on any page (~4000 bytes).
	PagingOverflow
	// EncodingError: a string cannot be represented (length or encoding).
	EncodingError
	// IoError: an underlying filesystem failure.
	IoError
	// AnalysisUnavailable: per-track, non-fatal. The track is exported with
	// tempo=0, key=0 and zero-height waveform stubs.
	AnalysisUnavailable
)

func (k Kind) String() string {
	switch k {
	case PlanningError:
		return "planning error"
	case PagingOverflow:
		return "paging overflow"
	case EncodingError:
		return "encoding error"
	case IoError:
		return "io error"
	case AnalysisUnavailable:
		return "analysis unavailable"
	default:
		return "unknown error"
	}
}

// Error wraps a Kind with the underlying cause. Use errors.Wrap/errors.Wrapf
// from github.com/pkg/errors when constructing the Cause so that %+v prints
// a full stack and chain of context.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Format forwards %+v to Cause so a pkg/errors stack trace still prints
// through the Kind wrapper.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: ", e.Kind)
		if f, ok := e.Cause.(fmt.Formatter); ok {
			f.Format(s, verb)
			return
		}
		io.WriteString(s, e.Cause.Error())
		return
	}
	io.WriteString(s, e.Error())
}

// New constructs an *Error of the given Kind wrapping cause.
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}
