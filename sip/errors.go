package sip

import (
	"fmt"

	"braces.dev/errtrace"
)

// ErrKind classifies an Error returned from this package.
type ErrKind int

const (
	// ErrKindTokenize marks a lexical failure: the byte stream did not
	// match the grammar for the production named in the error label.
	ErrKindTokenize ErrKind = iota
	// ErrKindParse marks a lexically valid but semantically rejected
	// value (unknown method, out-of-range numeric, ...).
	ErrKindParse
	// ErrKindUnexpected marks a violated internal invariant. Valid
	// byte-sequence inputs should never produce this.
	ErrKindUnexpected
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindTokenize:
		return "TokenizeError"
	case ErrKindParse:
		return "ParseError"
	case ErrKindUnexpected:
		return "Unexpected"
	default:
		return "UnknownError"
	}
}

// Error is the single error sum type exposed at the package boundary.
type Error struct {
	Kind ErrKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func tokenizeErrorf(format string, args ...any) error {
	return &Error{Kind: ErrKindTokenize, Msg: fmt.Sprintf(format, args...)}
}

func parseErrorf(format string, args ...any) error {
	return &Error{Kind: ErrKindParse, Msg: fmt.Sprintf(format, args...)}
}

func unexpectedErrorf(format string, args ...any) error {
	return &Error{Kind: ErrKindUnexpected, Msg: fmt.Sprintf(format, args...)}
}

// wrapBoundary attaches a stack trace to err without altering its Error()
// text, so label-matching assertions on the message stay valid. Only the
// Parser's ParseMessage, ParseRequest and ParseResponse methods call this
// (the package-level Parse* functions go through them); ParseUri,
// NewParam and internal tokenizer recursion pass errors through unwrapped.
func wrapBoundary(err error) error {
	if err == nil {
		return nil
	}
	return errtrace.Wrap(err)
}
