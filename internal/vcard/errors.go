package vcard

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies a parse or record failure independent of where it surfaced.
type Code string

const (
	CodeNotFound          Code = "not_found"
	CodeMalformedLine     Code = "malformed_line"
	CodeFieldConflict     Code = "field_conflict"
	CodeFieldUnset        Code = "field_unset"
	CodeInvalidFieldValue Code = "invalid_field_value"
	CodeAmbiguousName     Code = "ambiguous_name"
	CodeUnterminatedBlock Code = "unterminated_block"
)

// Sentinels for errors.Is checks. Matching is by code only.
var (
	ErrNotFound          = &Error{Code: CodeNotFound}
	ErrMalformedLine     = &Error{Code: CodeMalformedLine}
	ErrFieldConflict     = &Error{Code: CodeFieldConflict}
	ErrFieldUnset        = &Error{Code: CodeFieldUnset}
	ErrInvalidFieldValue = &Error{Code: CodeInvalidFieldValue}
	ErrAmbiguousName     = &Error{Code: CodeAmbiguousName}
	ErrUnterminatedBlock = &Error{Code: CodeUnterminatedBlock}
)

// Error carries a failure code plus whatever input context was available
// where it was raised: the raw line, its physical line number, or the
// record field involved.
type Error struct {
	Code    Code
	Field   Field
	Line    string
	LineNo  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.LineNo > 0 {
		fmt.Fprintf(&b, "line %d: ", e.LineNo)
	}
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		b.WriteString(string(e.Code))
	}
	if e.Line != "" {
		fmt.Fprintf(&b, ": %q", e.Line)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HasCode reports whether err is, or wraps, an *Error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// atLine stamps a line number onto err when it is an *Error without one.
// The original error is left untouched.
func atLine(err error, lineNo int) error {
	var e *Error
	if !errors.As(err, &e) || e.LineNo != 0 {
		return err
	}
	clone := *e
	clone.LineNo = lineNo
	return &clone
}

func malformed(line, msg string) error {
	return &Error{Code: CodeMalformedLine, Line: line, Message: msg}
}
