package wavefront

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Errors returned by the loader wrap one of these so callers can
// test for them with errors.Is.
var (
	ErrMalformedNumber           = errors.New("malformed number")
	ErrInvalidFaceIndex          = errors.New("invalid face index")
	ErrMaterialLibraryUnreadable = errors.New("material library unreadable")
	ErrEmptyOrTruncatedFile      = errors.New("empty or truncated file")
	ErrReadFailure               = errors.New("read failure")
	ErrInvalidOptions            = errors.New("invalid load options")
)

// ParseError describes a fatal problem with a geometry or material source.
type ParseError struct {
	// Source name (file path, URL or the name passed to LoadReader).
	File string

	// 1-based physical line where the offending directive starts; 0 if
	// the error is not tied to a line.
	Line int

	// The directive keyword and its raw argument text, if any.
	Directive string
	Args      string

	// One of the Err* kinds.
	Kind error

	// Underlying cause (e.g. a *strconv.NumError).
	Err error

	// Detail message.
	Msg string
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	if e.File != "" || e.Line > 0 {
		fmt.Fprintf(&sb, "[%s: %d] ", e.File, e.Line)
	}
	sb.WriteString("error: ")
	sb.WriteString(e.Kind.Error())
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Directive != "" {
		fmt.Fprintf(&sb, " (%s", e.Directive)
		if e.Args != "" {
			sb.WriteByte(' ')
			sb.WriteString(e.Args)
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind of this error.
func (e *ParseError) Is(target error) bool {
	return e.Kind == target
}

// Generate a ParseError for a directive.
func directiveError(kind error, file string, d directive, cause error, msgFormat string, args ...interface{}) *ParseError {
	return &ParseError{
		File:      file,
		Line:      d.line,
		Directive: d.keyword,
		Args:      d.args,
		Kind:      kind,
		Err:       cause,
		Msg:       fmt.Sprintf(msgFormat, args...),
	}
}

// WarningKind classifies non-fatal conditions reported in a Result.
type WarningKind int

const (
	// A referenced material library could not be opened or parsed.
	WarnMaterialLibraryUnreadable WarningKind = iota

	// A usemtl directive names a material missing from every loaded library.
	WarnUnresolvedMaterial
)

func (k WarningKind) String() string {
	switch k {
	case WarnMaterialLibraryUnreadable:
		return "material library unreadable"
	case WarnUnresolvedMaterial:
		return "unresolved material"
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// Warning is a locally recovered condition encountered during a load.
type Warning struct {
	File    string
	Line    int
	Kind    WarningKind
	Name    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s: %d] warning: %s %q: %s", w.File, w.Line, w.Kind, w.Name, w.Message)
}

// Generate a ParseError that is not yet tied to a source location.
func fieldError(kind error, cause error, msgFormat string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind: kind,
		Err:  cause,
		Msg:  fmt.Sprintf(msgFormat, args...),
	}
}

// Attach the file and directive location to err. Errors other than
// *ParseError are wrapped as read failures.
func locate(err error, file string, d directive) error {
	pErr, ok := err.(*ParseError)
	if !ok {
		return directiveError(ErrReadFailure, file, d, err, "%s", err.Error())
	}
	if pErr.File == "" {
		pErr.File = file
	}
	if pErr.Line == 0 {
		pErr.Line = d.line
		pErr.Directive = d.keyword
		pErr.Args = d.args
	}
	return pErr
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
