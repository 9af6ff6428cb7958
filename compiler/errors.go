package compiler

import "fmt"

// ErrorKind classifies a compile failure. It implements error so callers can
// test a failure with errors.Is(err, SyntaxError).
type ErrorKind int

const (
	LexicalError ErrorKind = iota + 1
	SyntaxError
	RedeclarationError
	UndefinedIdentifierError
	TypeMismatchError
	InternalConsistencyError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "LexicalError"
	case SyntaxError:
		return "SyntaxError"
	case RedeclarationError:
		return "RedeclarationError"
	case UndefinedIdentifierError:
		return "UndefinedIdentifierError"
	case TypeMismatchError:
		return "TypeMismatchError"
	case InternalConsistencyError:
		return "InternalConsistencyError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) Error() string {
	return k.String()
}

// Error is the single diagnostic produced by a failed compilation. The first
// fault stops the pipeline, so there is never more than one.
type Error struct {
	Kind    ErrorKind
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func errorf(kind ErrorKind, line int, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}
