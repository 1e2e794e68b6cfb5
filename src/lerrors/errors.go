// Package lerrors is the unified error package for parsing and checking so that
// every failure can be formatted in a unified way and handled in a unified way.
package lerrors

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ErrorKind is an enum to describe what kind of rule the error violates.
	ErrorKind int
	// Error captures all errors raised while lexing, parsing and checking a
	// program. Line and Column are optional, a zero value means the position
	// is unknown.
	Error struct {
		Line     int64
		Column   int64
		Kind     ErrorKind
		Err      error
		Filename string
	}
)

const (
	// LexerErr is an error that originates from the lexer.
	LexerErr ErrorKind = iota
	// ParserErr is an error that originates from the parser.
	ParserErr
	// InvalidTypeName is raised when a type name is not a known primitive.
	InvalidTypeName
	// DuplicateIdentifier is raised when a declaration breaks the shadowing rules.
	DuplicateIdentifier
	// UndeclaredIdentifier is raised when a name cannot be found in any scope.
	UndeclaredIdentifier
	// NotAFunction is raised when a call target is not a function.
	NotAFunction
	// ArityMismatch is raised when a call has the wrong number of arguments.
	ArityMismatch
	// TypeMismatch is raised when a value is neither equal nor convertible to
	// the type required where it is used.
	TypeMismatch
	// InvalidOperandTypes is raised when an operator is not defined for its operands.
	InvalidOperandTypes
	// ReturnOutsideFunction is raised for a return statement at the top level.
	ReturnOutsideFunction
)

var kindLabels = map[ErrorKind]string{
	LexerErr:              "Lex Error",
	ParserErr:             "Parse Error",
	InvalidTypeName:       "Invalid Type Name",
	DuplicateIdentifier:   "Duplicate Identifier",
	UndeclaredIdentifier:  "Undeclared Identifier",
	NotAFunction:          "Not A Function",
	ArityMismatch:         "Arity Mismatch",
	TypeMismatch:          "Type Mismatch",
	InvalidOperandTypes:   "Invalid Operand Types",
	ReturnOutsideFunction: "Return Outside Function",
}

func (kind ErrorKind) String() string {
	if label, ok := kindLabels[kind]; ok {
		return label
	}
	return fmt.Sprintf("ErrorKind(%d)", int(kind))
}

// New creates an error of the given kind without any position.
func New(kind ErrorKind, msg string, data ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(msg, data...)}
}

// At returns err positioned at line and column. If err is already an *Error
// that carries a position it is returned untouched, so the innermost position
// always wins. Errors of other types are wrapped with the given kind.
func At(err error, kind ErrorKind, line, column int64) error {
	if err == nil {
		return nil
	}
	var lerr *Error
	if !errors.As(err, &lerr) {
		return &Error{Kind: kind, Line: line, Column: column, Err: err}
	}
	if lerr.Line == 0 && lerr.Column == 0 {
		lerr.Line = line
		lerr.Column = column
	}
	return lerr
}

// KindOf reports the kind of err and whether err was an *Error at all.
func KindOf(err error) (ErrorKind, bool) {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind, true
	}
	return 0, false
}

// Is matches any *Error of the same kind so callers can use errors.Is with a
// bare kind template like &Error{Kind: TypeMismatch}.
func (err *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == err.Kind && other.Err == nil
}

func (err *Error) Unwrap() error { return err.Err }

func (err *Error) Error() string {
	var loc strings.Builder
	if err.Filename != "" {
		loc.WriteString(err.Filename)
	}
	if err.Line > 0 {
		if loc.Len() > 0 {
			loc.WriteString(":")
		}
		fmt.Fprintf(&loc, "%v:%v", err.Line, err.Column)
	}
	if loc.Len() == 0 {
		return fmt.Sprintf("%v: %v", err.Kind, err.Err)
	}
	return fmt.Sprintf("%v: %v %v", err.Kind, loc.String(), err.Err)
}
