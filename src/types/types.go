package types

import (
	"fmt"
	"strings"

	"github.com/tanema/semc/src/lerrors"
)

type (
	// Kind is the closed set of primitive types.
	Kind int
	// Type is a general interface for all type definitions.
	Type interface {
		fmt.Stringer
		Equal(other Type) bool
	}
	// Simple describes a builtin primitive type.
	Simple struct{ Kind Kind }
	// Function describes a function type with a return type and positional params.
	Function struct {
		Return Type
		Params []Type
	}
)

const (
	// KindVoid is the absence of a value.
	KindVoid Kind = iota
	// KindInt is a whole number.
	KindInt
	// KindDouble is a floating point number.
	KindDouble
	// KindBoolean is true or false.
	KindBoolean
	// KindString is a string of characters.
	KindString
)

const (
	// NameVoid is a label for the void type.
	NameVoid = "void"
	// NameInt is a label for the int type.
	NameInt = "int"
	// NameDouble is a label for the double type.
	NameDouble = "double"
	// NameBoolean is a label for the boolean type.
	NameBoolean = "boolean"
	// NameString is a label for the string type.
	NameString = "String"
)

var (
	// Void is the singleton void type.
	Void = &Simple{Kind: KindVoid}
	// Int is the singleton int type.
	Int = &Simple{Kind: KindInt}
	// Double is the singleton double type.
	Double = &Simple{Kind: KindDouble}
	// Boolean is the singleton boolean type.
	Boolean = &Simple{Kind: KindBoolean}
	// String is the singleton string type.
	String = &Simple{Kind: KindString}

	kindNames = map[Kind]string{
		KindVoid:    NameVoid,
		KindInt:     NameInt,
		KindDouble:  NameDouble,
		KindBoolean: NameBoolean,
		KindString:  NameString,
	}
	// DefaultDefns is a collection of types that exist by default, keyed by the
	// name they are written with in source.
	DefaultDefns = map[string]*Simple{
		NameVoid:    Void,
		NameInt:     Int,
		NameDouble:  Double,
		NameBoolean: Boolean,
		NameString:  String,
	}
)

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// FromKind returns the shared simple type for a kind.
func FromKind(k Kind) *Simple {
	return DefaultDefns[k.String()]
}

// Parse maps a type name as written in source to its simple type.
func Parse(name string) (*Simple, error) {
	if defn, ok := DefaultDefns[name]; ok {
		return defn, nil
	}
	return nil, lerrors.New(lerrors.InvalidTypeName, "unable to convert %q to a data type", name)
}

// NewFunction builds a function type.
func NewFunction(ret Type, params ...Type) *Function {
	if params == nil {
		params = []Type{}
	}
	return &Function{Return: ret, Params: params}
}

// IsFunction reports whether t is a function type.
func IsFunction(t Type) bool {
	_, ok := t.(*Function)
	return ok
}

// IsSimple reports whether t is a simple type.
func IsSimple(t Type) bool {
	_, ok := t.(*Simple)
	return ok
}

// Equal will check if this type is the same primitive as another.
func (t *Simple) Equal(other Type) bool { return Equal(t, other) }
func (t *Simple) String() string        { return t.Kind.String() }

// Equal will check if this function has the same shape as another.
func (t *Function) Equal(other Type) bool { return Equal(t, other) }

func (t *Function) String() string {
	return fmt.Sprintf("%s (%s)", t.Return, fmtTypes(t.Params, ", "))
}

// Equal compares two types structurally.
func Equal(a, b Type) bool {
	if a == b {
		return true
	} else if a == nil || b == nil {
		return false
	}

	switch ta := a.(type) {
	case *Simple:
		other, isSimple := b.(*Simple)
		return isSimple && ta.Kind == other.Kind
	case *Function:
		other, isFn := b.(*Function)
		if !isFn || len(ta.Params) != len(other.Params) || !Equal(ta.Return, other.Return) {
			return false
		}
		for i, p := range ta.Params {
			if !Equal(p, other.Params[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func fmtTypes(defns []Type, sep string) string {
	parts := make([]string, len(defns))
	for i, d := range defns {
		parts[i] = d.String()
	}
	return strings.Join(parts, sep)
}
