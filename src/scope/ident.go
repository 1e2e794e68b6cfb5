package scope

import (
	"fmt"

	"github.com/tanema/semc/src/types"
)

type (
	// Class is the storage classification of a declaration.
	Class int
	// Ident describes a declared identifier and where it will be stored.
	Ident struct {
		Name    string
		Type    types.Type
		Class   Class
		Index   int // slot within its class counter, NoSlot for functions
		BuiltIn bool
	}
)

const (
	// Local is a variable declared inside a block or function.
	Local Class = iota
	// Param is a function parameter.
	Param
	// Global is a variable or function declared at the top level.
	Global
)

// NoSlot is the index of declarations that are never stored in a slot.
const NoSlot = -1

func (c Class) String() string {
	switch c {
	case Param:
		return "param"
	case Global:
		return "global"
	default:
		return "local"
	}
}

// NewIdent creates a declaration that has not yet been given a slot.
func NewIdent(name string, defn types.Type, class Class) *Ident {
	return &Ident{Name: name, Type: defn, Class: class, Index: NoSlot}
}

// HasSlot is true if the declaration was given a slot index.
func (id *Ident) HasSlot() bool { return id.Index != NoSlot }

func (id *Ident) String() string {
	if id.BuiltIn {
		return fmt.Sprintf("%s, %s, built-in", id.Type, id.Class)
	} else if !id.HasSlot() {
		return fmt.Sprintf("%s, %s", id.Type, id.Class)
	}
	return fmt.Sprintf("%s, %s, %d", id.Type, id.Class, id.Index)
}

func isFunction(id *Ident) bool { return types.IsFunction(id.Type) }
