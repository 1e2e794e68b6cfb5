// Package ast defines the syntax tree produced by the parser. Every node knows
// how to check itself against a scope: Check resolves the names the node uses,
// declares the names it introduces and returns the static type of the node.
// After a successful check, expression nodes carry their inferred type and the
// nodes that name something carry the declaration they were bound to.
package ast

import (
	"github.com/tanema/semc/src/scope"
	"github.com/tanema/semc/src/types"
)

type (
	// LineInfo is a shared struct that is used for tracking where the node
	// originated from in the sourcecode.
	LineInfo struct {
		Line   int64
		Column int64
	}
	// Node is any element of the tree.
	Node interface {
		Check(sc scope.Scope) (types.Type, error)
		Pos() LineInfo
	}
	// Expr is a node that produces a value.
	Expr interface {
		Node
		Type() types.Type
	}
	typed struct{ typ types.Type }

	// Program is the root of a parsed source file.
	Program struct {
		Stmts []Node
		LineInfo
	}
	// Block is a braced list of statements with its own scope.
	Block struct {
		Stmts []Node
		LineInfo
	}
	// StmtList is a list of statements checked in the enclosing scope, used
	// for declarations like `int a, b;`.
	StmtList struct {
		Stmts []Node
		LineInfo
	}
	// VarDecl declares a single variable with an optional initializer.
	VarDecl struct {
		TypeName string
		Name     string
		Init     Expr
		Ident    *scope.Ident
		LineInfo
	}
	// Param is a single function parameter.
	Param struct {
		TypeName string
		Name     string
		Ident    *scope.Ident
		LineInfo
	}
	// FuncDecl declares a function. A nil Body is a prototype.
	FuncDecl struct {
		ReturnType string
		Name       string
		Params     []*Param
		Body       *Block
		Ident      *scope.Ident
		LineInfo
	}
	// If is a conditional with an optional else branch.
	If struct {
		Cond Expr
		Then Node
		Else Node
		LineInfo
	}
	// While is a pre-tested loop.
	While struct {
		Cond Expr
		Body Node
		LineInfo
	}
	// For is a C style loop. Init, Cond and Step are optional.
	For struct {
		Init Node
		Cond Expr
		Step Expr
		Body Node
		LineInfo
	}
	// Return leaves the enclosing function, Value is nil for a bare return.
	Return struct {
		Value Expr
		LineInfo
	}
	// ExprStmt is an expression evaluated for its side effects.
	ExprStmt struct {
		X Expr
		LineInfo
	}
	// Var is a reference to a declared name.
	Var struct {
		Name  string
		Ident *scope.Ident
		typed
		LineInfo
	}
	// Assign stores Value into the variable Name.
	Assign struct {
		Name  string
		Value Expr
		Ident *scope.Ident
		typed
		LineInfo
	}
	// Call invokes the function Name.
	Call struct {
		Name  string
		Args  []Expr
		Ident *scope.Ident
		typed
		LineInfo
	}
	// Binary is an infix operation.
	Binary struct {
		Op    types.BinaryOp
		Left  Expr
		Right Expr
		typed
		LineInfo
	}
	// Unary is a prefix operation.
	Unary struct {
		Op types.UnaryOp
		X  Expr
		typed
		LineInfo
	}
	// IntLit is an integer literal.
	IntLit struct {
		Val int64
		LineInfo
	}
	// DoubleLit is a floating point literal.
	DoubleLit struct {
		Val float64
		LineInfo
	}
	// StringLit is a string literal.
	StringLit struct {
		Val string
		LineInfo
	}
	// BoolLit is true or false.
	BoolLit struct {
		Val bool
		LineInfo
	}
)

// Pos returns the position of the node.
func (li LineInfo) Pos() LineInfo { return li }

// Type returns the type inferred for the expression, nil before checking.
func (t typed) Type() types.Type { return t.typ }

// Type of a literal is known without checking.
func (ex *IntLit) Type() types.Type    { return types.Int }
func (ex *DoubleLit) Type() types.Type { return types.Double }
func (ex *StringLit) Type() types.Type { return types.String }
func (ex *BoolLit) Type() types.Type   { return types.Boolean }
