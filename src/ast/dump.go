package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/tanema/semc/src/scope"
)

// Fprint writes one line per node of the tree in depth-first order:
// position, node kind and name, the inferred type of expressions and the
// declaration a name was bound to. Types and bindings only appear once the
// tree has been checked.
func Fprint(w io.Writer, node Node) error {
	var err error
	Inspect(node, func(n Node) bool {
		if err != nil {
			return false
		}
		_, err = fmt.Fprintln(w, describe(n))
		return true
	})
	return err
}

func describe(node Node) string {
	li := node.Pos()
	var line strings.Builder
	fmt.Fprintf(&line, "%d:%d\t%s", li.Line, li.Column, strings.TrimPrefix(fmt.Sprintf("%T", node), "*ast."))

	name, ident := binding(node)
	if name != "" {
		line.WriteString(" " + name)
	}
	if ex, isExpr := node.(Expr); isExpr && ex.Type() != nil {
		line.WriteString("\t" + ex.Type().String())
	}
	if ident != nil {
		line.WriteString("\t[" + ident.String() + "]")
	}
	return line.String()
}

func binding(node Node) (string, *scope.Ident) {
	switch n := node.(type) {
	case *VarDecl:
		return n.Name, n.Ident
	case *Param:
		return n.Name, n.Ident
	case *FuncDecl:
		return n.Name, n.Ident
	case *Var:
		return n.Name, n.Ident
	case *Assign:
		return n.Name, n.Ident
	case *Call:
		return n.Name, n.Ident
	case *Binary:
		return n.Op.String(), nil
	case *Unary:
		return n.Op.String(), nil
	case *IntLit:
		return fmt.Sprint(n.Val), nil
	case *DoubleLit:
		return fmt.Sprint(n.Val), nil
	case *StringLit:
		return fmt.Sprintf("%q", n.Val), nil
	case *BoolLit:
		return fmt.Sprint(n.Val), nil
	default:
		return "", nil
	}
}
